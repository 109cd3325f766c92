//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package graphstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Honeyfish20/data-lineage-on-aws-2024/gremlin/http_client"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/gremlin/sigv4"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/config"
)

type recorder struct {
	sync.Mutex
	queries []string
	headers []http.Header
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Gremlin string `json:"gremlin"`
	}
	_ = json.NewDecoder(req.Body).Decode(&body)
	r.Lock()
	r.queries = append(r.queries, body.Gremlin)
	r.headers = append(r.headers, req.Header.Clone())
	r.Unlock()
	w.Write([]byte(`{"result":{"data":[0]}}`))
}

type queries struct {
	sync.Mutex
	ops []string
}

func (q *queries) ObserveQuery(operation string, _ time.Duration, _ error) {
	q.Lock()
	defer q.Unlock()
	q.ops = append(q.ops, operation)
}

func gremlinConfig(endpoint string) config.Graph {
	cfg := config.Defaults().Graph
	cfg.Endpoint = endpoint
	cfg.Region = "us-east-1"
	return cfg
}

func TestNewGremlinSigned(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(rec)
	defer server.Close()
	logger, _ := test.NewNullLogger()
	observer := &queries{}

	var gotService, gotRegion string
	newSigner := func(ctx context.Context, service, region string) (http_client.RequestSigner, error) {
		gotService, gotRegion = service, region
		return sigv4.NewStatic("AKID", "SECRET", "", service, region), nil
	}

	store, err := New(context.Background(), gremlinConfig(server.URL), observer, newSigner, logger)
	require.Nil(t, err)
	defer store.Close(context.Background())

	require.Nil(t, store.DropAll(context.Background()))
	count, err := store.CountVertices(context.Background())
	require.Nil(t, err)
	assert.Equal(t, int64(0), count)

	assert.Equal(t, "neptune-db", gotService)
	assert.Equal(t, "us-east-1", gotRegion)
	require.Len(t, rec.headers, 2)
	assert.Contains(t, rec.headers[0].Get("Authorization"), "AWS4-HMAC-SHA256")
	assert.Equal(t, []string{"g.V().drop()", "g.V().count()"}, rec.queries)
	assert.Equal(t, []string{"drop", "count"}, observer.ops)
}

func TestNewGremlinUnsigned(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(rec)
	defer server.Close()
	logger, _ := test.NewNullLogger()

	cfg := gremlinConfig(server.URL)
	cfg.Signing.Enabled = false
	newSigner := func(context.Context, string, string) (http_client.RequestSigner, error) {
		t.Fatal("signer must not be built")
		return nil, nil
	}

	store, err := New(context.Background(), cfg, nil, newSigner, logger)
	require.Nil(t, err)
	require.Nil(t, store.UpsertVertex(context.Background(), "orders"))
	require.Len(t, rec.headers, 1)
	assert.Empty(t, rec.headers[0].Get("Authorization"))
}

func TestNewGremlinDefaultInlinesValues(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(rec)
	defer server.Close()
	logger, _ := test.NewNullLogger()

	cfg := gremlinConfig(server.URL)
	cfg.Signing.Enabled = false
	store, err := New(context.Background(), cfg, nil, DefaultSigner, logger)
	require.Nil(t, err)

	require.Nil(t, store.UpsertVertex(context.Background(), "orders"))
	require.Len(t, rec.queries, 1)
	assert.Equal(t, `g.V().has("lineage_node", "node_name", 'orders').fold()`+
		`.coalesce(__.unfold(), __.addV("lineage_node").property("node_name", 'orders'))`, rec.queries[0])
}

func TestNewSignerFailure(t *testing.T) {
	logger, _ := test.NewNullLogger()
	newSigner := func(context.Context, string, string) (http_client.RequestSigner, error) {
		return nil, errors.New("no credentials")
	}
	_, err := New(context.Background(), gremlinConfig("http://localhost:8182/gremlin"), nil, newSigner, logger)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "init request signer")
}

func TestNewUnknownBackend(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := New(context.Background(), config.Graph{Backend: "tinkerpop"}, nil, DefaultSigner, logger)
	assert.NotNil(t, err)
}
