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

package gremlin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enterrors "github.com/Honeyfish20/data-lineage-on-aws-2024/entities/errors"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/gremlin"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/gremlin/http_client"
)

func TestQueries(t *testing.T) {
	assert.Equal(t, "g.V().drop()", DropQuery().String())
	assert.Equal(t, "g.V().count()", CountQuery().String())

	t.Run("vertex inlined", func(t *testing.T) {
		q := UpsertVertexQuery(gremlin.NewParams(false), "orders")
		assert.Equal(t, `g.V().has("lineage_node", "node_name", 'orders').fold()`+
			`.coalesce(__.unfold(), __.addV("lineage_node").property("node_name", 'orders'))`, q.String())
		assert.Empty(t, q.Bindings())
	})

	t.Run("edge with bindings", func(t *testing.T) {
		q := UpsertEdgeQuery(gremlin.NewParams(true), "orders", "order_items")
		assert.Equal(t, `g.V().has("lineage_node", "node_name", parent1).as("a")`+
			`.V().has("lineage_node", "node_name", child2)`+
			`.coalesce(__.inE("lineage_edge").where(__.outV().as("a")), `+
			`__.addE("lineage_edge").from("a").property("edge_name", " "))`, q.String())
		assert.Equal(t, map[string]interface{}{"parent1": "orders", "child2": "order_items"}, q.Bindings())
	})

	t.Run("hostile names stay inside the literal", func(t *testing.T) {
		q := UpsertVertexQuery(gremlin.NewParams(false), `x').drop();g.V('`)
		assert.Contains(t, q.String(), `'x\').drop();g.V(\''`)

		q = UpsertVertexQuery(gremlin.NewParams(false), "stg_${schema}")
		assert.Contains(t, q.String(), `'stg_${schema}'`)
	})
}

type recordedQuery struct {
	Gremlin  string                 `json:"gremlin"`
	Bindings map[string]interface{} `json:"bindings"`
}

type fakeEndpoint struct {
	sync.Mutex
	queries []recordedQuery
	status  int
	reply   string
}

func (f *fakeEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var q recordedQuery
	_ = json.NewDecoder(r.Body).Decode(&q)
	f.Lock()
	f.queries = append(f.queries, q)
	status, reply := f.status, f.reply
	f.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	w.Write([]byte(reply))
}

func newTestRepo(t *testing.T, endpoint *fakeEndpoint, bindings bool) *Repo {
	server := httptest.NewServer(endpoint)
	t.Cleanup(server.Close)
	logger, _ := test.NewNullLogger()
	return New(http_client.NewClient(server.URL+"/gremlin", logger), bindings, logger)
}

func TestRepo(t *testing.T) {
	t.Run("count decodes graphson", func(t *testing.T) {
		endpoint := &fakeEndpoint{reply: `{"result":{"data":{"@type":"g:List","@value":[{"@type":"g:Int64","@value":0}]}}}`}
		count, err := newTestRepo(t, endpoint, true).CountVertices(context.Background())
		require.Nil(t, err)
		assert.Equal(t, int64(0), count)
		assert.Equal(t, "g.V().count()", endpoint.queries[0].Gremlin)
	})

	t.Run("count without a number", func(t *testing.T) {
		endpoint := &fakeEndpoint{reply: `not json`}
		count, err := newTestRepo(t, endpoint, true).CountVertices(context.Background())
		require.Nil(t, err)
		assert.Equal(t, int64(-1), count)
	})

	t.Run("upserts send bindings", func(t *testing.T) {
		endpoint := &fakeEndpoint{reply: `{}`}
		repo := newTestRepo(t, endpoint, true)

		require.Nil(t, repo.DropAll(context.Background()))
		require.Nil(t, repo.UpsertVertex(context.Background(), "a"))
		require.Nil(t, repo.UpsertEdge(context.Background(), "a", "b"))

		require.Len(t, endpoint.queries, 3)
		assert.Equal(t, "g.V().drop()", endpoint.queries[0].Gremlin)
		assert.Equal(t, map[string]interface{}{"name1": "a"}, endpoint.queries[1].Bindings)
		assert.Equal(t, map[string]interface{}{"parent1": "a", "child2": "b"}, endpoint.queries[2].Bindings)
	})

	t.Run("inlined upserts send no bindings", func(t *testing.T) {
		endpoint := &fakeEndpoint{reply: `{}`}
		require.Nil(t, newTestRepo(t, endpoint, false).UpsertVertex(context.Background(), "a"))
		require.Len(t, endpoint.queries, 1)
		assert.Nil(t, endpoint.queries[0].Bindings)
		assert.Contains(t, endpoint.queries[0].Gremlin, `'a'`)
	})

	t.Run("drop response is logged at info", func(t *testing.T) {
		endpoint := &fakeEndpoint{reply: `{"status":{"code":200}}`}
		server := httptest.NewServer(endpoint)
		t.Cleanup(server.Close)
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.InfoLevel)
		repo := New(http_client.NewClient(server.URL+"/gremlin", logger), true, logger)

		require.Nil(t, repo.DropAll(context.Background()))
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, "graph_drop", entry.Data["action"])
		assert.Contains(t, entry.Message, `{"status":{"code":200}}`)
	})

	t.Run("server error", func(t *testing.T) {
		endpoint := &fakeEndpoint{status: http.StatusInternalServerError, reply: `{"code":"InternalFailureException"}`}
		err := newTestRepo(t, endpoint, true).UpsertVertex(context.Background(), "a")
		require.NotNil(t, err)
		assert.True(t, enterrors.IsGraphQuery(err))
		assert.Contains(t, err.Error(), `upsert vertex "a"`)
	})
}
