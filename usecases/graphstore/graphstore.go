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

// Package graphstore picks the graph database backend from configuration.
package graphstore

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	gremlinrepo "github.com/Honeyfish20/data-lineage-on-aws-2024/adapters/repos/gremlin"
	neo4jrepo "github.com/Honeyfish20/data-lineage-on-aws-2024/adapters/repos/neo4j"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/gremlin/http_client"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/gremlin/sigv4"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/config"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/lineage"
)

// QueryObserver is told about every finished graph query.
type QueryObserver interface {
	ObserveQuery(operation string, duration time.Duration, err error)
}

// Store is a GraphStore that may hold connections.
type Store interface {
	lineage.GraphStore
	Close(ctx context.Context) error
}

// SignerFactory builds the request signer for the gremlin backend.
type SignerFactory func(ctx context.Context, service, region string) (http_client.RequestSigner, error)

// DefaultSigner resolves credentials through the default AWS chain.
func DefaultSigner(ctx context.Context, service, region string) (http_client.RequestSigner, error) {
	signer, err := sigv4.NewFromDefaultConfig(ctx, service, region)
	if err != nil {
		return nil, err
	}
	return signer, nil
}

// New returns the backend named by cfg.Backend. observer may be nil;
// newSigner is only used for the gremlin backend with signing enabled.
func New(ctx context.Context, cfg config.Graph, observer QueryObserver, newSigner SignerFactory,
	logger logrus.FieldLogger,
) (Store, error) {
	switch cfg.Backend {
	case config.GraphBackendGremlin:
		opts := []http_client.Option{
			http_client.WithTimeout(cfg.Timeout),
			http_client.WithRateLimit(cfg.MaxQPS),
		}
		if observer != nil {
			opts = append(opts, http_client.WithObserver(observer))
		}
		if cfg.Signing.Enabled {
			signer, err := newSigner(ctx, cfg.Signing.Service, cfg.Region)
			if err != nil {
				return nil, fmt.Errorf("init request signer: %w", err)
			}
			opts = append(opts, http_client.WithSigner(signer))
		}
		client := http_client.NewClient(cfg.Endpoint, logger, opts...)

		logger.WithField("action", "graph_init").
			WithField("backend", cfg.Backend).
			WithField("endpoint", cfg.Endpoint).
			WithField("signing", cfg.Signing.Enabled).
			WithField("bindings", cfg.QueryBindings).
			Info("connecting to graph database")
		return &gremlinStore{gremlinrepo.New(client, cfg.QueryBindings, logger)}, nil

	case config.GraphBackendNeo4j:
		var neo4jObserver neo4jrepo.QueryObserver
		if observer != nil {
			neo4jObserver = observer
		}
		repo, err := neo4jrepo.New(ctx, neo4jrepo.Config{
			URI:      cfg.Neo4j.URI,
			User:     cfg.Neo4j.User,
			Password: cfg.Neo4j.Password,
			Database: cfg.Neo4j.Database,
			Timeout:  cfg.Timeout,
		}, neo4jObserver, logger)
		if err != nil {
			return nil, err
		}

		logger.WithField("action", "graph_init").
			WithField("backend", cfg.Backend).
			WithField("uri", cfg.Neo4j.URI).
			Info("connected to graph database")
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown graph backend %q", cfg.Backend)
	}
}

// gremlinStore holds no connections; HTTP requests are independent.
type gremlinStore struct {
	*gremlinrepo.Repo
}

func (gremlinStore) Close(context.Context) error {
	return nil
}
