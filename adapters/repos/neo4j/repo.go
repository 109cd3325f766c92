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

// Package neo4j stores the lineage graph in Neo4j, for running the loader
// against a local database instead of Neptune.
package neo4j

import (
	"context"
	"time"

	neo4jdriver "github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	enterrors "github.com/Honeyfish20/data-lineage-on-aws-2024/entities/errors"
)

const (
	DropCypher   = `MATCH (n) DETACH DELETE n`
	CountCypher  = `MATCH (n) RETURN count(n) AS count`
	VertexCypher = `MERGE (:lineage_node {node_name: $name})`
	EdgeCypher   = `MATCH (a:lineage_node {node_name: $parent}), (b:lineage_node {node_name: $child})
MERGE (a)-[e:lineage_edge]->(b)
ON CREATE SET e.edge_name = $edge_name`
	ConstraintCypher = `CREATE CONSTRAINT lineage_node_name IF NOT EXISTS FOR (n:lineage_node) REQUIRE n.node_name IS UNIQUE`
)

const DefaultTimeout = 10 * time.Second

type Config struct {
	URI      string
	User     string
	Password string
	Database string
	Timeout  time.Duration
}

// QueryObserver is told about every finished query.
type QueryObserver interface {
	ObserveQuery(operation string, duration time.Duration, err error)
}

type Repo struct {
	driver   neo4jdriver.DriverWithContext
	database string
	observer QueryObserver
	logger   logrus.FieldLogger
}

// New connects to the database and makes sure node names are unique. A
// failing constraint is logged and otherwise ignored. observer may be nil.
func New(ctx context.Context, cfg Config, observer QueryObserver, logger logrus.FieldLogger) (*Repo, error) {
	if cfg.User == "" {
		cfg.User = "neo4j"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	driver, err := neo4jdriver.NewDriverWithContext(cfg.URI,
		neo4jdriver.BasicAuth(cfg.User, cfg.Password, ""),
		func(c *neo4jdriver.Config) {
			c.SocketConnectTimeout = cfg.Timeout
		})
	if err != nil {
		return nil, enterrors.NewErrGraphQuery(errors.Wrap(err, "init neo4j driver"))
	}

	verifyCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, enterrors.NewErrGraphQuery(errors.Wrap(err, "verify neo4j connectivity"))
	}

	r := &Repo{
		driver:   driver,
		database: cfg.Database,
		observer: observer,
		logger:   logger,
	}

	if err := r.write(ctx, "constraint", ConstraintCypher, nil); err != nil {
		logger.WithField("action", "neo4j_schema").
			WithError(err).
			Warn("neo4j schema init failed (continuing)")
	}
	return r, nil
}

func (r *Repo) Close(ctx context.Context) error {
	if r == nil || r.driver == nil {
		return nil
	}
	return r.driver.Close(ctx)
}

func (r *Repo) DropAll(ctx context.Context) error {
	return errors.Wrap(r.write(ctx, "drop", DropCypher, nil), "drop all vertices")
}

func (r *Repo) CountVertices(ctx context.Context) (count int64, err error) {
	started := time.Now()
	defer func() { r.observe("count", started, err) }()

	session := r.session(ctx, neo4jdriver.AccessModeRead)
	defer session.Close(ctx)

	value, err := session.ExecuteRead(ctx, func(tx neo4jdriver.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, CountCypher, nil)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _, err := neo4jdriver.GetRecordValue[int64](record, "count")
		return n, err
	})
	if err != nil {
		return 0, enterrors.NewErrGraphQuery(errors.Wrap(err, "count vertices"))
	}
	return value.(int64), nil
}

func (r *Repo) UpsertVertex(ctx context.Context, name string) error {
	return errors.Wrapf(r.write(ctx, "upsert_vertex", VertexCypher, VertexParams(name)),
		"upsert vertex %q", name)
}

func (r *Repo) UpsertEdge(ctx context.Context, parent, child string) error {
	return errors.Wrapf(r.write(ctx, "upsert_edge", EdgeCypher, EdgeParams(parent, child)),
		"upsert edge %q -> %q", parent, child)
}

func VertexParams(name string) map[string]any {
	return map[string]any{"name": name}
}

func EdgeParams(parent, child string) map[string]any {
	return map[string]any{"parent": parent, "child": child, "edge_name": " "}
}

func (r *Repo) session(ctx context.Context, mode neo4jdriver.AccessMode) neo4jdriver.SessionWithContext {
	return r.driver.NewSession(ctx, neo4jdriver.SessionConfig{
		AccessMode:   mode,
		DatabaseName: r.database,
	})
}

func (r *Repo) write(ctx context.Context, operation, cypher string, params map[string]any) (err error) {
	started := time.Now()
	defer func() { r.observe(operation, started, err) }()

	session := r.session(ctx, neo4jdriver.AccessModeWrite)
	defer session.Close(ctx)

	_, err = session.ExecuteWrite(ctx, func(tx neo4jdriver.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		counters := summary.Counters()
		r.logger.WithField("action", "neo4j_response").
			WithField("operation", operation).
			WithField("nodes_created", counters.NodesCreated()).
			WithField("relationships_created", counters.RelationshipsCreated()).
			WithField("nodes_deleted", counters.NodesDeleted()).
			Debug("response from graph database")
		return nil, nil
	})
	if err != nil {
		return enterrors.NewErrGraphQuery(err)
	}
	return nil
}

func (r *Repo) observe(operation string, started time.Time, err error) {
	if r.observer != nil {
		r.observer.ObserveQuery(operation, time.Since(started), err)
	}
}
