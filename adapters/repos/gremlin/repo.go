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

// Package gremlin stores the lineage graph in a database speaking Gremlin
// over HTTP, such as Amazon Neptune.
package gremlin

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Honeyfish20/data-lineage-on-aws-2024/gremlin"
)

const (
	VertexLabel     = "lineage_node"
	NameProperty    = "node_name"
	EdgeLabel       = "lineage_edge"
	EdgeProperty    = "edge_name"
	EdgePlaceholder = " "
)

// Operation names, used as the operation label of query metrics.
const (
	OpDrop   = "drop"
	OpCount  = "count"
	OpVertex = "upsert_vertex"
	OpEdge   = "upsert_edge"
)

type Executor interface {
	Execute(ctx context.Context, operation string, query gremlin.Gremlin) (*gremlin.Response, error)
}

type Repo struct {
	client   Executor
	bindings bool
	logger   logrus.FieldLogger
}

// New returns a repo sending its traversals through client. With bindings
// enabled node names travel in the bindings map, otherwise they are escaped
// into the query string.
func New(client Executor, bindings bool, logger logrus.FieldLogger) *Repo {
	return &Repo{client: client, bindings: bindings, logger: logger}
}

func (r *Repo) DropAll(ctx context.Context) error {
	res, err := r.client.Execute(ctx, OpDrop, DropQuery())
	if err != nil {
		return errors.Wrap(err, "drop all vertices")
	}
	r.logger.WithField("action", "graph_drop").
		WithField("operation", OpDrop).
		Infof("drop response: %s", res.Raw)
	return nil
}

// CountVertices returns -1 if the response carries no readable count.
func (r *Repo) CountVertices(ctx context.Context) (int64, error) {
	res, err := r.client.Execute(ctx, OpCount, CountQuery())
	if err != nil {
		return 0, errors.Wrap(err, "count vertices")
	}
	r.logResponse(OpCount, "", res)

	count, ok := res.Count()
	if !ok {
		r.logger.WithField("action", "graph_count").
			WithField("response", string(res.Raw)).
			Warn("vertex count response has no numeric result")
		return -1, nil
	}
	return count, nil
}

func (r *Repo) UpsertVertex(ctx context.Context, name string) error {
	res, err := r.client.Execute(ctx, OpVertex, UpsertVertexQuery(gremlin.NewParams(r.bindings), name))
	if err != nil {
		return errors.Wrapf(err, "upsert vertex %q", name)
	}
	r.logResponse(OpVertex, name, res)
	return nil
}

func (r *Repo) UpsertEdge(ctx context.Context, parent, child string) error {
	res, err := r.client.Execute(ctx, OpEdge, UpsertEdgeQuery(gremlin.NewParams(r.bindings), parent, child))
	if err != nil {
		return errors.Wrapf(err, "upsert edge %q -> %q", parent, child)
	}
	r.logResponse(OpEdge, parent+" -> "+child, res)
	return nil
}

func (r *Repo) logResponse(operation, subject string, res *gremlin.Response) {
	r.logger.WithField("action", "gremlin_response").
		WithField("operation", operation).
		WithField("subject", subject).
		Debugf("response from graph database: %s", res.Raw)
}

func DropQuery() *gremlin.Query {
	return gremlin.G.V().Drop()
}

func CountQuery() *gremlin.Query {
	return gremlin.G.V().Count()
}

// UpsertVertexQuery matches the vertex named name or creates it.
func UpsertVertexQuery(p *gremlin.Params, name string) *gremlin.Query {
	v := p.String("name", name)
	return gremlin.G.V().Has(VertexLabel, NameProperty, v).Fold().
		Coalesce(
			gremlin.Current().Unfold(),
			gremlin.Current().AddV(VertexLabel).Property(NameProperty, v),
		)
}

// UpsertEdgeQuery matches an edge on both its source and its target and
// creates it only if no edge from parent into child exists yet. Nothing is
// created if either vertex is missing.
func UpsertEdgeQuery(p *gremlin.Params, parent, child string) *gremlin.Query {
	from := p.String("parent", parent)
	to := p.String("child", child)
	return gremlin.G.V().Has(VertexLabel, NameProperty, from).As("a").
		V().Has(VertexLabel, NameProperty, to).
		Coalesce(
			gremlin.Current().InEWithLabel(EdgeLabel).Where(gremlin.Current().OutV().As("a")),
			gremlin.Current().AddE(EdgeLabel).FromRef("a").StringProperty(EdgeProperty, EdgePlaceholder),
		)
}
