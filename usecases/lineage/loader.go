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

package lineage

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	enterrors "github.com/Honeyfish20/data-lineage-on-aws-2024/entities/errors"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/entities/lineage"
)

const DefaultConcurrency = 10

// GraphStore is the target graph database. UpsertVertex and UpsertEdge must
// be idempotent and safe under concurrent calls for the same names.
type GraphStore interface {
	DropAll(ctx context.Context) error
	CountVertices(ctx context.Context) (int64, error)
	UpsertVertex(ctx context.Context, name string) error
	UpsertEdge(ctx context.Context, parent, child string) error
}

// UnitObserver is told about the outcome of every load unit.
type UnitObserver interface {
	ObserveUnit(err error)
}

type UnitFailure struct {
	Parent string
	Err    error
}

type LoadReport struct {
	VertexCountAfterDrop int64
	Units                int
	Succeeded            int
	Skipped              int
	Failed               []UnitFailure
	VerticesUpserted     int64
	EdgesUpserted        int64
	Duration             time.Duration
}

// Err combines the unit failures, nil if every unit succeeded.
func (r *LoadReport) Err() error {
	var result *multierror.Error
	for _, f := range r.Failed {
		result = multierror.Append(result, errors.Wrapf(f.Err, "node %q", f.Parent))
	}
	return result.ErrorOrNil()
}

type Loader struct {
	store       GraphStore
	concurrency int
	observer    UnitObserver
	logger      logrus.FieldLogger
}

// NewLoader returns a loader running at most concurrency units at a time. A
// concurrency <= 0 selects DefaultConcurrency. observer may be nil.
func NewLoader(store GraphStore, concurrency int, observer UnitObserver, logger logrus.FieldLogger) *Loader {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Loader{
		store:       store,
		concurrency: concurrency,
		observer:    observer,
		logger:      logger,
	}
}

// Load wipes the graph and rebuilds it from m. Every (parent, children) pair
// is one unit; a failing unit is logged and recorded in the report while the
// other units carry on. Drop and count failures, signing failures and
// cancellation of ctx abort the load; the report is returned in every case.
//
// The graph is partially built while Load runs.
func (l *Loader) Load(ctx context.Context, m lineage.Map) (*LoadReport, error) {
	started := time.Now()
	report := &LoadReport{Units: len(m)}
	defer func() {
		report.Duration = time.Since(started)
	}()

	if err := l.store.DropAll(ctx); err != nil {
		return report, errors.Wrap(err, "clear graph database")
	}
	l.logger.WithField("action", "graph_drop").Info("cleared graph database")

	count, err := l.store.CountVertices(ctx)
	if err != nil {
		return report, errors.Wrap(err, "count vertices")
	}
	report.VertexCountAfterDrop = count
	l.logger.WithField("action", "graph_count").
		WithField("vertex_count", count).
		Infof("vertex count after clearing: %d", count)

	var mu sync.Mutex
	var vertices, edges int64
	dispatched, skipped := 0, 0

	eg, unitCtx := enterrors.NewErrorGroupWithContextWrapper(ctx, l.logger)
	eg.SetLimit(l.concurrency)

	for _, parent := range m.Keys() {
		// Stop dispatching once the caller cancelled or a unit hit a fatal
		// error. Units already running see the same cancelled context.
		if unitCtx.Err() != nil {
			break
		}
		parent, children := parent, m[parent]
		dispatched++

		eg.Go(func() error {
			// Go may have waited for a free slot while the load was aborted.
			if unitCtx.Err() != nil {
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}

			err := enterrors.Recover(func() error {
				return l.loadUnit(unitCtx, parent, children, &vertices, &edges)
			})
			if l.observer != nil {
				l.observer.ObserveUnit(err)
			}
			if err == nil {
				mu.Lock()
				report.Succeeded++
				mu.Unlock()
				return nil
			}

			l.logger.WithField("action", "load_unit").
				WithField("node", parent).
				WithError(err).
				Error("error in processing node")

			mu.Lock()
			report.Failed = append(report.Failed, UnitFailure{Parent: parent, Err: err})
			mu.Unlock()

			if enterrors.IsSigning(err) {
				return err
			}
			return nil
		}, parent)
	}

	waitErr := eg.Wait()
	report.Skipped = len(m) - dispatched + skipped
	report.VerticesUpserted = atomic.LoadInt64(&vertices)
	report.EdgesUpserted = atomic.LoadInt64(&edges)

	fields := logrus.Fields{
		"action":            "graph_load",
		"units":             report.Units,
		"succeeded":         report.Succeeded,
		"failed":            len(report.Failed),
		"skipped":           report.Skipped,
		"vertices_upserted": report.VerticesUpserted,
		"edges_upserted":    report.EdgesUpserted,
	}

	if waitErr != nil {
		l.logger.WithFields(fields).WithError(waitErr).Error("graph load aborted")
		return report, errors.Wrap(waitErr, "load graph")
	}
	if err := ctx.Err(); err != nil {
		l.logger.WithFields(fields).WithError(err).Error("graph load cancelled")
		return report, errors.Wrap(err, "load graph cancelled")
	}

	l.logger.WithFields(fields).Info("graph load finished")
	return report, nil
}

// loadUnit creates the parent, then each child followed by its edge. Child
// vertices exist before the edge pointing at them is created.
func (l *Loader) loadUnit(ctx context.Context, parent string, children []string, vertices, edges *int64) error {
	if err := l.store.UpsertVertex(ctx, parent); err != nil {
		return errors.Wrapf(err, "add node %q", parent)
	}
	atomic.AddInt64(vertices, 1)

	for _, child := range children {
		if err := l.store.UpsertVertex(ctx, child); err != nil {
			return errors.Wrapf(err, "add child node %q", child)
		}
		atomic.AddInt64(vertices, 1)

		if err := l.store.UpsertEdge(ctx, parent, child); err != nil {
			return errors.Wrapf(err, "add edge %q -> %q", parent, child)
		}
		atomic.AddInt64(edges, 1)
	}
	return nil
}
