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

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	enterrors "github.com/Honeyfish20/data-lineage-on-aws-2024/entities/errors"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/entities/lineage"
)

// BlobStore reads and writes whole objects.
type BlobStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, content []byte) error
	// Location renders bucket and key the way the backend addresses them,
	// e.g. s3://bucket/key.
	Location(bucket, key string) string
}

type Location struct {
	Bucket string
	Key    string
}

type NormalizeResult struct {
	Nodes      int
	Collisions []lineage.Collision
	Output     string
}

// NormalizeJob reads a raw export, normalizes it and writes the envelope.
type NormalizeJob struct {
	store  BlobStore
	input  Location
	output Location
	logger logrus.FieldLogger
}

func NewNormalizeJob(store BlobStore, input, output Location, logger logrus.FieldLogger) *NormalizeJob {
	return &NormalizeJob{store: store, input: input, output: output, logger: logger}
}

// Run transforms the whole map before writing it with a single put, so a
// failure never leaves partial output behind.
func (j *NormalizeJob) Run(ctx context.Context) (*NormalizeResult, error) {
	content, err := readObject(ctx, j.store, j.input, j.logger)
	if err != nil {
		return nil, err
	}

	raw, err := DecodeRaw(content)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", j.store.Location(j.input.Bucket, j.input.Key))
	}

	normalized, collisions := Normalize(raw)
	if len(collisions) > 0 {
		j.logger.WithField("action", "normalize").
			WithField("collisions", collisions).
			Warnf("%d node identifiers share a short name with another identifier and were overwritten", len(collisions))
	}

	out, err := EncodeEnvelope(normalized)
	if err != nil {
		return nil, err
	}

	if err := j.store.Put(ctx, j.output.Bucket, j.output.Key, out); err != nil {
		j.logger.WithField("action", "write_lineage").
			WithField("bucket", j.output.Bucket).
			WithField("key", j.output.Key).
			WithError(err).
			Error("error writing lineage map")
		return nil, asIOError(err, j.output)
	}

	location := j.store.Location(j.output.Bucket, j.output.Key)
	j.logger.WithField("action", "normalize").
		WithField("nodes", len(normalized)).
		WithField("output", location).
		Infof("data written to %s", location)

	return &NormalizeResult{
		Nodes:      len(normalized),
		Collisions: collisions,
		Output:     location,
	}, nil
}

type MergeLoadResult struct {
	PrimarySize   int
	SecondarySize int
	MergedSize    int
	Overwritten   []string
	Report        *LoadReport
}

// MergeLoadJob reads two normalized maps, merges them and rebuilds the graph.
type MergeLoadJob struct {
	store     BlobStore
	primary   Location
	secondary Location
	loader    *Loader
	logger    logrus.FieldLogger
}

// NewMergeLoadJob returns a job merging primary and secondary. Entries of
// secondary win on shared keys.
func NewMergeLoadJob(store BlobStore, primary, secondary Location, loader *Loader, logger logrus.FieldLogger) *MergeLoadJob {
	return &MergeLoadJob{
		store:     store,
		primary:   primary,
		secondary: secondary,
		loader:    loader,
		logger:    logger,
	}
}

func (j *MergeLoadJob) Run(ctx context.Context) (*MergeLoadResult, error) {
	primary, err := j.readMap(ctx, j.primary)
	if err != nil {
		return nil, err
	}
	j.logger.WithField("action", "read_lineage").
		WithField("size", len(primary)).
		Infof("primary lineage data size: %d", len(primary))

	secondary, err := j.readMap(ctx, j.secondary)
	if err != nil {
		return nil, err
	}
	j.logger.WithField("action", "read_lineage").
		WithField("size", len(secondary)).
		Infof("secondary lineage data size: %d", len(secondary))

	merged, overwritten := Merge(primary, secondary)
	logger := j.logger.WithField("action", "merge").WithField("size", len(merged))
	if len(overwritten) > 0 {
		logger.WithField("overwritten", overwritten).
			Warnf("%d nodes are present in both sources, secondary children replace primary children", len(overwritten))
	}
	logger.Infof("combined data size: %d", len(merged))

	result := &MergeLoadResult{
		PrimarySize:   len(primary),
		SecondarySize: len(secondary),
		MergedSize:    len(merged),
		Overwritten:   overwritten,
	}

	report, err := j.loader.Load(ctx, merged)
	result.Report = report
	if err != nil {
		return result, errors.Wrap(err, "write to graph database")
	}
	return result, nil
}

func (j *MergeLoadJob) readMap(ctx context.Context, loc Location) (lineage.Map, error) {
	content, err := readObject(ctx, j.store, loc, j.logger)
	if err != nil {
		return nil, err
	}
	m, err := DecodeEnvelope(content)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", j.store.Location(loc.Bucket, loc.Key))
	}
	return m, nil
}

func readObject(ctx context.Context, store BlobStore, loc Location, logger logrus.FieldLogger) ([]byte, error) {
	content, err := store.Get(ctx, loc.Bucket, loc.Key)
	if err != nil {
		logger.WithField("action", "read_lineage").
			WithField("bucket", loc.Bucket).
			WithField("key", loc.Key).
			WithError(err).
			Errorf("error reading file %s/%s", loc.Bucket, loc.Key)
		return nil, asIOError(err, loc)
	}
	return content, nil
}

func asIOError(err error, loc Location) error {
	if enterrors.IsIO(err) {
		return err
	}
	return enterrors.NewErrIO(err, loc.Bucket, loc.Key)
}
