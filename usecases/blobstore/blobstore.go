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

// Package blobstore picks the blob storage backend from configuration.
package blobstore

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Honeyfish20/data-lineage-on-aws-2024/modules/storage-aws-s3/s3"
	modstgfs "github.com/Honeyfish20/data-lineage-on-aws-2024/modules/storage-filesystem"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/modules/storage-gcs/gcs"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/config"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/lineage"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/monitoring"
)

// TransferObserver is told the size of every object read or written.
type TransferObserver interface {
	ObserveTransfer(direction string, bytes int)
}

// Store is a blob storage backend holding client resources until Close.
type Store interface {
	lineage.BlobStore
	Close() error
}

// New returns the backend named by cfg.Backend, wrapped so that transfers
// are reported to observer. observer may be nil.
func New(ctx context.Context, cfg config.Storage, observer TransferObserver,
	logger logrus.FieldLogger,
) (Store, error) {
	var (
		store lineage.BlobStore
		err   error
	)

	switch cfg.Backend {
	case config.StorageBackendS3:
		store, err = s3.New(s3.NewConfig(cfg.S3.Endpoint, cfg.S3.UseSSL, cfg.S3.Region), logger)
	case config.StorageBackendGCS:
		store, err = gcs.New(ctx, gcs.NewConfig(cfg.GCS.ProjectID, cfg.GCS.Endpoint), logger)
	case config.StorageBackendFilesystem:
		store, err = modstgfs.New(cfg.Filesystem.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s storage: %w", cfg.Backend, err)
	}

	logger.WithField("action", "storage_init").
		WithField("backend", cfg.Backend).
		Debug("blob storage ready")

	return wrap(store, observer), nil
}

func wrap(backend lineage.BlobStore, observer TransferObserver) *managed {
	m := &managed{BlobStore: backend, observer: observer}
	if c, ok := backend.(io.Closer); ok {
		m.closer = c
	}
	return m
}

type managed struct {
	lineage.BlobStore
	observer TransferObserver
	closer   io.Closer
}

func (m *managed) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	content, err := m.BlobStore.Get(ctx, bucket, key)
	if err == nil && m.observer != nil {
		m.observer.ObserveTransfer(monitoring.DirectionRead, len(content))
	}
	return content, err
}

func (m *managed) Put(ctx context.Context, bucket, key string, content []byte) error {
	err := m.BlobStore.Put(ctx, bucket, key, content)
	if err == nil && m.observer != nil {
		m.observer.ObserveTransfer(monitoring.DirectionWrite, len(content))
	}
	return err
}

// Close releases the backend client. Backends without one are a no-op.
func (m *managed) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}
