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

// Package gcs reads and writes lineage documents in Google Cloud Storage.
package gcs

import (
	"context"
	"io"
	"os"
	"path"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const GOOGLE_APPLICATION_CREDENTIALS = "GOOGLE_APPLICATION_CREDENTIALS"

// ErrNotFound is returned by Get for a missing object.
var ErrNotFound = errors.New("object not found")

type gcs struct {
	client *storage.Client
	config Config
	logger logrus.FieldLogger
}

func New(ctx context.Context, config Config, logger logrus.FieldLogger) (*gcs, error) {
	options, err := clientOptions(ctx, config)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, errors.Wrap(err, "create client")
	}
	logger.WithField("action", "gcs_init").
		WithField("project_id", config.ProjectID()).
		Debug("created storage client")
	return &gcs{client, config, logger}, nil
}

// clientOptions bills requests to the configured project, when there is one.
func clientOptions(ctx context.Context, config Config) ([]option.ClientOption, error) {
	options := []option.ClientOption{}
	if len(os.Getenv(GOOGLE_APPLICATION_CREDENTIALS)) > 0 {
		scopes := []string{
			"https://www.googleapis.com/auth/devstorage.read_write",
		}
		creds, err := google.FindDefaultCredentials(ctx, scopes...)
		if err != nil {
			return nil, errors.Wrap(err, "find default credentials")
		}
		options = append(options, option.WithCredentials(creds))
	} else {
		options = append(options, option.WithoutAuthentication())
	}
	if projectID := config.ProjectID(); len(projectID) > 0 {
		options = append(options, option.WithQuotaProject(projectID))
	}
	if endpoint := config.Endpoint(); len(endpoint) > 0 {
		options = append(options, option.WithEndpoint(endpoint))
	}
	return options, nil
}

func (g *gcs) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	reader, err := g.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "new reader: %v", g.Location(bucket, key))
		}
		return nil, errors.Wrapf(err, "new reader: %v", g.Location(bucket, key))
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "read object: %v", g.Location(bucket, key))
	}

	g.logger.WithField("action", "gcs_get").
		WithField("bucket", bucket).
		WithField("key", key).
		WithField("size", len(content)).
		Debug("read object")
	return content, nil
}

func (g *gcs) Put(ctx context.Context, bucket, key string, content []byte) error {
	writer := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	writer.ContentType = "application/json"
	if _, err := writer.Write(content); err != nil {
		writer.Close()
		return errors.Wrapf(err, "write object: %v", g.Location(bucket, key))
	}
	// The object only becomes visible once the writer is closed.
	if err := writer.Close(); err != nil {
		return errors.Wrapf(err, "close writer for object: %v", g.Location(bucket, key))
	}

	g.logger.WithField("action", "gcs_put").
		WithField("bucket", bucket).
		WithField("key", key).
		WithField("size", len(content)).
		Debug("wrote object")
	return nil
}

func (g *gcs) Location(bucket, key string) string {
	return "gs://" + path.Join(bucket, key)
}

func (g *gcs) Close() error {
	return g.client.Close()
}
