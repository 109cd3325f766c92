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

// Package s3 reads and writes lineage documents in S3 or any S3 compatible
// store.
package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	AWS_ROLE_ARN                = "AWS_ROLE_ARN"
	AWS_WEB_IDENTITY_TOKEN_FILE = "AWS_WEB_IDENTITY_TOKEN_FILE"
	AWS_REGION                  = "AWS_REGION"
	AWS_DEFAULT_REGION          = "AWS_DEFAULT_REGION"
)

// ErrNotFound is returned by Get for a missing object.
var ErrNotFound = errors.New("object not found")

type s3 struct {
	client *minio.Client
	config Config
	logger logrus.FieldLogger
}

func New(config Config, logger logrus.FieldLogger) (*s3, error) {
	region := config.Region()
	if len(region) == 0 {
		region = os.Getenv(AWS_REGION)
	}
	if len(region) == 0 {
		region = os.Getenv(AWS_DEFAULT_REGION)
	}
	creds := credentials.NewEnvAWS()
	if len(os.Getenv(AWS_WEB_IDENTITY_TOKEN_FILE)) > 0 && len(os.Getenv(AWS_ROLE_ARN)) > 0 {
		creds = credentials.NewIAM("")
	}
	client, err := minio.New(config.Endpoint(), &minio.Options{
		Creds:  creds,
		Region: region,
		Secure: config.UseSSL(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create client")
	}
	return &s3{client, config, logger}, nil
}

func (s *s3) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "get object '%s'", s.Location(bucket, key))
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.Wrapf(ErrNotFound, "read object '%s'", s.Location(bucket, key))
		}
		return nil, errors.Wrapf(err, "read object '%s'", s.Location(bucket, key))
	}

	s.logger.WithField("action", "s3_get").
		WithField("bucket", bucket).
		WithField("key", key).
		WithField("size", len(content)).
		Debug("read object")
	return content, nil
}

func (s *s3) Put(ctx context.Context, bucket, key string, content []byte) error {
	reader := bytes.NewReader(content)
	_, err := s.client.PutObject(ctx, bucket, key, reader, reader.Size(),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return errors.Wrapf(err, "put object '%s'", s.Location(bucket, key))
	}

	s.logger.WithField("action", "s3_put").
		WithField("bucket", bucket).
		WithField("key", key).
		WithField("size", len(content)).
		Debug("wrote object")
	return nil
}

func (s *s3) Location(bucket, key string) string {
	return "s3://" + path.Join(bucket, key)
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey"
}
