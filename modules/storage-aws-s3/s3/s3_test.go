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

package s3

import (
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	c := NewConfig("", false, "")
	assert.Equal(t, DEFAULT_ENDPOINT, c.Endpoint())
	assert.False(t, c.UseSSL())

	c = NewConfig("localhost:9000", true, "eu-west-1")
	assert.Equal(t, "localhost:9000", c.Endpoint())
	assert.True(t, c.UseSSL())
	assert.Equal(t, "eu-west-1", c.Region())
}

func TestNew(t *testing.T) {
	logger, _ := test.NewNullLogger()
	t.Setenv(AWS_REGION, "us-east-1")

	store, err := New(NewConfig("localhost:9000", false, ""), logger)
	require.Nil(t, err)
	assert.Equal(t, "s3://data-lineage/athena_dbt_lineage_map.json",
		store.Location("data-lineage", "athena_dbt_lineage_map.json"))

	_, err = New(NewConfig("http://localhost:9000/with/path", false, ""), logger)
	assert.NotNil(t, err)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{StatusCode: http.StatusNotFound}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.False(t, isNotFound(minio.ErrorResponse{StatusCode: http.StatusForbidden, Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("connection reset")))
}
