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

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/config"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in       string
		expected logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"DEBUG", logrus.DebugLevel},
		{"warning", logrus.WarnLevel},
		{"trace", logrus.TraceLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		level, err := LevelFromString(tt.in)
		require.Nil(t, err)
		assert.Equal(t, tt.expected, level)
	}

	_, err := LevelFromString("verbose")
	assert.Equal(t, errLogLevelNotRecognized, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.Logging{Level: "debug"}, "lineage-loader", &buf)
	require.Nil(t, err)

	logger.WithField("action", "graph_drop").Debug("cleared graph database")

	var entry map[string]interface{}
	require.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lineage-loader", entry["service"])
	assert.Equal(t, "graph_drop", entry["action"])
	assert.Equal(t, "cleared graph database", entry["msg"])
	assert.Contains(t, entry, "build_go_version")
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.Logging{Level: "info", Format: "text"}, "lineage-normalizer", &buf)
	require.Nil(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "service=lineage-normalizer")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.Logging{Level: "verbose"}, "x", &bytes.Buffer{})
	assert.NotNil(t, err)
}
