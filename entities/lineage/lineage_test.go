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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"model.foo.bar", "bar"},
		{"source.project.schema.table", "table"},
		{"bar", "bar"},
		{"", ""},
		{"model.foo.", ""},
		{".leading", "leading"},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			got := ShortName(test.in)
			assert.Equal(t, test.expected, got)
			assert.Equal(t, got, ShortName(got), "short name must be idempotent")
		})
	}
}

func TestMapHelpers(t *testing.T) {
	m := Map{"c": {"a"}, "a": {"b", "c"}, "b": nil}

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, 3, m.EdgeCount())
	assert.Equal(t, []string{"x", "y"}, RawMap{"y": nil, "x": nil}.Keys())
}

func TestEnvelopeEncoding(t *testing.T) {
	out, err := json.Marshal(Envelope{LineageMap: Map{"bar": {"baz"}}})
	require.Nil(t, err)
	assert.JSONEq(t, `{"lineage_map":{"bar":["baz"]}}`, string(out))
}
