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

package gremlin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleTraversals(t *testing.T) {
	assert.Equal(t, "g.V().drop()", G.V().Drop().String())
	assert.Equal(t, "g.V().count()", G.V().Count().String())
	assert.Nil(t, G.V().Count().Bindings())
}

func TestUpsertVertexInlined(t *testing.T) {
	p := NewParams(false)
	name := p.String("name", `it's "quoted"`)
	q := G.V().Has("lineage_node", "node_name", name).Fold().
		Coalesce(Current().Unfold(), Current().AddV("lineage_node").Property("node_name", name))

	expected := `g.V().has("lineage_node", "node_name", 'it\'s \"quoted\"').fold()` +
		`.coalesce(__.unfold(), __.addV("lineage_node").property("node_name", 'it\'s \"quoted\"'))`
	assert.Equal(t, expected, q.String())
	assert.Empty(t, q.Bindings())
}

func TestUpsertVertexWithBindings(t *testing.T) {
	p := NewParams(true)
	name := p.String("name", "orders")
	q := G.V().Has("lineage_node", "node_name", name).Fold().
		Coalesce(Current().Unfold(), Current().AddV("lineage_node").Property("node_name", name))

	assert.Equal(t, `g.V().has("lineage_node", "node_name", name1).fold()`+
		`.coalesce(__.unfold(), __.addV("lineage_node").property("node_name", name1))`, q.String())
	assert.Equal(t, map[string]interface{}{"name1": "orders"}, q.Bindings())
}

func TestBindingsAreUniqueAndIsolated(t *testing.T) {
	p := NewParams(true)
	a := p.String("node", "a")
	b := p.String("node", "b")
	require.NotEqual(t, a.String(), b.String())

	prefix := G.V().Has("l", "k", a)
	left := prefix.As("x")
	right := prefix.V().Has("l", "k", b)

	assert.Len(t, left.Bindings(), 1)
	assert.Len(t, right.Bindings(), 2)
	assert.Equal(t, "b", right.Bindings()[b.String()])
}

func TestLiteralIsNotInterpolated(t *testing.T) {
	assert.Equal(t, `'${env.HOME}'`, Literal("${env.HOME}").String())
	assert.Equal(t, `'$price'`, Literal("$price").String())
	assert.Equal(t, `'a\\b\'c'`, Literal(`a\b'c`).String())
}

func TestInvalidBindingPrefixFallsBack(t *testing.T) {
	v := NewParams(true).String("not valid!", "x")
	assert.Equal(t, "p1", v.String())
}

func TestEscapeString(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{`a"b`, `a\"b`},
		{`a\b`, `a\\b`},
		{"a'b", `a\'b`},
		{"${x}", "${x}"},
		{"tab\tq", `tab\tq`},
		{"line\nbreak", `line\nbreak`},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, EscapeString(test.in))
	}
}

func TestDecodeData(t *testing.T) {
	t.Run("plain list", func(t *testing.T) {
		data := DecodeData(json.RawMessage(`[3]`))
		resp := &Response{Data: data}
		count, ok := resp.Count()
		require.True(t, ok)
		assert.Equal(t, int64(3), count)
	})

	t.Run("graphson typed list", func(t *testing.T) {
		raw := `{"@type":"g:List","@value":[{"@type":"g:Int64","@value":42}]}`
		resp := &Response{Data: DecodeData(json.RawMessage(raw))}
		count, ok := resp.Count()
		require.True(t, ok)
		assert.Equal(t, int64(42), count)
	})

	t.Run("empty and invalid", func(t *testing.T) {
		assert.Nil(t, DecodeData(nil))
		assert.Nil(t, DecodeData(json.RawMessage(`{not json`)))
		_, ok := (&Response{}).Count()
		assert.False(t, ok)
	})
}
