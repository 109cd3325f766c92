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

// Package gremlin builds Gremlin traversals as strings. Values can either be
// escaped into the query or passed as bindings next to it.
package gremlin

import (
	"encoding/json"
)

// Gremlin is anything that can be sent to a Gremlin endpoint.
type Gremlin interface {
	String() string
	Bindings() map[string]interface{}
}

// Response of a successful query. Raw is the body as received; Data holds
// the result data, decoded from GraphSON where possible.
type Response struct {
	Raw  []byte
	Data []Datum
}

type Datum struct {
	Datum interface{}
}

// Count interprets the response of a count() traversal.
func (r *Response) Count() (int64, bool) {
	if r == nil || len(r.Data) != 1 {
		return 0, false
	}
	switch v := r.Data[0].Datum.(type) {
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

// DecodeData turns a result.data value into a list of datums. Both plain
// JSON lists and GraphSON 2/3 typed values ({"@type": ..., "@value": ...})
// are accepted; anything else yields no data.
func DecodeData(raw json.RawMessage) []Datum {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	v = untype(v)
	list, ok := v.([]interface{})
	if !ok {
		if v == nil {
			return nil
		}
		return []Datum{{Datum: v}}
	}
	data := make([]Datum, 0, len(list))
	for _, d := range list {
		data = append(data, Datum{Datum: d})
	}
	return data
}

// untype strips GraphSON type wrappers recursively.
func untype(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		if inner, ok := t["@value"]; ok {
			if _, typed := t["@type"]; typed {
				return untype(inner)
			}
		}
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = untype(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = untype(val)
		}
		return out
	default:
		return v
	}
}
