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
	"fmt"
	"strings"
)

// A query represents the (partial) query build with the DSL, together with
// the bindings its values refer to.
type Query struct {
	query    string
	bindings map[string]interface{}
}

// Return the string representation of this Query.
func (q *Query) String() string {
	return q.query
}

// Bindings returns the values referenced by name from the query string. It
// is nil if every value is inlined.
func (q *Query) Bindings() map[string]interface{} {
	return q.bindings
}

func (q *Query) V() *Query {
	return extendQuery(q, ".V()")
}

// Count how many vertices or edges are selected by the previous query.
func (q *Query) Count() *Query {
	return extendQuery(q, ".count()")
}

func (q *Query) Drop() *Query {
	return extendQuery(q, ".drop()")
}

func (q *Query) Fold() *Query {
	return extendQuery(q, ".fold()")
}

func (q *Query) Unfold() *Query {
	return extendQuery(q, ".unfold()")
}

func (q *Query) AddV(label string) *Query {
	return extendQuery(q, `.addV("%s")`, EscapeString(label))
}

func (q *Query) AddE(label string) *Query {
	return extendQuery(q, `.addE("%s")`, EscapeString(label))
}

// Has selects elements with the given label whose property key equals value.
func (q *Query) Has(label, key string, value Value) *Query {
	return extendValues(q, []Value{value}, `.has("%s", "%s", %s)`,
		EscapeString(label), EscapeString(key), value.expr)
}

func (q *Query) StringProperty(key string, value string) *Query {
	return extendQuery(q, `.property("%s", "%s")`, EscapeString(key), EscapeString(value))
}

func (q *Query) Property(key string, value Value) *Query {
	return extendValues(q, []Value{value}, `.property("%s", %s)`, EscapeString(key), value.expr)
}

func (q *Query) InEWithLabel(label string) *Query {
	return extendQuery(q, `.inE("%s")`, EscapeString(label))
}

func (q *Query) OutV() *Query {
	return extendQuery(q, ".outV()")
}

// Create a reference
func (q *Query) As(name string) *Query {
	return extendQuery(q, `.as("%s")`, EscapeString(name))
}

// Point to a reference
func (q *Query) FromRef(reference string) *Query {
	return extendQuery(q, `.from("%s")`, EscapeString(reference))
}

func (q *Query) Where(query *Query) *Query {
	return extendSubQueries(q, ".where", query)
}

// Coalesce evaluates the traversals in order and emits the result of the
// first one that yields anything.
func (q *Query) Coalesce(queries ...*Query) *Query {
	return extendSubQueries(q, ".coalesce", queries...)
}

func extendQuery(q *Query, format string, args ...interface{}) *Query {
	return &Query{
		query:    q.query + fmt.Sprintf(format, args...),
		bindings: q.bindings,
	}
}

func extendValues(q *Query, values []Value, format string, args ...interface{}) *Query {
	next := extendQuery(q, format, args...)
	for _, v := range values {
		if v.binding != "" {
			next.bindings = mergeBindings(next.bindings, map[string]interface{}{v.binding: v.value})
		}
	}
	return next
}

func extendSubQueries(q *Query, step string, queries ...*Query) *Query {
	parts := make([]string, 0, len(queries))
	bindings := q.bindings
	for _, sub := range queries {
		parts = append(parts, sub.String())
		bindings = mergeBindings(bindings, sub.bindings)
	}
	return &Query{
		query:    fmt.Sprintf("%s%s(%s)", q.query, step, strings.Join(parts, ", ")),
		bindings: bindings,
	}
}

// mergeBindings never mutates its arguments, so queries sharing a prefix do
// not leak bindings into each other.
func mergeBindings(a, b map[string]interface{}) map[string]interface{} {
	if len(b) == 0 {
		return a
	}
	out := make(map[string]interface{}, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
