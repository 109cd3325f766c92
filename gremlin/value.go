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
	"regexp"
)

var bindingName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Value is an argument of a traversal step. It renders either as an escaped
// string literal or as the name of an entry in the bindings map.
type Value struct {
	expr    string
	binding string
	value   interface{}
}

// String returns how the value appears in the query string.
func (v Value) String() string {
	return v.expr
}

// Literal returns a value inlined into the query as an escaped string. It is
// single quoted, so Groovy never interpolates `$` in it.
func Literal(s string) Value {
	return Value{expr: fmt.Sprintf(`'%s'`, EscapeString(s))}
}

// Params hands out values for one query. With bindings enabled each value
// becomes a named binding, otherwise it is inlined as a literal.
type Params struct {
	bind bool
	n    int
}

func NewParams(bind bool) *Params {
	return &Params{bind: bind}
}

// String returns a value for s. prefix names the binding and must be a
// valid identifier; a counter keeps names unique within one query.
func (p *Params) String(prefix, s string) Value {
	if !p.bind {
		return Literal(s)
	}
	if !bindingName.MatchString(prefix) {
		prefix = "p"
	}
	p.n++
	name := fmt.Sprintf("%s%d", prefix, p.n)
	return Value{expr: name, binding: name, value: s}
}
