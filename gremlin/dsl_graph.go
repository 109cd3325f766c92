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

type Graph struct{}

// This is the starting point for building queries.
var G Graph

func (g *Graph) V() *Query {
	return &Query{query: "g.V()"}
}

// Current starts an anonymous traversal, used inside steps such as
// coalesce() and where().
func Current() *Query {
	return &Query{query: "__"}
}
