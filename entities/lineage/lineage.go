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

// Package lineage holds the data model shared by the normalizer, the merger
// and the graph loader.
package lineage

import (
	"sort"
	"strings"
)

const (
	// ChildMapField is the field of the raw export holding the dependency map.
	ChildMapField = "child_map"
	// LineageMapField is the envelope field of every persisted lineage map.
	LineageMapField = "lineage_map"
)

// RawMap maps a fully-qualified, dot-delimited node identifier to the
// identifiers of its children.
type RawMap map[string][]string

// Map maps a short node name to the short names of its children. Normalized
// and merged lineage maps share this representation.
type Map map[string][]string

// Envelope is the persisted form of a Map.
type Envelope struct {
	LineageMap Map `json:"lineage_map"`
}

// Collision records a short name that more than one raw identifier mapped to.
type Collision struct {
	ShortName string `json:"short_name"`
	Kept      string `json:"kept"`
	Dropped   string `json:"dropped"`
}

// ShortName returns the last dot-delimited segment of id. ShortName is
// idempotent: ShortName(ShortName(x)) == ShortName(x).
func ShortName(id string) string {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Keys returns the keys of m in ascending order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EdgeCount is the number of parent to child entries, duplicates included.
func (m Map) EdgeCount() int {
	n := 0
	for _, children := range m {
		n += len(children)
	}
	return n
}

// Keys returns the keys of m in ascending order.
func (m RawMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
