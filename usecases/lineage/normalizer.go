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

	"github.com/pkg/errors"

	enterrors "github.com/Honeyfish20/data-lineage-on-aws-2024/entities/errors"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/entities/lineage"
)

// Normalize rewrites every key and child of raw to its short name. Children
// keep their order; duplicates, self loops and cycles pass through.
//
// Raw keys are visited in ascending order, so when two keys share a short
// name the greater one wins and the other is reported as a collision.
func Normalize(raw lineage.RawMap) (lineage.Map, []lineage.Collision) {
	out := make(lineage.Map, len(raw))
	origin := make(map[string]string, len(raw))
	var collisions []lineage.Collision

	for _, key := range raw.Keys() {
		children := raw[key]
		short := lineage.ShortName(key)

		shortChildren := make([]string, len(children))
		for i, child := range children {
			shortChildren[i] = lineage.ShortName(child)
		}

		if prev, ok := origin[short]; ok {
			collisions = append(collisions, lineage.Collision{
				ShortName: short,
				Kept:      key,
				Dropped:   prev,
			})
		}
		origin[short] = key
		out[short] = shortChildren
	}

	return out, collisions
}

// DecodeRaw parses a raw export. The document must be an object with a
// child_map field mapping strings to lists of strings.
func DecodeRaw(content []byte) (lineage.RawMap, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, enterrors.NewErrInput(errors.Wrap(err, "parse raw lineage document"))
	}

	field, ok := doc[lineage.ChildMapField]
	if !ok {
		return nil, enterrors.NewErrInputf("raw lineage document has no %q field", lineage.ChildMapField)
	}

	var raw lineage.RawMap
	if err := json.Unmarshal(field, &raw); err != nil {
		return nil, enterrors.NewErrInput(errors.Wrapf(err, "parse %q", lineage.ChildMapField))
	}
	if raw == nil {
		return nil, enterrors.NewErrInputf("%q is null", lineage.ChildMapField)
	}
	return raw, nil
}

// DecodeEnvelope parses a persisted lineage map. A document without a
// lineage_map field yields an empty map.
func DecodeEnvelope(content []byte) (lineage.Map, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, enterrors.NewErrInput(errors.Wrap(err, "parse lineage document"))
	}

	m := lineage.Map{}
	field, ok := doc[lineage.LineageMapField]
	if !ok {
		return m, nil
	}
	if err := json.Unmarshal(field, &m); err != nil {
		return nil, enterrors.NewErrInput(errors.Wrapf(err, "parse %q", lineage.LineageMapField))
	}
	if m == nil {
		m = lineage.Map{}
	}
	return m, nil
}

// EncodeEnvelope renders m as {"lineage_map": m}.
func EncodeEnvelope(m lineage.Map) ([]byte, error) {
	if m == nil {
		m = lineage.Map{}
	}
	content, err := json.Marshal(lineage.Envelope{LineageMap: m})
	if err != nil {
		return nil, errors.Wrap(err, "marshal lineage map")
	}
	return content, nil
}
