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
	"sort"

	"github.com/Honeyfish20/data-lineage-on-aws-2024/entities/lineage"
)

// Merge returns the shallow union of a and b. On a shared key b's children
// replace a's; they are not concatenated. The shared keys are returned in
// ascending order. Neither input is modified.
func Merge(a, b lineage.Map) (lineage.Map, []string) {
	merged := make(lineage.Map, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}

	var overwritten []string
	for k, v := range b {
		if _, ok := merged[k]; ok {
			overwritten = append(overwritten, k)
		}
		merged[k] = v
	}
	sort.Strings(overwritten)

	return merged, overwritten
}
