// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/staranto/excomp/internal/attrs"
	"github.com/staranto/excomp/internal/params"
)

type sortKey struct {
	name          string
	descending    bool
	caseSensitive bool
}

// parseSortSpec splits a --sort spec. A leading - sorts descending and a
// leading ! compares strings case sensitively. Both may be combined in
// either order.
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		k := sortKey{}
		for len(part) > 0 && (part[0] == '-' || part[0] == '!') {
			if part[0] == '-' {
				k.descending = true
			} else {
				k.caseSensitive = true
			}
			part = part[1:]
		}
		if part == "" {
			continue
		}
		k.name = part
		keys = append(keys, k)
	}
	return keys
}

// ResolveSortSpec rewrites the keys of spec to the output keys of al, so a
// row can be sorted by either name. Unknown keys are left as given.
func ResolveSortSpec(spec string, al attrs.AttrList) string {
	keys := parseSortSpec(spec)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		prefix := ""
		if k.descending {
			prefix += "-"
		}
		if k.caseSensitive {
			prefix += "!"
		}
		name := k.name
		if attr, ok := al.Lookup(name); ok {
			name = attr.OutputKey
		}
		parts = append(parts, prefix+name)
	}
	return strings.Join(parts, ",")
}

// SortDataset stably sorts dataset in place per spec. An empty spec keeps
// the original order.
func SortDataset(dataset []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(dataset, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(dataset[i][k.name], dataset[j][k.name], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareValues orders nil first, then numbers, bools (false before true)
// and strings. Strings that both parse as numbers compare numerically so
// the textual value column sorts sensibly. Out of range text such as 1e400
// saturates and still counts as a number.
func compareValues(a, b interface{}, caseSensitive bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if fa, ok := asNumber(a); ok {
		if fb, ok := asNumber(b); ok {
			return compareFloats(fa, fb)
		}
	}

	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			default:
				return 1
			}
		}
	}

	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	if !caseSensitive {
		sa, sb = strings.ToLower(sa), strings.ToLower(sb)
	}
	return strings.Compare(sa, sb)
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := params.Parse(n)
		return f, err == nil
	}
	return 0, false
}

// compareFloats sorts NaN before every other number.
func compareFloats(a, b float64) int {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return -1
	case math.IsNaN(b):
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
