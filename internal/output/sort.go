// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"slices"
	"strings"
)

type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

// parseSortKeys reads the comma separated --sort value. A leading '-' sorts
// descending and a leading '!' makes string comparison case sensitive.
func parseSortKeys(spec string) []sortKey {
	var keys []sortKey
	for _, f := range strings.Split(spec, ",") {
		f = strings.TrimSpace(f)
		var k sortKey
		f, k.descending = strings.CutPrefix(f, "-")
		k.field, k.caseSensitive = strings.CutPrefix(f, "!")
		if k.field != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// SortDataset orders rows by the output keys in spec. Numbers compare
// numerically and everything else as strings. Rows that tie keep their API
// order.
func SortDataset(resultSet []map[string]any, spec string) {
	keys := parseSortKeys(spec)
	if len(keys) == 0 {
		return
	}

	slices.SortStableFunc(resultSet, func(a, b map[string]any) int {
		for _, k := range keys {
			c := compareValues(a[k.field], b[k.field], k.caseSensitive)
			if k.descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func compareValues(a, b any, caseSensitive bool) int {
	an, aok := number(a)
	bn, bok := number(b)
	if aok && bok {
		return cmp.Compare(an, bn)
	}

	as, bs := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		as, bs = strings.ToLower(as), strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
