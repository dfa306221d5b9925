// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex splits one path segment into its key and optional bracket
// selector: an index, "*" for the whole list or a tag key.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[([^\]]*)\])?$`)

// Driller navigates JSON using a dot path. Each segment may carry a bracket
// selector:
//
//	Instances[0]      index into a list
//	Instances[*]      keep the whole list
//	Tags[Name]        value of the {Key,Value} tag whose Key is Name
//
// A single-element list without a selector collapses to that element.
func Driller(jsonData string, path string) gjson.Result {
	current := gjson.Parse(jsonData)

	for _, p := range strings.Split(path, ".") {
		matches := segmentRegex.FindStringSubmatch(p)
		if len(matches) == 0 {
			return gjson.Result{} // Invalid path segment
		}

		val := current.Get(matches[1])
		selector := matches[2]

		switch {
		case selector == "" || selector == "*":
			// A lone element stands in for its list unless the caller asked
			// for the list.
			if selector == "" && val.IsArray() {
				if arr := val.Array(); len(arr) == 1 {
					val = arr[0]
				}
			}
		case isIndex(selector):
			i, _ := strconv.Atoi(selector)
			arr := val.Array()
			if !val.IsArray() || i >= len(arr) {
				return gjson.Result{}
			}
			val = arr[i]
		default:
			val = tagValue(val, selector)
			if !val.Exists() {
				return val
			}
		}

		current = val
	}

	return current
}

// tagValue finds the Value of the AWS tag with the given Key.
func tagValue(tags gjson.Result, key string) gjson.Result {
	if !tags.IsArray() {
		return gjson.Result{}
	}
	for _, tag := range tags.Array() {
		if tag.Get("Key").String() == key {
			return tag.Get("Value")
		}
	}
	return gjson.Result{}
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
