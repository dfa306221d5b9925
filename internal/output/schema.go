// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"time"

	"github.com/tfctl/awsctl/internal/log"
)

// maxSchemaDepth limits the depth of schema walking. SDK shapes nest deeply
// and some are recursive.
const maxSchemaDepth = 3

// skipFields are response fields that are never selectable.
var skipFields = map[string]bool{
	"ResultMetadata": true,
}

var timeType = reflect.TypeOf(time.Time{})

// SchemaPaths lists the --select paths available on a response type. Lists
// of structures use the gjson "#" segment, e.g. Reservations.#.Instances.
func SchemaPaths(typ reflect.Type) []string {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	paths := schemaWalker("", typ, 0)
	sort.Strings(paths)
	return paths
}

// DumpSchema writes the selectable paths of typ to w. If w is nil,
// os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Response paths available to the --select flag. Use * for the whole
response or ^Param to echo a parameter value.`)
	fmt.Fprintln(w, "")

	paths := SchemaPaths(typ)
	if len(paths) == 0 {
		log.Debugf("no schema paths: type=%s", typ)
		return
	}

	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
}

// schemaWalker recursively walks the exported fields of an SDK shape.
func schemaWalker(holder string, typ reflect.Type, depth int) []string {
	paths := make([]string, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() || skipFields[field.Name] {
			continue
		}

		name := field.Name
		if holder != "" {
			name = holder + "." + field.Name
		}
		paths = append(paths, name)

		if depth >= maxSchemaDepth {
			continue
		}

		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		switch {
		case ft == timeType:
			continue
		case ft.Kind() == reflect.Struct:
			paths = append(paths, schemaWalker(name, ft, depth+1)...)
		case ft.Kind() == reflect.Slice:
			elem := ft.Elem()
			for elem.Kind() == reflect.Ptr {
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct && elem != timeType {
				paths = append(paths, schemaWalker(name+".#", elem, depth+1)...)
			}
		}
	}

	return paths
}
