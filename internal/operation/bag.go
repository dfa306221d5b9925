// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operation

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/filters"
	"github.com/tfctl/awsctl/internal/log"
)

// Tag is a Key=Value pair bound to a tags param.
type Tag struct {
	Key   string
	Value string
}

// Bag is the per-invocation view over the bound params. Getters return nil
// for params the caller did not supply so that requests only carry the
// fields that were actually bound.
type Bag struct {
	cmd    *cli.Command
	params map[string]Param
}

// NewBag wraps cmd for the given params.
func NewBag(cmd *cli.Command, params []Param) *Bag {
	b := &Bag{cmd: cmd, params: make(map[string]Param, len(params))}
	for _, p := range params {
		b.params[p.Field] = p
	}
	return b
}

func (b *Bag) flag(field string) (string, bool) {
	p, ok := b.params[field]
	if !ok {
		log.Debugf("bag: unknown param %s", field)
		return "", false
	}
	name := p.FlagName()
	return name, b.cmd.IsSet(name)
}

// IsSet reports whether the param was bound.
func (b *Bag) IsSet(field string) bool {
	_, set := b.flag(field)
	return set
}

func (b *Bag) String(field string) *string {
	name, set := b.flag(field)
	if !set {
		return nil
	}
	v := b.cmd.String(name)
	return &v
}

// Strings returns the bound list, or nil.
func (b *Bag) Strings(field string) []string {
	name, set := b.flag(field)
	if !set {
		return nil
	}
	return b.cmd.StringSlice(name)
}

func (b *Bag) Int32(field string) *int32 {
	name, set := b.flag(field)
	if !set {
		return nil
	}
	v := b.cmd.Int32(name)
	return &v
}

func (b *Bag) Int64(field string) *int64 {
	name, set := b.flag(field)
	if !set {
		return nil
	}
	v := b.cmd.Int64(name)
	return &v
}

func (b *Bag) Bool(field string) *bool {
	name, set := b.flag(field)
	if !set {
		return nil
	}
	v := b.cmd.Bool(name)
	return &v
}

// Time parses the bound RFC3339 value.
func (b *Bag) Time(field string) (*time.Time, error) {
	name, set := b.flag(field)
	if !set {
		return nil, nil
	}
	dt, err := strfmt.ParseDateTime(b.cmd.String(name))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	t := time.Time(dt)
	return &t, nil
}

// Tags parses the bound Key=Value list.
func (b *Bag) Tags(field string) ([]Tag, error) {
	name, set := b.flag(field)
	if !set {
		return nil, nil
	}
	var tags []Tag
	for _, s := range b.cmd.StringSlice(name) {
		k, v, err := splitTag(s)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", name, err)
		}
		tags = append(tags, Tag{Key: k, Value: v})
	}
	return tags, nil
}

// Value returns the bound value in its natural type, or nil.
func (b *Bag) Value(field string) any {
	p, ok := b.params[field]
	if !ok || !b.IsSet(field) {
		return nil
	}
	switch p.Kind {
	case Strings:
		return b.Strings(field)
	case Int32:
		return *b.Int32(field)
	case Int64:
		return *b.Int64(field)
	case Bool:
		return *b.Bool(field)
	case Tags:
		tags, _ := b.Tags(field)
		m := make(map[string]string, len(tags))
		for _, t := range tags {
			m[t.Key] = t.Value
		}
		return m
	default:
		return *b.String(field)
	}
}

// Display renders the bound value for prompts and logs.
func (b *Bag) Display(field string) string {
	switch v := b.Value(field).(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(v, ",")
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case map[string]string:
		parts := make([]string, 0, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			parts = append(parts, k+"="+v[k])
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// ServerFilters returns the server-side entries of --filter.
func (b *Bag) ServerFilters() []filters.Filter {
	if !b.cmd.IsSet("filter") {
		return nil
	}
	return filters.ServerSide(b.cmd.String("filter"))
}

// serverFilterKey returns the key of the first underscore prefixed --filter
// entry, whatever its operand.
func (b *Bag) serverFilterKey() (string, bool) {
	if !b.cmd.IsSet("filter") {
		return "", false
	}
	for _, f := range filters.BuildFilters(b.cmd.String("filter")) {
		if f.ServerSide {
			return f.Key, true
		}
	}
	return "", false
}

// WarnMissing writes a warning for each required param that was not bound.
// The service does the authoritative validation so the call still proceeds.
func (b *Bag) WarnMissing(w io.Writer, params []Param) {
	for _, p := range params {
		if p.Required && !b.IsSet(p.Field) {
			fmt.Fprintf(w, "warning: you are passing no value for parameter --%s which is marked as required\n", p.FlagName())
		}
	}
}
