// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

type selectKind int

const (
	selectAll selectKind = iota
	selectParam
	selectPath
)

// Selector projects a response (or a bound param) into output records.
type Selector struct {
	raw   string
	kind  selectKind
	field string
}

// ParseSelector validates a --select value against the operation's params.
//
//	*            the whole response
//	^Field       the bound value of param Field
//	anything     a gjson path into the response
func ParseSelector(s string, spec Spec) (Selector, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Selector{}, fmt.Errorf("--select must not be empty")
	case s == "*":
		return Selector{raw: s, kind: selectAll}, nil
	case strings.HasPrefix(s, "^"):
		field := strings.TrimPrefix(s, "^")
		if _, ok := spec.Param(field); !ok {
			return Selector{}, fmt.Errorf("--select %s: %s is not a parameter of %s", s, field, spec.Name)
		}
		return Selector{raw: s, kind: selectParam, field: field}, nil
	default:
		return Selector{raw: s, kind: selectPath, field: s}, nil
	}
}

func (s Selector) String() string { return s.raw }

// IsParam reports whether the selector echoes a bound param.
func (s Selector) IsParam() bool { return s.kind == selectParam }

// Apply returns the selected records. Lists are flattened and a missing path
// yields no records.
func (s Selector) Apply(resp any, bag *Bag) ([]json.RawMessage, error) {
	if s.kind == selectParam {
		v := bag.Value(s.field)
		if v == nil {
			return nil, nil
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", s.field, err)
		}
		return flatten(gjson.ParseBytes(raw)), nil
	}

	doc, err := ResponseJSON(resp)
	if err != nil {
		return nil, err
	}
	if s.kind == selectAll {
		return []json.RawMessage{doc}, nil
	}

	res := gjson.GetBytes(doc, s.field)
	if !res.Exists() {
		return nil, nil
	}
	return flatten(res), nil
}

func flatten(res gjson.Result) []json.RawMessage {
	if !res.IsArray() {
		return []json.RawMessage{json.RawMessage(res.Raw)}
	}
	var out []json.RawMessage
	for _, el := range res.Array() {
		out = append(out, json.RawMessage(el.Raw))
	}
	return out
}

// ResponseJSON encodes an SDK output without its ResultMetadata.
func ResponseJSON(resp any) (json.RawMessage, error) {
	if resp == nil {
		return json.RawMessage("null"), nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		// Not an object, nothing to strip.
		return raw, nil
	}
	if _, ok := m["ResultMetadata"]; !ok {
		return raw, nil
	}
	delete(m, "ResultMetadata")
	return json.Marshal(m)
}

// Records converts selected records into the JSON array fed to the output
// pipeline. Non-object records are wrapped as {"Value": x}.
func Records(recs []json.RawMessage) []byte {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range recs {
		if i > 0 {
			b.WriteByte(',')
		}
		if gjson.ParseBytes(r).IsObject() {
			b.Write(r)
			continue
		}
		b.WriteString(`{"Value":`)
		b.Write(r)
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return []byte(b.String())
}
