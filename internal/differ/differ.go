// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/awsctl/internal/log"
)

// Identical is printed when the two documents have no differences.
const Identical = "The responses are identical."

// Options tune how a diff is rendered.
type Options struct {
	// Ignore lists top-level keys dropped from both sides before comparing.
	Ignore []string
	Color  bool
}

// Diff compares two recorded JSON responses and writes an ASCII diff of
// left to right.
func Diff(w io.Writer, left, right []byte, opts Options) error {
	log.Debugf("diff sizes: left=%d right=%d", len(left), len(right))

	if len(left) == 0 || len(right) == 0 {
		return fmt.Errorf("nothing to compare: both responses must be recorded")
	}

	ldoc, err := decode(left, opts.Ignore)
	if err != nil {
		return fmt.Errorf("failed to unmarshal left response: %w", err)
	}
	rdoc, err := decode(right, opts.Ignore)
	if err != nil {
		return fmt.Errorf("failed to unmarshal right response: %w", err)
	}

	delta := gojsondiff.New().CompareObjects(ldoc, rdoc)
	if !delta.Modified() {
		fmt.Fprintln(w, Identical)
		return nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       opts.Color,
	}

	out, err := formatter.NewAsciiFormatter(ldoc, config).Format(delta)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, out)
	return nil
}

// decode unmarshals a response, wrapping non-object documents so they can be
// compared as objects.
func decode(data []byte, ignore []string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	doc, ok := v.(map[string]any)
	if !ok {
		doc = map[string]any{"Value": v}
	}

	for _, key := range ignore {
		if key != "" {
			delete(doc, key)
		}
	}
	return doc, nil
}
