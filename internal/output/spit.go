// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/awsctl/internal/attrs"
	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/filters"
	"github.com/tfctl/awsctl/internal/log"
)

// Options control how a dataset is filtered, sorted and rendered.
type Options struct {
	Output  string
	Filter  string
	Sort    string
	Local   bool
	Color   bool
	Titles  bool
	Padding int
	Header  string
	Footer  string
}

// OptionsFrom reads the output flags from cmd. Header and footer come from
// the command's metadata when present.
func OptionsFrom(cmd *cli.Command) Options {
	opts := Options{
		Output:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Local:   cmd.Bool("local"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
	}
	if h, ok := cmd.Metadata["header"].(string); ok {
		opts.Header = h
	}
	if f, ok := cmd.Metadata["footer"].(string); ok {
		opts.Footer = f
	}
	return opts
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided for nil and empty strings.
func InterfaceToString(value any, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		if value == math.Trunc(value) && math.Abs(value) < 1e15 {
			return fmt.Sprintf("%.0f", value)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// DefaultAttrs derives attrs from the sorted keys of the first record in a
// JSON array. Used when a command has no curated column list.
func DefaultAttrs(raw []byte) attrs.AttrList {
	first := gjson.ParseBytes(raw).Get("0")
	if !first.IsObject() {
		return attrs.AttrList{{Key: "Value", OutputKey: "Value", Include: true}}
	}

	keys := make([]string, 0)
	first.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	sort.Strings(keys)

	list := make(attrs.AttrList, 0, len(keys))
	for _, k := range keys {
		list = append(list, attrs.Attr{Key: k, OutputKey: k, Include: true})
	}
	return list
}

// SliceDiceSpit renders raw using the output flags on cmd.
func SliceDiceSpit(raw []byte, attrs attrs.AttrList, cmd *cli.Command, w io.Writer) error {
	return Render(raw, attrs, OptionsFrom(cmd), w)
}

// Render filters, transforms, sorts and writes a JSON array of records.
// raw output skips every step and writes the array untouched.
func Render(raw []byte, attrs attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Output == "raw" {
		_, err := w.Write(raw)
		if err == nil {
			_, err = fmt.Fprintln(w)
		}
		return err
	}

	// Filter first so the remaining steps work on a smaller dataset.
	dataset := filters.FilterDataset(gjson.ParseBytes(raw), attrs, opts.Filter)

	// --local forces a time transform onto every attr. Values that do not
	// parse as timestamps pass through untouched.
	if opts.Local {
		for a := range attrs {
			attrs[a].TransformSpec += "t"
		}
	}

	for _, row := range dataset {
		for _, attr := range attrs {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(dataset, opts.Sort)

	switch opts.Output {
	case "json":
		if dataset == nil {
			dataset = []map[string]any{}
		}
		jsonOutput, err := json.Marshal(included(dataset, attrs))
		if err != nil {
			return fmt.Errorf("failed to marshal json output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(included(dataset, attrs))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml output: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(dataset, attrs, opts, w)
		return nil
	}
}

// included drops the attrs that were only wanted for filtering or sorting.
func included(dataset []map[string]any, attrs attrs.AttrList) []map[string]any {
	for _, row := range dataset {
		for _, attr := range attrs {
			if !attr.Include {
				delete(row, attr.OutputKey)
			}
		}
	}
	return dataset
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]any, attrs attrs.AttrList, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	if len(resultSet) == 0 {
		log.Debug("no rows to render")
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		var headers []string
		for _, attr := range attrs {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// An explicit color in the config wins and it is up to the user to pick
	// one that suits their theme.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
