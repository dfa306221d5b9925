// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/awsctl/internal/attrs"
	"github.com/tfctl/awsctl/internal/driller"
	"github.com/tfctl/awsctl/internal/log"
)

// filterRegex splits a filter expression into an optional leading
// underscore (server-side), a key, an optional operator (optionally negated
// with '!') and a target. Operators are one of = ^ ~ < > @ or /. Examples:
// "State" (key only), "State=available" (key + operator + target),
// "_vpc-id=vpc-1|vpc-2" (server-side key + operator + alternatives).
var filterRegex = regexp.MustCompile(`^(_)?([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression including the key, operand,
// optional negation, server-side flag and value to match against.
type Filter struct {
	Key        string `yaml:"key" json:"Key"`
	Negate     bool   `yaml:"negate" json:"Negate"`
	Operand    string `yaml:"operand" json:"Operand"`
	ServerSide bool   `yaml:"serverSide" json:"ServerSide"`
	Value      string `yaml:"value" json:"Value"`
}

// Values splits a server-side filter value into its '|' separated
// alternatives.
func (f Filter) Values() []string {
	if f.Value == "" {
		return nil
	}
	return strings.Split(f.Value, "|")
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed expressions are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("AWSCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[2])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		operand := parts[3]
		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:        key,
			ServerSide: parts[1] == "_",
			Negate:     negate,
			Operand:    operand,
			Value:      parts[4],
		})
	}

	return filters
}

// ServerSide returns only the server-side (underscore prefixed) filters in
// spec. These are handed to the service API rather than applied locally.
func ServerSide(spec string) []Filter {
	var result []Filter
	for _, f := range BuildFilters(spec) {
		if !f.ServerSide {
			continue
		}
		if f.Operand != "=" || f.Negate {
			log.Warnf("server-side filter %s only supports '=', ignoring", f.Key)
			continue
		}
		result = append(result, f)
	}
	return result
}

// FilterDataset returns the records in candidates that pass every
// client-side filter in spec, each reduced to the attrs' output keys.
// Transforms are applied later, during output.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]any {
	//nolint:prealloc
	var filteredResults []map[string]any

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, attrs, filters) {
			continue
		}

		result := make(map[string]any)
		for _, attr := range attrs {
			result[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		filteredResults = append(filteredResults, result)
	}

	return filteredResults
}

// applyFilters returns true if the candidate record matches all of the
// client-side filters. A filter key naming an attr's output key uses that
// attr's path; any other key is treated as a driller path into the record.
func applyFilters(candidate gjson.Result, attrs attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		if filter.ServerSide {
			continue
		}

		key := filter.Key
		for _, attr := range attrs {
			if attr.OutputKey == filter.Key {
				key = attr.Key
				break
			}
		}

		value := driller.Driller(candidate.Raw, key).Value()

		// A key-only filter tests for presence.
		if filter.Operand == "" {
			if (value != nil) == filter.Negate {
				return false
			}
			continue
		}

		if value == nil {
			return false
		}

		var result bool
		switch v := value.(type) {
		case string:
			result = checkStringOperand(v, filter)
		case bool:
			result = checkStringOperand(strconv.FormatBool(v), filter)
		default:
			if num, ok := toFloat64(value); ok {
				result = checkNumericOperand(num, filter)
			} else {
				result = checkContainsOperand(value, filter)
			}
		}

		if !result {
			return false
		}
	}

	return true
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against list or map values. A list of AWS tags matches on tag key.
func checkContainsOperand(value any, filter Filter) bool {
	if filter.Operand != "@" {
		log.Errorf("unsupported operand for %T: %s", value, filter.Operand)
		return false
	}

	found := false
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprintf("%v", item) == filter.Value {
				found = true
				break
			}
			if tag, ok := item.(map[string]any); ok && tag["Key"] == filter.Value {
				found = true
				break
			}
		}
	case map[string]any:
		_, found = val[filter.Value]
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}

	return found != filter.Negate
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate (e.g., != is represented as Negate + "=").
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

// toFloat64 normalizes the numeric types gjson and yaml produce.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
