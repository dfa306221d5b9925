// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/awsctl/internal/log"
)

// lengthRegex finds length transforms such as "12" or "-16" in a spec.
var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr is one column of output. Key is a driller path into each record.
type Attr struct {
	// The driller path to extract from each record.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also used as the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Only string values are transformed.
func (a *Attr) Transform(value any) any {
	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	result = a.transformTime(result)
	result = a.transformCase(result)
	result = a.transformLength(result)

	return result
}

// transformTime converts an RFC3339 timestamp to local time ("t") or a
// relative time ("T"). SDK timestamps carry fractional seconds, which
// time.RFC3339 accepts on parse.
func (a *Attr) transformTime(value string) string {
	if !strings.ContainsAny(a.TransformSpec, "tT") {
		return value
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	local := t.In(time.Now().Location())

	if strings.Contains(a.TransformSpec, "T") {
		value = humanize.Time(local)
		log.Tracef("time ago: result=%s", value)
	} else {
		value = local.Format("2006-01-02T15:04:05MST")
		log.Tracef("time local: result=%s", value)
	}
	return value
}

// transformCase applies whichever case transform appears last so that a
// per-attr spec beats a global one prepended ahead of it.
// IOW... --attrs '*::U,VpcId::l' will be lower case.
func (a *Attr) transformCase(value string) string {
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	switch {
	case lastL > lastU:
		value = strings.ToLower(value)
	case lastU > lastL:
		value = strings.ToUpper(value)
	}
	return value
}

// transformLength truncates to N characters, or for -N keeps the ends and
// elides the middle. The last length in the spec wins.
func (a *Attr) transformLength(value string) string {
	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return value
	}

	l, _ := strconv.Atoi(match[len(match)-1])
	abs := int(math.Abs(float64(l)))
	if len(value) <= abs {
		return value
	}

	if l < 0 {
		keep := abs/2 - 1
		if keep < 1 {
			keep = 1
		}
		value = value[:keep] + ".." + value[len(value)-keep:]
		log.Tracef("length middle: result=%s", value)
		return value
	}

	value = value[:l]
	log.Tracef("length trunc: result=%s", value)
	return value
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Parse builds an Attr from one key:output:transform spec. The output key
// defaults to the last dotted segment of the key with any bracket selector
// removed.
func Parse(spec string) Attr {
	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	attr := Attr{Include: true}
	fields := strings.Split(spec, ":")

	// A leading ! keeps the attr for filtering and sorting but out of the
	// output.
	attr.Key = strings.TrimSpace(fields[keyIdx])
	if strings.HasPrefix(attr.Key, "!") {
		attr.Include = false
		attr.Key = attr.Key[1:]
	}
	// Paths are always rooted at the record. A leading . is accepted for
	// familiarity.
	attr.Key = strings.TrimPrefix(attr.Key, ".")

	if attr.Key == "*" {
		attr.Include = false
	}

	switch {
	case len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "":
		attr.OutputKey = strings.TrimSpace(fields[outputIdx])
	case len(fields) > outputIdx:
		attr.OutputKey = attr.Key
	default:
		attr.OutputKey = defaultOutputKey(attr.Key)
	}

	if len(fields) > transformIdx {
		attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
	}

	log.Tracef("attr parsed: key=%s, outputKey=%s, include=%v, spec=%s",
		attr.Key, attr.OutputKey, attr.Include, attr.TransformSpec)
	return attr
}

// defaultOutputKey turns "State.Name" into "Name" and "Tags[Name]" into
// "Name".
func defaultOutputKey(key string) string {
	segments := strings.Split(key, ".")
	last := segments[len(segments)-1]

	open := strings.Index(last, "[")
	if open < 0 {
		return last
	}
	inner := strings.TrimSuffix(last[open+1:], "]")
	if inner != "" && inner != "*" && strings.Trim(inner, "0123456789") != "" {
		return inner
	}
	return last[:open]
}

// Set parses each comma separated spec from --attrs and merges it into the
// AttrList. A spec naming an existing attr (by key or output key) updates it
// in place.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)

	for _, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		attr := Parse(spec)

		if i := a.index(attr.Key); i >= 0 {
			(*a)[i].Include = attr.Include
			(*a)[i].OutputKey = attr.OutputKey
			(*a)[i].TransformSpec = attr.TransformSpec
			log.Tracef("existing updated: i=%d", i)
			continue
		}

		*a = append(*a, attr)
	}

	return nil
}

func (a *AttrList) index(key string) int {
	for i := range *a {
		if (*a)[i].Key == key || (*a)[i].OutputKey == key {
			return i
		}
	}
	return -1
}

// SetGlobalTransformSpec prepends the "*" attr's transform spec onto every
// attr in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// If there is more than one global spec, take the first.
	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}

	if spec == "" {
		log.Debugf("no global spec")
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	log.Debugf("global spec prepended: spec=%s", spec)

	return nil
}

// Keys returns the key of every attr in order.
func (a AttrList) Keys() []string {
	keys := make([]string, 0, len(a))
	for _, attr := range a {
		keys = append(keys, attr.Key)
	}
	return keys
}

// String returns a string representation of the AttrList. This matches the
// format of the --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
