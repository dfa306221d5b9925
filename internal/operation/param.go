// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operation

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/go-openapi/strfmt"
	"github.com/urfave/cli/v3"
)

// Kind is the value type of a parameter.
type Kind int

const (
	String Kind = iota
	Strings
	Int32
	Int64
	Bool
	Time
	Tags
)

func (k Kind) String() string {
	switch k {
	case Strings:
		return "strings"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Bool:
		return "bool"
	case Time:
		return "timestamp"
	case Tags:
		return "tags"
	default:
		return "string"
	}
}

// Param describes one request field exposed as a flag.
type Param struct {
	// Field is the SDK request field name, e.g. VpnGatewayId.
	Field string
	Kind  Kind
	Usage string
	// Required params are warned about when unbound. The service does the
	// real validation.
	Required bool
	Aliases  []string
	// Enum limits a String or Strings param to the listed values.
	Enum []string
	// Flag overrides the derived flag name.
	Flag string
}

// FlagName is the CLI flag for the param: the override if set, otherwise
// the kebab-case form of the field.
func (p Param) FlagName() string {
	if p.Flag != "" {
		return p.Flag
	}
	return KebabCase(p.Field)
}

// CLIFlag builds the urfave/cli flag for the param.
func (p Param) CLIFlag() cli.Flag {
	usage := p.Usage
	if p.Required {
		usage += " (required)"
	}
	if len(p.Enum) > 0 {
		usage += fmt.Sprintf(" [%s]", strings.Join(p.Enum, ", "))
	}

	name := p.FlagName()
	switch p.Kind {
	case Strings:
		flag := &cli.StringSliceFlag{Name: name, Aliases: p.Aliases, Usage: usage}
		if len(p.Enum) > 0 {
			check := enumValidator(p.Enum)
			flag.Validator = func(values []string) error {
				for _, v := range values {
					if err := check(v); err != nil {
						return err
					}
				}
				return nil
			}
		}
		return flag
	case Tags:
		return &cli.StringSliceFlag{
			Name:      name,
			Aliases:   p.Aliases,
			Usage:     usage + " (Key=Value, repeatable)",
			Validator: validateTags,
		}
	case Int32:
		return &cli.Int32Flag{Name: name, Aliases: p.Aliases, Usage: usage}
	case Int64:
		return &cli.Int64Flag{Name: name, Aliases: p.Aliases, Usage: usage}
	case Bool:
		return &cli.BoolFlag{Name: name, Aliases: p.Aliases, Usage: usage, HideDefault: true}
	case Time:
		return &cli.StringFlag{
			Name:    name,
			Aliases: p.Aliases,
			Usage:   usage + " (RFC3339)",
			Validator: func(v string) error {
				_, err := strfmt.ParseDateTime(v)
				return err
			},
		}
	default:
		flag := &cli.StringFlag{Name: name, Aliases: p.Aliases, Usage: usage}
		if len(p.Enum) > 0 {
			flag.Validator = enumValidator(p.Enum)
		}
		return flag
	}
}

func enumValidator(enum []string) func(string) error {
	return func(v string) error {
		if !slices.Contains(enum, v) {
			return fmt.Errorf("%q must be one of %v", v, enum)
		}
		return nil
	}
}

func validateTags(values []string) error {
	for _, v := range values {
		if _, _, err := splitTag(v); err != nil {
			return err
		}
	}
	return nil
}

// splitTag parses Key=Value. The value may be empty; the key may not.
func splitTag(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return "", "", fmt.Errorf("invalid tag %q: expected Key=Value", s)
	}
	return strings.TrimSpace(k), v, nil
}

// KebabCase converts an SDK field name to a flag name:
// VpnGatewayId -> vpn-gateway-id, CNAMEPrefix -> cname-prefix,
// Ipv6AddressCount -> ipv6-address-count.
func KebabCase(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Spec is the static description of an operation.
type Spec struct {
	// Service is the command group, e.g. "ec2".
	Service string
	// Name is the command name, e.g. "attach-vpn-gateway".
	Name string
	// API is the SDK operation name, e.g. "AttachVpnGateway".
	API   string
	Usage string
	// Params mirror the request fields the command exposes.
	Params []Param
	// Select is the default --select projection.
	Select string
	// Attrs are the default text columns used with the default Select.
	Attrs []string
	// Confirm marks mutating operations that prompt unless --force.
	Confirm bool
	// Target names the param shown in the confirmation prompt.
	Target string
	// Paginated is set for operations that follow NextToken.
	Paginated bool
	// ServerFilters marks operations that take EC2-style request Filters.
	ServerFilters bool
}

// Param looks up a param by field name.
func (s Spec) Param(field string) (Param, bool) {
	for _, p := range s.Params {
		if p.Field == field {
			return p, true
		}
	}
	return Param{}, false
}
