// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/awsctl/internal/attrs"
)

const vpcs = `[
  {"VpcId":"vpc-b","CidrBlock":"10.1.0.0/16","State":"available","IsDefault":false,"Tags":[{"Key":"Name","Value":"beta"}]},
  {"VpcId":"vpc-a","CidrBlock":"10.0.0.0/16","State":"pending","IsDefault":true},
  {"VpcId":"vpc-c","CidrBlock":"10.2.0.0/16","State":"available","IsDefault":false,"Tags":[{"Key":"Name","Value":"Gamma"}]}
]`

func vpcAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	a := attrs.AttrList{}
	require.NoError(t, a.Set(spec))
	return a
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]any{
		{"name": "zebra", "count": 3.0},
		{"name": "Alpha", "count": 1.5},
		{"name": "beta", "count": 1.25},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "ascending by name", spec: "name", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "descending by name", spec: "-name", wantOrder: []string{"zebra", "beta", "Alpha"}},
		{name: "case sensitive", spec: "!name", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "fractional counts", spec: "count", wantOrder: []string{"beta", "Alpha", "zebra"}},
		{name: "descending counts", spec: "-count", wantOrder: []string{"zebra", "Alpha", "beta"}},
		{name: "empty spec keeps order", spec: "", wantOrder: []string{"zebra", "Alpha", "beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]any, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value any
		empty []string
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "nil with empty value", value: nil, empty: []string{"-"}, want: "-"},
		{name: "empty string", value: "", empty: []string{"-"}, want: "-"},
		{name: "string", value: "vpc-1", want: "vpc-1"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(64512), want: "64512"},
		{name: "whole float", value: 64512.0, want: "64512"},
		{name: "fractional float", value: 0.25, want: "0.25"},
		{name: "false is shown", value: false, want: "false"},
		{name: "zero is shown", value: 0.0, want: "0"},
		{name: "list", value: []any{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]any{"k": "v"}, want: `{"k":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestDefaultAttrs(t *testing.T) {
	got := DefaultAttrs([]byte(vpcs))
	assert.Equal(t, []string{"CidrBlock", "IsDefault", "State", "Tags", "VpcId"}, got.Keys())

	got = DefaultAttrs([]byte(`["a","b"]`))
	assert.Equal(t, []string{"Value"}, got.Keys())

	got = DefaultAttrs([]byte(`[]`))
	assert.Equal(t, []string{"Value"}, got.Keys())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		attrs    string
		opts     Options
		want     []string
		wantNot  []string
	}{
		{
			name:  "text table with titles",
			attrs: "VpcId,CidrBlock,Tags[Name]",
			opts:  Options{Titles: true, Sort: "VpcId"},
			want:  []string{"VpcId", "CidrBlock", "Name", "vpc-a", "10.0.0.0/16", "beta"},
		},
		{
			name:    "filter and hidden attr",
			attrs:   "VpcId,!State",
			opts:    Options{Filter: "State=available"},
			want:    []string{"vpc-b", "vpc-c"},
			wantNot: []string{"vpc-a", "available"},
		},
		{
			name:  "header and footer",
			attrs: "VpcId",
			opts:  Options{Header: "VPCs", Footer: "done"},
			want:  []string{"VPCs", "done"},
		},
		{
			name:  "missing value renders dash",
			attrs: "VpcId,Tags[Name]",
			opts:  Options{Filter: "VpcId=vpc-a"},
			want:  []string{"vpc-a", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render([]byte(vpcs), vpcAttrs(t, tt.attrs), tt.opts, &buf))

			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.wantNot {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Output: "json", Sort: "-id", Filter: "State=available"}
	require.NoError(t, Render([]byte(vpcs), vpcAttrs(t, "VpcId:id,!State,Tags[Name]:name:U"), opts, &buf))

	assert.JSONEq(t, `[{"id":"vpc-c","name":"GAMMA"},{"id":"vpc-b","name":"BETA"}]`, buf.String())
}

func TestRender_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Output: "json", Filter: "State=deleted"}
	require.NoError(t, Render([]byte(vpcs), vpcAttrs(t, "VpcId"), opts, &buf))

	assert.JSONEq(t, `[]`, buf.String())
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Output: "yaml", Sort: "VpcId"}
	require.NoError(t, Render([]byte(vpcs), vpcAttrs(t, "VpcId,IsDefault"), opts, &buf))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "vpc-a", got[0]["VpcId"])
	assert.Equal(t, true, got[0]["IsDefault"])
}

func TestRender_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render([]byte(`[{"a":1}]`), nil, Options{Output: "raw"}, &buf))
	assert.Equal(t, "[{\"a\":1}]\n", buf.String())
}

func TestSliceDiceSpit(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cli.Command{
		Name: "describe-vpcs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter", Value: "IsDefault=true"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "local"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles", Value: true},
			&cli.IntFlag{Name: "padding", Value: 3},
		},
		Metadata: map[string]any{"header": "Default VPC"},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return SliceDiceSpit([]byte(vpcs), vpcAttrs(t, "VpcId,IsDefault"), cmd, &buf)
		},
	}
	require.NoError(t, cmd.Run(t.Context(), []string{"describe-vpcs"}))

	// lipgloss pads table cells with non-breaking spaces.
	out := strings.ReplaceAll(buf.String(), "\u00a0", " ")
	assert.Contains(t, out, "Default VPC")
	assert.Contains(t, out, "vpc-a")
	assert.NotContains(t, out, "vpc-b")
	assert.Regexp(t, `vpc-a\s{3,}true`, out)
}

type fakeTag struct {
	Key   *string
	Value *string
}

type fakeGateway struct {
	VpnGatewayId *string
	CreateTime   *time.Time
	Tags         []fakeTag
	Nested       *fakeGateway
	unexported   string
}

type fakeOutput struct {
	VpnGateways    []fakeGateway
	NextToken      *string
	ResultMetadata struct{ Raw string }
}

func TestSchemaPaths(t *testing.T) {
	got := SchemaPaths(reflect.TypeOf(&fakeOutput{}))

	assert.Contains(t, got, "NextToken")
	assert.Contains(t, got, "VpnGateways")
	assert.Contains(t, got, "VpnGateways.#.VpnGatewayId")
	assert.Contains(t, got, "VpnGateways.#.CreateTime")
	assert.Contains(t, got, "VpnGateways.#.Tags.#.Key")
	assert.Contains(t, got, "VpnGateways.#.Nested.VpnGatewayId")
	assert.NotContains(t, got, "ResultMetadata")
	assert.NotContains(t, got, "VpnGateways.#.unexported")
	assert.NotContains(t, got, "VpnGateways.#.CreateTime.wall")
	assert.IsIncreasing(t, got)

	assert.Nil(t, SchemaPaths(reflect.TypeOf("")))
}

func TestDumpSchema(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(reflect.TypeOf(fakeOutput{}), &buf)

	assert.Contains(t, buf.String(), "--select")
	assert.Contains(t, buf.String(), "VpnGateways.#.Tags.#.Value\n")
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}
