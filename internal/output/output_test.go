// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/excomp/internal/attrs"
	"github.com/staranto/excomp/internal/config"
)

const testRows = `[
	{"index": 1, "param": "0", "value": "0", "result": false, "decided_by": "flag"},
	{"index": 2, "param": "5", "value": "5", "result": true, "decided_by": "param"},
	{"index": 3, "param": "-1", "value": "-1", "result": true, "decided_by": "param"},
	{"index": 4, "param": "NaN", "value": "NaN", "result": false, "decided_by": "flag"},
	{"index": 5, "param": "0.0001", "value": "0.0001", "result": true, "decided_by": "param"}
]`

func testAttrs(t *testing.T, specs ...string) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	for _, s := range specs {
		require.NoError(t, al.Set(s))
	}
	return al
}

// noConfig keeps tests independent of any excomp.yaml on the machine.
func noConfig(t *testing.T) {
	t.Helper()
	t.Setenv("EXCOMP_CFG", "/nonexistent/excomp.yaml")
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "zebra", "count": 3.0, "value": "10"},
		{"name": "alpha", "count": 1.0, "value": "9"},
		{"name": "Beta", "count": 2.0, "value": "NaN"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "ascending by name", spec: "name", wantOrder: []string{"alpha", "Beta", "zebra"}},
		{name: "descending by name", spec: "-name", wantOrder: []string{"zebra", "Beta", "alpha"}},
		{name: "ascending by count", spec: "count", wantOrder: []string{"alpha", "Beta", "zebra"}},
		{name: "descending by count", spec: "-count", wantOrder: []string{"zebra", "Beta", "alpha"}},
		{name: "case sensitive", spec: "!name", wantOrder: []string{"Beta", "alpha", "zebra"}},
		{name: "numeric strings", spec: "value", wantOrder: []string{"Beta", "alpha", "zebra"}},
		{name: "multiple fields", spec: "count,name", wantOrder: []string{"alpha", "Beta", "zebra"}},
		{name: "empty spec", spec: "", wantOrder: []string{"zebra", "alpha", "Beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestResolveSortSpec(t *testing.T) {
	al := testAttrs(t, "value:v", "param")

	assert.Equal(t, "-v,!param", ResolveSortSpec("-value,!param", al))
	assert.Equal(t, "-!v", ResolveSortSpec("!-v", al))
	assert.Equal(t, "other", ResolveSortSpec("other", al))
	assert.Equal(t, "", ResolveSortSpec("", al))
}

func TestSortDataset_Saturated(t *testing.T) {
	data := []map[string]interface{}{
		{"param": "1e400"},
		{"param": "5"},
		{"param": "10"},
		{"param": "-1"},
		{"param": "-1e400"},
	}

	SortDataset(data, "param")

	var got []string
	for _, row := range data {
		got = append(got, row["param"].(string))
	}
	assert.Equal(t, []string{"-1e400", "-1", "5", "10", "1e400"}, got)
}

func TestSortDataset_Bools(t *testing.T) {
	data := []map[string]interface{}{
		{"index": 1.0, "result": true},
		{"index": 2.0, "result": false},
		{"index": 3.0, "result": true},
		{"index": 4.0},
	}

	SortDataset(data, "result,-index")

	var got []float64
	for _, row := range data {
		got = append(got, row["index"].(float64))
	}
	assert.Equal(t, []float64{4, 2, 3, 1}, got)
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "float64", value: 42.5, want: "42.5"},
		{name: "whole float64", value: 3.0, want: "3"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false", value: false, want: "false"},
		{name: "zero int", value: 0, want: "0"},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "empty string custom", value: "", emptyVal: "N/A", want: "N/A"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Filter
	}{
		{name: "empty", spec: "", want: nil},
		{name: "equals", spec: "result=true", want: []Filter{{Key: "result", Operand: "=", Target: "true"}}},
		{name: "negated", spec: "result!=true", want: []Filter{{Key: "result", Negate: true, Operand: "=", Target: "true"}}},
		{name: "regex", spec: "param/^0x", want: []Filter{{Key: "param", Operand: "/", Target: "^0x"}}},
		{
			name: "multiple",
			spec: "decided_by^fl,index>2",
			want: []Filter{
				{Key: "decided_by", Operand: "^", Target: "fl"},
				{Key: "index", Operand: ">", Target: "2"},
			},
		},
		{name: "target keeps later operators", spec: "param=a=b", want: []Filter{{Key: "param", Operand: "=", Target: "a=b"}}},
		{name: "invalid skipped", spec: "nooperator,result=false", want: []Filter{{Key: "result", Operand: "=", Target: "false"}}},
		{name: "missing key skipped", spec: "=true", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestBuildFilters_Delimiter(t *testing.T) {
	t.Setenv("EXCOMP_FILTER_DELIM", ";")

	got := BuildFilters("param/^(1|2),3$;result=true")
	require.Len(t, got, 2)
	assert.Equal(t, "^(1|2),3$", got[0].Target)
	assert.Equal(t, "result", got[1].Key)
}

func TestFilterDataset(t *testing.T) {
	al := testAttrs(t, "index", "param", "result", "decided_by")
	dataset := gjson.Parse(testRows)

	tests := []struct {
		name      string
		spec      string
		wantIndex []float64
	}{
		{name: "no filter", spec: "", wantIndex: []float64{1, 2, 3, 4, 5}},
		{name: "truthy only", spec: "result=true", wantIndex: []float64{2, 3, 5}},
		{name: "negated bool", spec: "result!=true", wantIndex: []float64{1, 4}},
		{name: "string prefix", spec: "decided_by^fl", wantIndex: []float64{1, 4}},
		{name: "case insensitive", spec: "param~nan", wantIndex: []float64{4}},
		{name: "contains", spec: "param@.", wantIndex: []float64{5}},
		{name: "regex", spec: "param/^-?[0-9]$", wantIndex: []float64{1, 2, 3}},
		{name: "numeric greater", spec: "index>3", wantIndex: []float64{4, 5}},
		{name: "numeric less", spec: "index<2", wantIndex: []float64{1}},
		{name: "numeric equal", spec: "index=3.0", wantIndex: []float64{3}},
		{name: "combined", spec: "result=true,index>2", wantIndex: []float64{3, 5}},
		{name: "unknown key ignored", spec: "bogus=1", wantIndex: []float64{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(dataset, al, tt.spec)
			var idx []float64
			for _, row := range got {
				idx = append(idx, row["index"].(float64))
			}
			assert.Equal(t, tt.wantIndex, idx)
		})
	}
}

func TestFilterDataset_NumericText(t *testing.T) {
	al := testAttrs(t, "param", "value")
	dataset := gjson.Parse(`[
		{"param": "10", "value": "10"},
		{"param": "2", "value": "2"},
		{"param": "0x5", "value": "5"},
		{"param": "nan", "value": "NaN"},
		{"param": "1e400", "value": "+Inf"}
	]`)

	tests := []struct {
		name      string
		spec      string
		wantParam []string
	}{
		{name: "greater", spec: "value>3", wantParam: []string{"10", "0x5", "1e400"}},
		{name: "less", spec: "value<10", wantParam: []string{"2", "0x5"}},
		{name: "equal", spec: "value=10.0", wantParam: []string{"10"}},
		{name: "negated greater", spec: "value!>3", wantParam: []string{"2", "nan"}},
		{name: "NaN equal", spec: "value=NaN", wantParam: []string{"nan"}},
		{name: "hex target", spec: "value=0x5", wantParam: []string{"0x5"}},
		{name: "text target stays textual", spec: "param>1e", wantParam: []string{"2", "nan", "1e400"}},
		{name: "prefix stays textual", spec: "param^0x", wantParam: []string{"0x5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, row := range FilterDataset(dataset, al, tt.spec) {
				got = append(got, row["param"].(string))
			}
			assert.Equal(t, tt.wantParam, got)
		})
	}
}

func TestFilterDataset_OutputKeys(t *testing.T) {
	al := testAttrs(t, "param:p", "!result", "*::U")
	got := FilterDataset(gjson.Parse(testRows), al, "result=true")

	require.Len(t, got, 3)
	assert.Equal(t, map[string]interface{}{"p": "5", "result": true}, got[0])
}

func TestCheckContainsOperand(t *testing.T) {
	assert.True(t, checkContainsOperand([]any{"a", 1.0}, Filter{Operand: "@", Target: "1"}))
	assert.False(t, checkContainsOperand([]any{"a"}, Filter{Operand: "@", Target: "b"}))
	assert.True(t, checkContainsOperand([]any{"a"}, Filter{Operand: "@", Target: "b", Negate: true}))
	assert.True(t, checkContainsOperand(map[string]any{"k": 1}, Filter{Operand: "@", Target: "k"}))
	assert.False(t, checkContainsOperand(3, Filter{Operand: "@", Target: "3"}))
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	noConfig(t)
	al := testAttrs(t, "param", "result", "!decided_by")

	var buf bytes.Buffer
	err := SliceDiceSpit([]byte(testRows), al, Options{Output: "json", Filter: "decided_by=param", Sort: "-param"}, &buf)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]interface{}{
		{"param": "5", "result": true},
		{"param": "0.0001", "result": true},
		{"param": "-1", "result": true},
	}, got)
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	noConfig(t)
	al := testAttrs(t, "param", "result", "decided_by:by:u", "!index")

	var buf bytes.Buffer
	err := SliceDiceSpit([]byte(testRows), al, Options{Output: "yaml", Filter: "index<3"}, &buf)
	require.NoError(t, err)

	want := "- param: \"0\"\n  result: false\n  by: FLAG\n- param: \"5\"\n  result: true\n  by: PARAM\n"
	assert.Equal(t, want, buf.String())
}

func TestSliceDiceSpit_Text(t *testing.T) {
	noConfig(t)
	al := testAttrs(t, "param", "result", "decided_by")

	var buf bytes.Buffer
	err := SliceDiceSpit([]byte(testRows), al, Options{Output: "text", Titles: true, Color: true, Summary: true}, &buf)
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Equal(t, []string{"param", "result", "decided_by"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "false", "flag"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"NaN", "false", "flag"}, strings.Fields(lines[4]))
	assert.Equal(t, "5 of 5 params shown, 3 true", lines[6])
	assert.NotContains(t, out, "\x1b[", "no color when not writing to a terminal")
}

func TestSliceDiceSpit_TextEmpty(t *testing.T) {
	noConfig(t)
	al := testAttrs(t, "param")

	var buf bytes.Buffer
	err := SliceDiceSpit([]byte(testRows), al, Options{Output: "text", Filter: "param=nothing"}, &buf)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestSliceDiceSpit_Invalid(t *testing.T) {
	var buf bytes.Buffer
	err := SliceDiceSpit([]byte("[{"), attrs.AttrList{}, Options{}, &buf)
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	var rows []string
	for i := 0; i < 1500; i++ {
		rows = append(rows, `{"result": true}`)
	}
	full := gjson.Parse("[" + strings.Join(rows, ",") + "]")
	assert.Equal(t, "12 of 1,500 params shown, 1,500 true", Summary(full, 12))
}

func TestSchemaTags(t *testing.T) {
	type row struct {
		Name    string `attr:"name"`
		Count   int    `attr:"count"`
		Skipped string `attr:"-"`
		Hidden  string
		Flag    bool `attr:"flag,omitempty"`
	}

	want := []Tag{
		{Name: "name", Type: "string"},
		{Name: "count", Type: "int"},
		{Name: "flag", Type: "bool"},
	}
	assert.Equal(t, want, SchemaTags(reflect.TypeOf(row{})))
	assert.Equal(t, want, SchemaTags(reflect.TypeOf(&row{})))
	assert.Nil(t, SchemaTags(reflect.TypeOf(0)))
}

func TestDumpSchema(t *testing.T) {
	type Row struct {
		Param  string `attr:"param"`
		Result bool   `attr:"result"`
	}

	var buf bytes.Buffer
	DumpSchema(&buf, reflect.TypeOf(Row{}))
	assert.Equal(t, "Schema for Row --\nparam (string)\nresult (bool)\n", buf.String())
}

func TestGetColors(t *testing.T) {
	noConfig(t)
	header, even, odd := getColors("colors")

	assert.Equal(t, "#f6be00", header)
	assert.Equal(t, "#ffffff", even)
	assert.Equal(t, "#00c8f0", odd)
}

func BenchmarkSortDataset(b *testing.B) {
	testData := []map[string]interface{}{
		{"name": "zebra", "count": 3.0},
		{"name": "alpha", "count": 1.0},
		{"name": "beta", "count": 2.0},
	}

	spec := "name"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data := make([]map[string]interface{}, len(testData))
		copy(data, testData)
		SortDataset(data, spec)
	}
}

func BenchmarkInterfaceToString(b *testing.B) {
	values := []interface{}{
		"string",
		42,
		42.5,
		true,
		nil,
		[]string{"a", "b"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			InterfaceToString(v)
		}
	}
}
