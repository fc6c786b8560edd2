// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/excomp/internal/attrs"
	"github.com/staranto/excomp/internal/config"
)

// Options are the rendering flags shared by every command.
type Options struct {
	Output  string
	Filter  string
	Sort    string
	Titles  bool
	Color   bool
	Summary bool
}

// SliceDiceSpit filters, transforms, sorts and renders raw, a JSON array of
// rows, according to opts and al.
func SliceDiceSpit(raw []byte, al attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("invalid dataset")
	}
	fullDataset := gjson.ParseBytes(raw)

	// Filter first so the following steps work on a smaller dataset.
	filteredDataset := FilterDataset(fullDataset, al, opts.Filter)
	log.Debugf("rows: %d of %d", len(filteredDataset), len(fullDataset.Array()))

	for _, row := range filteredDataset {
		for i := range al {
			if al[i].TransformSpec != "" {
				row[al[i].OutputKey] = al[i].Transform(row[al[i].OutputKey])
			}
		}
	}

	SortDataset(filteredDataset, ResolveSortSpec(opts.Sort, al))

	switch opts.Output {
	case "json":
		jsonOutput, err := json.Marshal(project(filteredDataset, al))
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(projectOrdered(filteredDataset, al))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(filteredDataset, al, opts, w)
		if opts.Summary {
			_, err := fmt.Fprintln(w, Summary(fullDataset, len(filteredDataset)))
			return err
		}
	}

	return nil
}

// project drops the attrs that are only used for filtering and sorting.
func project(dataset []map[string]interface{}, al attrs.AttrList) []map[string]interface{} {
	included := al.Included()
	out := make([]map[string]interface{}, 0, len(dataset))
	for _, row := range dataset {
		r := make(map[string]interface{}, len(included))
		for _, attr := range included {
			r[attr.OutputKey] = row[attr.OutputKey]
		}
		out = append(out, r)
	}
	return out
}

// projectOrdered is project keeping the attr order, which yaml.v2 honors.
func projectOrdered(dataset []map[string]interface{}, al attrs.AttrList) []yaml.MapSlice {
	included := al.Included()
	out := make([]yaml.MapSlice, 0, len(dataset))
	for _, row := range dataset {
		r := make(yaml.MapSlice, 0, len(included))
		for _, attr := range included {
			r = append(r, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
		}
		out = append(out, r)
	}
	return out
}

// Summary reports how many rows are shown and how many of all evaluated
// params were true.
func Summary(fullDataset gjson.Result, shown int) string {
	rows := fullDataset.Array()
	truthy := 0
	for _, row := range rows {
		if row.Get("result").Bool() {
			truthy++
		}
	}
	return fmt.Sprintf("%s of %s params shown, %s true",
		humanize.Comma(int64(shown)),
		humanize.Comma(int64(len(rows))),
		humanize.Comma(int64(truthy)))
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]interface{}, al attrs.AttrList, opts Options, w io.Writer) {
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color && isTerminal(w) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 0)
	log.Debugf("padding: %v", pad)

	included := al.Included()

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(included))
		for _, attr := range included {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

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
		for _, attr := range included {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// isTerminal reports whether w is a terminal. Color is only emitted there.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	// Bools and numbers are meaningful at their zero value.
	switch value := value.(type) {
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
