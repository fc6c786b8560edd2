// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/apex/log"
)

// Tag is a discovered attr struct tag, emitted by --schema.
type Tag struct {
	Name string
	Type string
}

// SchemaTags returns the attr tags of typ in field order. Fields without an
// attr tag, or tagged "-", are skipped.
func SchemaTags(typ reflect.Type) []Tag {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	tags := make([]Tag, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("attr")
		if !ok {
			continue
		}
		name := strings.Split(tagValue, ",")[0]
		if name == "" || name == "-" {
			continue
		}

		log.Debugf("field: %s, type: %s, attr: %s", field.Name, field.Type, name)
		tags = append(tags, Tag{Name: name, Type: field.Type.Kind().String()})
	}

	return tags
}

// DumpSchema prints the attrs available to --attrs, --filter and --sort.
func DumpSchema(w io.Writer, typ reflect.Type) {
	tags := SchemaTags(typ)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, tag := range tags {
		fmt.Fprintf(w, "%s (%s)\n", tag.Name, tag.Type)
	}
}
