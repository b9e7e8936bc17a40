/*
 * Copyright 2025 The ringbuffer Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode"
)

// printRecord writes one record as a single "field=value ..." line,
// walking nested structs with dotted names. Byte arrays print as quoted
// strings when their contents are printable, otherwise as hex.
func printRecord(w io.Writer, v any) {
	var parts []string
	walkFields("", reflect.ValueOf(v), &parts)
	fmt.Fprintln(w, strings.Join(parts, " "))
}

func walkFields(prefix string, v reflect.Value, parts *[]string) {
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := range t.NumField() {
			f := t.Field(i)
			if f.Name == "_" || !f.IsExported() {
				continue
			}
			name := f.Name
			if prefix != "" {
				name = prefix + "." + name
			}
			walkFields(name, v.Field(i), parts)
		}

	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			*parts = append(*parts, prefix+"="+formatBytes(v))
			return
		}
		for i := 0; i < v.Len(); i++ {
			walkFields(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), parts)
		}

	default:
		*parts = append(*parts, fmt.Sprintf("%s=%v", prefix, v.Interface()))
	}
}

func formatBytes(v reflect.Value) string {
	b := make([]byte, v.Len())
	for i := range b {
		b[i] = byte(v.Index(i).Uint())
	}
	// NUL padding is layout, not payload.
	trimmed := strings.TrimRight(string(b), "\x00")
	for _, r := range trimmed {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return fmt.Sprintf("%x", b)
		}
	}
	return fmt.Sprintf("%q", trimmed)
}
