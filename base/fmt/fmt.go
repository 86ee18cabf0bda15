// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fmt provides utility methods for building multi-line string representations.
package fmt

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Number prefixes every line of a string with its line number.
// Numbers are padded with zeros to the width of the last number.
func Number(x string) string {
	if x == "" {
		return ""
	}
	lines := slices.Collect(strings.Lines(x))
	width := len(strconv.Itoa(len(lines)))
	var s strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&s, "%0*d %s", width, i+1, line)
	}
	return s.String()
}

// IndentSkip indents every line of a string by a tabulation,
// except for the first skip lines.
func IndentSkip(skip int, x string) string {
	var s strings.Builder
	n := 0
	for line := range strings.Lines(x) {
		if n >= skip && line != "\n" {
			s.WriteByte('\t')
		}
		s.WriteString(line)
		n++
	}
	return s.String()
}

// Indent indents every line of a string by a tabulation.
func Indent(x string) string {
	return IndentSkip(0, x)
}
