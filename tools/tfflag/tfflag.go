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

// Package tfflag provides flag types for tensorform tools.
package tfflag

import (
	"flag"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type stringList struct {
	list    *[]string
	allowed []string
}

func (sl *stringList) String() string {
	if sl.list == nil {
		return ""
	}
	return strings.Join(*sl.list, ",")
}

func (sl *stringList) Set(values string) error {
	for _, value := range strings.Split(values, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if len(sl.allowed) > 0 && !slices.Contains(sl.allowed, value) {
			return errors.Errorf("invalid value %q: must be one of %s", value, strings.Join(sl.allowed, ", "))
		}
		*sl.list = append(*sl.list, value)
	}
	return nil
}

// StringList returns a flag to pass a list of string from the command line.
func StringList(name, doc string) *[]string {
	return StringListVar(flag.CommandLine, name, doc)
}

// StringListVar defines a string list flag in a flag set.
// If allowed is not empty, only the values it contains are accepted.
func StringListVar(fs *flag.FlagSet, name, doc string, allowed ...string) *[]string {
	var list []string
	fs.Var(&stringList{list: &list, allowed: allowed}, name, doc)
	return &list
}
