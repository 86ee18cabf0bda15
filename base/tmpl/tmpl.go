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

// Package tmpl provides helper functions for Go templates.
package tmpl

import (
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Parse returns a template given its source and additional functions.
func Parse(name, src string, funcs template.FuncMap) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(src)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse template %s", name)
	}
	return tmpl, nil
}

// Execute runs a template on an object and returns the output.
func Execute(tmpl *template.Template, obj any) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, obj); err != nil {
		return "", errors.Errorf("cannot execute template %s on %T: %v", tmpl.Name(), obj, err)
	}
	return buf.String(), nil
}

// Iterate runs a template over a slice of objects.
// The result is all the outputs joined by sep.
func Iterate[T any](tmpl *template.Template, objs []T, sep string) (string, error) {
	ss := make([]string, len(objs))
	for i, obj := range objs {
		var err error
		if ss[i], err = Execute(tmpl, obj); err != nil {
			return "", err
		}
	}
	return strings.Join(ss, sep), nil
}
