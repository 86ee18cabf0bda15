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

package tmpl_test

import (
	"strings"
	"testing"
	"text/template"

	"github.com/gx-org/tensorform/base/tmpl"
)

type integral struct {
	Integrand, Measure string
}

func TestIterate(t *testing.T) {
	tp, err := tmpl.Parse("integral", "∫ {{.Integrand}} {{upper .Measure}}", template.FuncMap{
		"upper": strings.ToUpper,
	})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	got, err := tmpl.Iterate(tp, []integral{
		{Integrand: "u v", Measure: "dx"},
		{Integrand: "v", Measure: "ds"},
	}, " + ")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if want := "∫ u v DX + ∫ v DS"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestErrors(t *testing.T) {
	if _, err := tmpl.Parse("invalid", "{{.Integrand", nil); err == nil {
		t.Errorf("parsing an invalid template succeeded")
	}
	tp, err := tmpl.Parse("missing", "{{.Missing}}", nil)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if _, err := tmpl.Execute(tp, integral{}); err == nil {
		t.Errorf("executing a template with a missing field succeeded")
	}
}
