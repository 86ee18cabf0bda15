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

package tfflag_test

import (
	"flag"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/tensorform/tools/tfflag"
)

func TestStringList(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	forms := tfflag.StringListVar(fs, "forms", "forms to print", "poisson", "elasticity")
	if err := fs.Parse([]string{"--forms=poisson, elasticity,", "--forms", "poisson"}); err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff([]string{"poisson", "elasticity", "poisson"}, *forms); diff != "" {
		t.Errorf("unexpected values (-want +got):\n%s", diff)
	}
	if err := fs.Parse([]string{"--forms=stokes"}); err == nil {
		t.Errorf("invalid value accepted")
	}
}
