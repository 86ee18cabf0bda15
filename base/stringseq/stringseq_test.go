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

package stringseq_test

import (
	"slices"
	"strconv"
	"testing"

	"github.com/gx-org/tensorform/base/stringseq"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{in: nil, want: ""},
		{in: []string{"i"}, want: "i"},
		{in: []string{"i", "j", "k"}, want: "i,j,k"},
	}
	for _, test := range tests {
		if got := stringseq.Join(slices.Values(test.in), ","); got != test.want {
			t.Errorf("got %q but want %q", got, test.want)
		}
	}
}

func TestJoinFunc(t *testing.T) {
	got := stringseq.JoinFunc(slices.Values([]int{3, 3}), strconv.Itoa, ", ")
	if want := "3, 3"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}
