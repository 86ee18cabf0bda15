// Copyright 2024 Google LLC
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

package ordered_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/tensorform/base/ordered"
)

type entry struct {
	k string
	v int
}

func TestMap(t *testing.T) {
	tests := []struct {
		entries []entry
		want    []entry
	}{
		{
			entries: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
			want: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
		},
		{
			entries: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "a", v: 3},
			},
			want: []entry{
				{k: "a", v: 3},
				{k: "b", v: 2},
			},
		},
	}
	for ti, test := range tests {
		m := ordered.NewMap[string, int]()
		for _, entry := range test.entries {
			m.Store(entry.k, entry.v)
		}
		if m.Size() != len(test.want) {
			t.Errorf("test %d: map has %d entries but want %d", ti, m.Size(), len(test.want))
			continue
		}
		var got []entry
		for k, v := range m.Iter() {
			got = append(got, entry{k: k, v: v})
		}
		if diff := cmp.Diff(got, test.want, cmp.AllowUnexported(entry{})); diff != "" {
			t.Errorf("test %d: unexpected entries:\n%s", ti, diff)
		}
	}
}

func TestCount(t *testing.T) {
	m := ordered.NewMap[string, int]()
	for _, k := range []string{"j", "i", "j", "k", "j"} {
		m.Update(k, func(n int) int { return n + 1 })
	}
	gotKeys := slices.Collect(m.Keys())
	if want := []string{"j", "i", "k"}; !cmp.Equal(gotKeys, want) {
		t.Errorf("got keys %v but want %v", gotKeys, want)
	}
	gotValues := slices.Collect(m.Values())
	if want := []int{3, 1, 1}; !cmp.Equal(gotValues, want) {
		t.Errorf("got counts %v but want %v", gotValues, want)
	}
	once := m.Filter(func(_ string, n int) bool { return n == 1 })
	if want := []string{"i", "k"}; !cmp.Equal(once, want) {
		t.Errorf("got %v but want %v", once, want)
	}
}
