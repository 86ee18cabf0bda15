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

package form

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gx-org/tensorform/base/sync"
	"github.com/gx-org/tensorform/build/fmterr"
	"github.com/gx-org/tensorform/build/ir"
	"github.com/gx-org/tensorform/build/ir/irsort"
	"github.com/gx-org/tensorform/build/ir/irwalk"
	"golang.org/x/sync/errgroup"
)

// Signer computes the signatures of forms.
// Canonical integrands are cached across calls.
// A signer is safe for concurrent use.
type Signer struct {
	workers int
	cache   sync.Map[string, ir.Node]
}

// Option configures a signer.
type Option func(*Signer)

// WithWorkers sets the maximum number of integrals processed concurrently.
// The default is the number of CPUs.
func WithWorkers(n int) Option {
	return func(s *Signer) {
		s.workers = n
	}
}

// NewSigner returns a new signer.
func NewSigner(opts ...Option) *Signer {
	s := &Signer{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type canonicalIntegral struct {
	measure   Measure
	integrand ir.Node
	key       string
}

func compareIntegrals(a, b canonicalIntegral) int {
	if c := compareMeasures(a.measure, b.measure); c != 0 {
		return c
	}
	if c := irsort.Compare(a.integrand, b.integrand); c != 0 {
		return c
	}
	return strings.Compare(a.key, b.key)
}

func (s *Signer) canonical(in *Integral) (canonicalIntegral, error) {
	integrand, err := s.cache.LoadOrCompute(ir.Key(in.integrand), func() (ir.Node, error) {
		return irwalk.Canonical(in.integrand)
	})
	if err != nil {
		return canonicalIntegral{}, err
	}
	return canonicalIntegral{
		measure:   in.measure,
		integrand: integrand,
		key:       ir.Key(integrand),
	}, nil
}

// Signature returns a string identifying a form.
// Two forms have the same signature if their integrals are equal
// up to the numbering of their indices, the order of nested index sums
// and the order of the integrals.
func (s *Signer) Signature(ctx context.Context, f *Form) (string, error) {
	integrals := make([]canonicalIntegral, len(f.integrals))
	g, gCtx := errgroup.WithContext(ctx)
	if s.workers > 0 {
		g.SetLimit(s.workers)
	}
	for i, in := range f.integrals {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			var err error
			integrals[i], err = s.canonical(in)
			return fmterr.PrefixWith("integral %d over %s", i, in.measure)(err)
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	slices.SortFunc(integrals, compareIntegrals)
	h := xxhash.New()
	for _, in := range integrals {
		fmt.Fprintf(h, "%s:%s\n", in.measure, in.key)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Signature returns a string identifying a form.
// See Signer.Signature.
func Signature(ctx context.Context, f *Form, opts ...Option) (string, error) {
	return NewSigner(opts...).Signature(ctx, f)
}
