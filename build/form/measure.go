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
	"cmp"
	"fmt"
)

// Domain is the part of the mesh an integral is computed over.
type Domain int

const (
	// Cell integrals are computed over the cells of the mesh.
	Cell Domain = iota
	// ExteriorFacet integrals are computed over the boundary of the mesh.
	ExteriorFacet
	// InteriorFacet integrals are computed over the facets shared by two cells.
	InteriorFacet
)

// String returns the name of the domain.
func (d Domain) String() string {
	switch d {
	case Cell:
		return "cell"
	case ExteriorFacet:
		return "exterior_facet"
	case InteriorFacet:
		return "interior_facet"
	}
	return fmt.Sprintf("Domain(%d)", int(d))
}

// Everywhere is the subdomain identifier of a measure covering its whole domain.
const Everywhere = -1

// Measure specifies the domain of an integral.
type Measure struct {
	Domain    Domain
	Subdomain int
}

// Measures over the whole domain.
var (
	DX = Measure{Domain: Cell, Subdomain: Everywhere}
	DS = Measure{Domain: ExteriorFacet, Subdomain: Everywhere}
	DI = Measure{Domain: InteriorFacet, Subdomain: Everywhere}
)

// On returns the measure restricted to a subdomain.
func (m Measure) On(subdomain int) Measure {
	m.Subdomain = subdomain
	return m
}

var symbols = map[Domain]string{
	Cell:          "dx",
	ExteriorFacet: "ds",
	InteriorFacet: "dS",
}

// String returns the measure as dx, ds, or dS followed by the subdomain, if any.
func (m Measure) String() string {
	s, ok := symbols[m.Domain]
	if !ok {
		s = m.Domain.String()
	}
	if m.Subdomain == Everywhere {
		return s
	}
	return fmt.Sprintf("%s(%d)", s, m.Subdomain)
}

func compareMeasures(a, b Measure) int {
	if c := cmp.Compare(a.Domain, b.Domain); c != 0 {
		return c
	}
	return cmp.Compare(a.Subdomain, b.Subdomain)
}
