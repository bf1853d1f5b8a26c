// Copyright (C) 2024 Grundy Lab
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package rare maintains the algebraic rare/common (R/C) partition of
// nimber values that lets the mex engine short-circuit most
// successor-set membership checks, and the compact index of positions
// whose nimber falls in R.
package rare

import (
	"sort"

	"github.com/grundylab/octal/bitset"
)

// GenRares computes R as a BitSet over the whole returned Set, greedily
// growing the common coset C (and its closure R) by decreasing
// frequency so that the values left in R carry as little of the
// observed frequency mass as possible. Values the Set covers beyond
// len(freq) are candidates with frequency zero.
//
// freq is indexed by nimber value; largest is the greatest nimber
// value observed so far, used only to size the returned Set per the
// invariant that a BitSet must be able to represent any future mex
// result (bitset.NewForLargest).
func GenRares(freq []int, largest int) *bitset.Set {
	type candidate struct {
		value, freq int
	}
	set := bitset.NewForLargest(largest)
	size := len(freq)
	if set.Len() > size {
		size = set.Len()
	}
	vals := make([]candidate, size)
	for v := range vals {
		vals[v] = candidate{value: v}
		if v < len(freq) {
			vals[v].freq = freq[v]
		}
	}
	sort.SliceStable(vals, func(i, j int) bool {
		return vals[i].freq > vals[j].freq
	})

	r := map[int]bool{0: true}
	c := map[int]bool{}

	for _, cand := range vals {
		x := cand.value
		if r[x] || c[x] {
			continue
		}
		c[x] = true
		for {
			inserted := false

			for c1 := range c {
				for c2 := range c {
					if !r[c1^c2] {
						r[c1^c2] = true
						inserted = true
					}
				}
			}

			newR := make(map[int]bool, len(r))
			for k := range r {
				newR[k] = true
			}
			for r1 := range r {
				if r1 == 0 {
					continue
				}
				for r2 := range r {
					if r2 == 0 || r1 == r2 {
						continue
					}
					if !newR[r1^r2] {
						newR[r1^r2] = true
						inserted = true
					}
				}
			}
			r = newR

			newC := make(map[int]bool, len(c))
			for k := range c {
				newC[k] = true
			}
			for r1 := range r {
				for c1 := range c {
					if !newC[r1^c1] {
						newC[r1^c1] = true
						inserted = true
					}
				}
			}
			c = newC

			if !inserted {
				break
			}
		}
	}

	for x := range r {
		if x < set.Len() {
			set.Set(x)
		}
	}
	return set
}
