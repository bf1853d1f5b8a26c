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

// Package mex computes Sprague-Grundy nimbers for octal games: a naive
// Theta(n) mex per position, and the rare/common-accelerated version
// that exploits the sparse-successor phenomenon most octal games
// exhibit once past their opening moves.
package mex

import (
	"github.com/grundylab/octal/bitset"
	"github.com/grundylab/octal/nimber"
	"github.com/grundylab/octal/rare"
	"github.com/grundylab/octal/ruleset"
)

// Source is anything that can report a previously computed nimber by
// index. *nimber.Array satisfies it directly; so does a tail-mode
// ring window, which lets the R-C engine keep running past the
// in-memory prefix without this package depending on the tail
// package.
type Source interface {
	Get(i int) uint32
}

// Bootstrap fills g[0..rules.Len()) with the nimbers of the first
// Len() positions, the only positions where the "take the whole heap"
// rule can apply and where a divide move's two resulting heaps must
// both be checked for being in range. g must have length at least
// rules.Len(); g[0] is always 0.
func Bootstrap(rules ruleset.RuleSet, g *nimber.Array) {
	g.Set(0, 0)

	for n := 1; n < rules.Len(); n++ {
		seen := bitset.New(2*rules.Len() + 2)

		if rules.At(n).AllowEmpty {
			seen.Set(0)
		}

		for i := 1; i < rules.Len(); i++ {
			if n <= i {
				continue
			}
			rule := rules.At(i)
			if rule.AllowSome {
				seen.Set(int(g.Get(n - i)))
			}
			if rule.AllowDivide {
				for j := 1; j <= (n-i)/2; j++ {
					x, y := g.Get(j), g.Get(n-i-j)
					seen.Set(int(x ^ y))
				}
			}
		}

		g.Set(n, uint32(seen.FirstZero()))
	}
}

// Naive computes G(n) in time proportional to n by checking every
// successor position directly, with no rare/common shortcut. It
// requires n >= rules.Len() (so every rule at distance i < rules.Len()
// is unconditionally in range) and g[0..n) already populated. seen
// must be freshly cleared and sized to cover any value Naive might
// produce; the caller owns its lifetime across calls so it can be
// reused without reallocating.
func Naive(rules ruleset.RuleSet, g Source, n int, seen *bitset.Set) uint32 {
	for i := 1; i < rules.Len(); i++ {
		rule := rules.At(i)
		if rule.AllowSome {
			seen.Set(int(g.Get(n - i)))
		}
		if rule.AllowDivide {
			for j := 1; j <= (n-i)/2; j++ {
				x, y := g.Get(j), g.Get(n-i-j)
				seen.Set(int(x ^ y))
			}
		}
	}
	return uint32(seen.FirstZero())
}

// setSeenFromSomeMoves marks every value directly reachable by a
// "some" move: the non-XOR successors of n.
func setSeenFromSomeMoves(rules ruleset.RuleSet, g Source, n int, seen *bitset.Set) {
	for i := 1; i < rules.Len(); i++ {
		if rules.At(i).AllowSome {
			seen.Set(int(g.Get(n - i)))
		}
	}
}

// setZeroBitIfDividesInHalf marks 0 as seen whenever some divide move
// splits the heap into two equal halves, since x^x is always 0.
func setZeroBitIfDividesInHalf(rules ruleset.RuleSet, n int, seen *bitset.Set) {
	for i := 1; i < rules.Len(); i++ {
		if rules.At(i).AllowDivide && (n-i)&1 == 0 {
			seen.Set(0)
			return
		}
	}
}

// sweepRareXorCommon marks seen[x^G(n-i-idx)] for every recorded rare
// position (idx, x) and every divide distance i that keeps n-i-idx in
// range. This is the cheap pass that, in a game exhibiting the
// rare/common split, finds nearly every value a position can reach.
func sweepRareXorCommon(rules ruleset.RuleSet, g Source, n int, rareIdx *rare.Index, seen *bitset.Set) {
	for _, e := range rareIdx.Entries() {
		for i := 1; i < rules.Len(); i++ {
			if rules.At(i).AllowDivide && n > e.Index+i {
				seen.Set(int(e.Nimber ^ g.Get(n-i-e.Index)))
			}
		}
	}
}

// findFirstCommonUnset returns the smallest value that is neither
// marked seen nor a member of rares: the candidate mex, pending proof
// that no smaller rare successor was missed by the cheap sweep.
func findFirstCommonUnset(seen, rares *bitset.Set) int {
	for i := 0; i < seen.Len(); i++ {
		if !seen.Get(i) && !rares.Get(i) {
			return i
		}
	}
	return seen.Len() - 1
}
