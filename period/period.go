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

// Package period searches a computed nimber prefix for the smallest
// period and preperiod that make the sequence eventually periodic, the
// terminal step of a bulk computation run.
package period

import "github.com/dchest/siphash"

// Result is the outcome of a Detect call.
type Result struct {
	Found      bool // whether a qualifying (Start, Period) was located
	Start      int  // preperiod length; G is periodic from this index on
	Period     int  // the period itself
	LongestRun int  // longest confirmed equal-suffix run seen, even if Found is false
}

// Digest carries the fixed SipHash-2-4 key used to fingerprint
// candidate windows during the search. Deriving the key from the rules
// string (see NewDigestFromRules) makes results reproducible across
// runs of the same game without needing real randomness.
type Digest struct {
	k0, k1 uint64
}

// NewDigest builds a Digest from an arbitrary 128-bit key.
func NewDigest(k0, k1 uint64) Digest {
	return Digest{k0: k0, k1: k1}
}

// NewDigestFromRules derives a Digest key deterministically from a
// rules string, so repeated runs against the same game hash windows
// identically without configuration.
func NewDigestFromRules(rules string) Digest {
	var k0, k1 uint64
	for i := 0; i < len(rules); i++ {
		k0 = k0*31 + uint64(rules[i])
		k1 = k1*37 + uint64(rules[i])<<8
	}
	return Digest{k0: k0 ^ 0x736970686173686b, k1: k1 ^ 0x6f6374616c67616d}
}

func (d Digest) blockHash(get func(int) uint32, lo, hi int) uint64 {
	buf := make([]byte, (hi-lo)*4)
	for i := lo; i < hi; i++ {
		v := get(i)
		o := (i - lo) * 4
		buf[o] = byte(v >> 24)
		buf[o+1] = byte(v >> 16)
		buf[o+2] = byte(v >> 8)
		buf[o+3] = byte(v)
	}
	return siphash.Hash(d.k0, d.k1, buf)
}

// bisectBoundary locates the smallest s in [lo, hi) such that
// get(i) == get(i+period) holds for every i in [s, hi). Instead of
// scanning element by element from hi down to lo, it recurses into
// halves and uses a single digest comparison to confirm a whole half
// matches, falling back to per-element scanning only once a range is
// small enough — or once a digest mismatch proves the boundary lies
// inside it. This never trusts a digest match for the *final* period
// candidate Detect is about to report; see the exact re-check there.
func (d Digest) bisectBoundary(get func(int) uint32, lo, hi, period int) int {
	const leafSize = 8
	if hi-lo <= leafSize {
		s := hi
		for s > lo && get(s-1) == get(s-1+period) {
			s--
		}
		return s
	}

	mid := lo + (hi-lo)/2
	rightBoundary := d.bisectBoundary(get, mid, hi, period)
	if rightBoundary != mid {
		// The match already stopped somewhere inside the right half;
		// the left half is unreachable from the suffix being grown.
		return rightBoundary
	}
	if d.blockHash(get, lo, mid) == d.blockHash(get, lo+period, mid+period) {
		return lo
	}
	return d.bisectBoundary(get, lo, mid, period)
}

// exactBoundary is the plain, unaccelerated scan bisectBoundary
// accelerates; Detect uses it to re-confirm the one candidate it is
// about to report as found.
func exactBoundary(get func(int) uint32, lo, hi, period int) int {
	s := hi
	for s > lo && get(s-1) == get(s-1+period) {
		s--
	}
	return s
}

// Detect searches for the smallest period p in [1, n/2] and the
// smallest matching preperiod `start` such that G(start..start+p) ==
// G(start+p..start+2p) element-wise, reporting success once n is large
// enough relative to (start, p, r) to guarantee the match continues
// forever (the sufficient condition from octal game theory: n >=
// 2*start + 2*p + r - 1). If no period qualifies with p <= n/2, Found
// is false and LongestRun names the best equal-suffix run observed.
func Detect(n, r int, get func(i int) uint32, digest Digest) Result {
	var result Result

	for p := 1; p <= n/2; p++ {
		start := digest.bisectBoundary(get, 0, n-p, p)

		if run := n - p - start; run > result.LongestRun {
			result.LongestRun = run
		}

		if n >= 2*start+2*p+r-1 {
			// Re-derive the boundary with the exact, unaccelerated
			// scan before trusting this candidate as the answer.
			start = exactBoundary(get, 0, n-p, p)
			if n >= 2*start+2*p+r-1 {
				result.Found = true
				result.Start = start
				result.Period = p
				return result
			}
			if run := n - p - start; run > result.LongestRun {
				result.LongestRun = run
			}
		}
	}

	return result
}
