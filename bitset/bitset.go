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

// Package bitset implements a fixed-capacity bit array with the
// set/get/mex/union/count-zero operations the rare/common mex engine
// needs. A single type backs two storage strategies: a tagged single
// machine word when the requested capacity fits in 64 bits, and a
// heap-allocated word vector otherwise. Callers never branch on which
// storage is in play.
package bitset

import (
	"math/bits"

	"github.com/grundylab/octal/ints"
)

const wordBits = 64

// Set is a fixed-length bit array indexed [0, Len()).
//
// The zero Set has length zero; use New to allocate one of a given
// length, or NewForLargest to size one for a given largest value.
type Set struct {
	word  uint64   // used when len <= wordBits
	large []uint64 // used when len > wordBits; nil otherwise
	n     int      // logical bit length
}

// New allocates a Set with logical length n, all bits clear.
func New(n int) *Set {
	s := &Set{n: n}
	if n > wordBits {
		s.large = make([]uint64, ints.ChunkCount(uint(n), wordBits))
	}
	return s
}

// NewForLargest returns a Set sized so that mex results over values up
// to and including largest are always representable, per the
// BitSet invariant in the spec: logical length >= 2*NextPow2(largest)+2.
func NewForLargest(largest int) *Set {
	n := 2*int(ints.NextPow2(uint(largest))) + 2
	return New(n)
}

// Len returns the logical bit length of s.
func (s *Set) Len() int {
	return s.n
}

// Set sets bit i.
func (s *Set) Set(i int) {
	if s.large != nil {
		ints.SetBit(s.large, i)
		return
	}
	s.word |= uint64(1) << uint(i)
}

// Get reports whether bit i is set.
func (s *Set) Get(i int) bool {
	if s.large != nil {
		return ints.TestBit(s.large, i)
	}
	return s.word&(uint64(1)<<uint(i)) != 0
}

// ClearAll clears every bit in s without changing its length.
func (s *Set) ClearAll() {
	if s.large != nil {
		for i := range s.large {
			s.large[i] = 0
		}
		return
	}
	s.word = 0
}

// FirstZero returns the index of the lowest-numbered clear bit, or
// Len() if every bit is set (this only happens if the set was sized
// too small for its use, which callers should treat as a bug — the
// mex engine always sizes sets per the invariant above).
func (s *Set) FirstZero() int {
	if s.large == nil {
		w := s.word
		if lim := uint(s.n); lim < wordBits {
			w |= ^uint64(0) << lim
		}
		if w == ^uint64(0) {
			return s.n
		}
		return bits.TrailingZeros64(^w)
	}
	for wi, w := range s.large {
		if w != ^uint64(0) {
			idx := wi*wordBits + bits.TrailingZeros64(^w)
			if idx < s.n {
				return idx
			}
			break
		}
	}
	return s.n
}

// CountZeros returns the number of clear bits in the prefix [0, upto).
func (s *Set) CountZeros(upto int) int {
	if upto > s.n {
		upto = s.n
	}
	if upto <= 0 {
		return 0
	}
	ones := 0
	if s.large == nil {
		w := s.word
		if upto < wordBits {
			w &= (uint64(1) << uint(upto)) - 1
		}
		ones = bits.OnesCount64(w)
	} else {
		fullWords := upto / wordBits
		for i := 0; i < fullWords; i++ {
			ones += bits.OnesCount64(s.large[i])
		}
		if rem := upto % wordBits; rem != 0 {
			w := s.large[fullWords] & ((uint64(1) << uint(rem)) - 1)
			ones += bits.OnesCount64(w)
		}
	}
	return upto - ones
}

// UnionFrom ORs every bit of other into s. s and other must have the
// same backing representation (both small or both large with equal
// word counts); this always holds when both are constructed with the
// same largest-value sizing policy.
func (s *Set) UnionFrom(other *Set) {
	if s.large == nil {
		s.word |= other.word
		return
	}
	for i := range s.large {
		s.large[i] |= other.large[i]
	}
}

// CopyPrefix returns a new Set of length upto containing bits [0, upto)
// of s.
func (s *Set) CopyPrefix(upto int) *Set {
	cp := New(upto)
	if upto <= 0 {
		return cp
	}
	if cp.large == nil {
		w := s.rawWord(0)
		if upto < wordBits {
			w &= (uint64(1) << uint(upto)) - 1
		}
		cp.word = w
		return cp
	}
	fullWords := upto / wordBits
	for i := 0; i < fullWords; i++ {
		cp.large[i] = s.rawWord(i)
	}
	if rem := upto % wordBits; rem != 0 {
		cp.large[fullWords] = s.rawWord(fullWords) & ((uint64(1) << uint(rem)) - 1)
	}
	return cp
}

// rawWord returns word i of s's backing storage, treating a small set
// as a single word at index 0.
func (s *Set) rawWord(i int) uint64 {
	if s.large == nil {
		if i != 0 {
			return 0
		}
		return s.word
	}
	if i >= len(s.large) {
		return 0
	}
	return s.large[i]
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	cp := &Set{n: s.n, word: s.word}
	if s.large != nil {
		cp.large = append([]uint64(nil), s.large...)
	}
	return cp
}
