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

// Package histogram counts how often each nimber value has occurred
// among computed positions, growing its backing storage in
// power-of-two steps as larger nimbers appear.
package histogram

import "github.com/grundylab/octal/ints"

// Histogram maps a nimber value to the count of positions with that
// Grundy value seen so far.
type Histogram struct {
	counts []int
	total  int
}

// New returns an empty Histogram sized to hold nimbers up to largest.
func New(largest int) *Histogram {
	h := &Histogram{}
	h.growTo(largest)
	return h
}

// growTo resizes counts to the smallest power of two above largest+1.
func (h *Histogram) growTo(largest int) {
	need := int(ints.NextPow2(uint(largest + 2)))
	if need <= len(h.counts) {
		return
	}
	grown := make([]int, need)
	copy(grown, h.counts)
	h.counts = grown
}

// Add records one more occurrence of nimber v, growing the backing
// array first if v falls outside its current range.
func (h *Histogram) Add(v int) {
	if v >= len(h.counts) {
		h.growTo(v)
	}
	h.counts[v]++
	h.total++
}

// Count returns the number of occurrences of nimber v seen so far, or
// 0 if v has never been observed (including if v is outside the
// current backing length).
func (h *Histogram) Count(v int) int {
	if v < 0 || v >= len(h.counts) {
		return 0
	}
	return h.counts[v]
}

// Len returns the current backing length, i.e. the exclusive upper
// bound of nimber values this Histogram has allocated room for.
func (h *Histogram) Len() int {
	return len(h.counts)
}

// Total returns the sum of all counts (the invariant Σcounts == n).
func (h *Histogram) Total() int {
	return h.total
}

// Frequencies returns the raw per-value counts as seen so far. Callers
// must not mutate the returned slice.
func (h *Histogram) Frequencies() []int {
	return h.counts
}
