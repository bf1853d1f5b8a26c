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

package rare

import "github.com/grundylab/octal/bitset"

// Entry is one (index, nimber) pair recorded in an Index because its
// nimber falls in R.
type Entry struct {
	Index  int
	Nimber uint32
}

// Index is the insertion-ordered sequence of (i, G(i)) pairs for every
// i with G(i) in R. It stores pairs, not references into NimberArray,
// so it never needs to track NimberArray's lifetime as R is
// regenerated: consumers re-dereference G[i] on the fly if they need
// the live value (they don't, since Nimber is cached at insertion
// time and R membership for an already-recorded entry never changes
// until the whole Index is rebuilt).
type Index struct {
	entries []Entry
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{}
}

// Push appends (i, v) unconditionally; callers are expected to have
// already checked r.Get(int(v)) before calling.
func (idx *Index) Push(i int, v uint32) {
	idx.entries = append(idx.entries, Entry{Index: i, Nimber: v})
}

// MaybePush appends (i, v) only if v is a member of r.
func (idx *Index) MaybePush(r *bitset.Set, i int, v uint32) {
	if int(v) < r.Len() && r.Get(int(v)) {
		idx.Push(i, v)
	}
}

// Entries returns the recorded pairs in insertion order. Callers must
// not mutate the returned slice.
func (idx *Index) Entries() []Entry {
	return idx.entries
}

// Len returns the number of recorded entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Clear empties the index in place, retaining its backing storage for
// reuse by the caller's upcoming rebuild scan.
func (idx *Index) Clear() {
	idx.entries = idx.entries[:0]
}

// Rebuild clears idx and repopulates it with every i in [1, n) whose
// nimber (read via get) is a member of r, in index order — the linear
// scan spec.md §4.3 calls for after a RarePartition regeneration.
func (idx *Index) Rebuild(r *bitset.Set, n int, get func(i int) uint32) {
	idx.Clear()
	for i := 1; i < n; i++ {
		idx.MaybePush(r, i, get(i))
	}
}
