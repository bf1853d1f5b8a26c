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

// Package tail continues a nimber computation past the in-memory
// prefix using a fixed-size ring buffer instead of growing NimberArray
// without bound, checkpointing the ring to disk periodically so a run
// can resume after a restart.
package tail

import (
	"github.com/grundylab/octal/nimber"
	"github.com/grundylab/octal/ruleset"
)

// Window holds G(0..r) (read from the bootstrap head, never mutated)
// plus a ring of the most recent W computed values for indices at or
// past r. Callers must only read or write indices within [n-W, n) of
// the current position n; anything further back has been discarded.
type Window struct {
	rules ruleset.RuleSet
	head  *nimber.Array
	width nimber.Width
	ring  []uint32
}

// NewWindow allocates a Window with a ring of capacity w, seeded with
// zeros. w must be >= rules.Len().
func NewWindow(rules ruleset.RuleSet, head *nimber.Array, width nimber.Width, w int) *Window {
	return &Window{rules: rules, head: head, width: width, ring: make([]uint32, w)}
}

// Len returns the ring capacity W.
func (win *Window) Len() int {
	return len(win.ring)
}

// Width reports the configured nimber storage width.
func (win *Window) Width() nimber.Width {
	return win.width
}

// Get returns G(i). i must be < rules.Len() (served from head) or
// within the current ring window.
func (win *Window) Get(i int) uint32 {
	if i < win.rules.Len() {
		return win.head.Get(i)
	}
	return win.ring[i%len(win.ring)]
}

// Set stores G(i) = v for i at or past the ring's domain.
func (win *Window) Set(i int, v uint32) {
	win.ring[i%len(win.ring)] = v
}

// Seed copies W values from src, starting at index `from`, into the
// ring at their natural i%W slots, used once at tail-mode handoff to
// carry the last W values of the in-memory prefix into the ring. from
// need not be ring-aligned: indices are written at i%len(ring), the
// same mapping Get and Set use, so the ring reads correctly regardless
// of where the window happens to start.
func (win *Window) Seed(src *nimber.Array, from int) {
	w := len(win.ring)
	for k := 0; k < w; k++ {
		i := from + k
		win.ring[i%w] = src.Get(i)
	}
}

// Snapshot returns the ring's current contents for the window
// [base, base+Len()), in index order, ready for Encode.
func (win *Window) Snapshot(base int) []uint32 {
	out := make([]uint32, len(win.ring))
	for k := range out {
		out[k] = win.Get(base + k)
	}
	return out
}

// Restore loads W values (in index order, for the window starting at
// base) back into the ring, the counterpart to Snapshot used when
// resuming from a checkpoint.
func (win *Window) Restore(values []uint32, base int) {
	for k, v := range values {
		win.Set(base+k, v)
	}
}
