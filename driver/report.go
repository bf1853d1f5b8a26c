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

package driver

import (
	"github.com/grundylab/octal/nimber"
	"github.com/grundylab/octal/period"
)

// HistogramEntry is one row of a histogram dump: a nimber value, how
// many computed positions carried it, and whether it currently falls
// in the rare partition R.
type HistogramEntry struct {
	Nimber    uint32
	Frequency int
	Rare      bool
}

// Reporter receives every externally observable event a Run produces.
// cmd/octal implements this to print the banner, progress, JSON
// histogram dumps, and termination lines the CLI contract requires; a
// test implementation can instead just record calls. A nil Reporter is
// valid and means "no output" — Run never dereferences it without a
// nil check.
type Reporter interface {
	// Banner is called once, before the main loop starts.
	Banner(runID string, width nimber.Width)

	// Progress is called after every computed position.
	Progress(n, target int, g uint32)

	// DumpHistogram is called on every power-of-two n and every
	// explicitly requested milestone n in the main loop (n from the
	// rule length up to N), with entries in increasing Nimber order.
	// Tail mode makes no dumps.
	DumpHistogram(n int, entries []HistogramEntry)

	// PeriodFound is called once if PeriodDetector succeeds.
	PeriodFound(res period.Result)

	// NoPeriod is called once if the prefix ends with no period found.
	NoPeriod(longestRun int)
}

// Checkpointer persists and recovers TailWindow contents. tail.FileCheckpointer
// is the on-disk implementation cmd/octal wires up by default; a nil
// Checkpointer is valid in full-memory (non-tail) runs, which never
// touch it.
type Checkpointer interface {
	// Write persists values as the window ending just before index n
	// (n is the first index past the window, matching the checkpoint
	// file naming convention).
	Write(n int, values []uint32) error

	// Latest returns the highest checkpointed n, or ok=false if none exist.
	Latest() (n int, ok bool, err error)

	// Read loads the checkpoint for window-end index n.
	Read(n int) ([]uint32, error)
}
