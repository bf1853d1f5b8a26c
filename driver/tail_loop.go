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
	"fmt"

	"github.com/grundylab/octal/bitset"
	"github.com/grundylab/octal/histogram"
	"github.com/grundylab/octal/internal/workers"
	"github.com/grundylab/octal/mex"
	"github.com/grundylab/octal/nimber"
	"github.com/grundylab/octal/rare"
	"github.com/grundylab/octal/ruleset"
	"github.com/grundylab/octal/tail"
)

// runTail continues the computation past the in-memory prefix using a
// fixed-size ring window, resuming from the highest checkpoint ckpt
// reports (if any is newer than the just-computed prefix) or else
// seeding the ring straight from g. The rare partition is never
// regenerated here: a new maximum nimber in tail mode is fatal, since
// the discarded prefix history needed to rebuild R is gone.
func runTail(cfg Config, rules ruleset.RuleSet, g *nimber.Array, width nimber.Width, hist *histogram.Histogram, rares *bitset.Set, rareIdx *rare.Index, largestNimber int, pool *workers.Pool, reporter Reporter, ckpt Checkpointer) error {
	w := cfg.tailWindowSize()
	if w < rules.Len() {
		w = rules.Len()
	}

	head := nimber.New(width, rules.Len())
	for i := 0; i <= rules.Len(); i++ {
		head.Set(i, g.Get(i))
	}
	win := tail.NewWindow(rules, head, width, w)

	start := cfg.N
	resumed := false
	if ckpt != nil {
		n0, ok, err := ckpt.Latest()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIoError, err)
		}
		if ok && n0 > start+1 {
			values, err := ckpt.Read(n0)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrIoError, err)
			}
			if len(values) != w {
				return fmt.Errorf("%w: checkpoint %d holds %d nimbers, want %d", ErrIoError, n0, len(values), w)
			}
			win.Restore(values, n0-w)
			start = n0 - 1
			resumed = true
		}
	}
	if !resumed {
		from := start - w + 1
		if from < 0 {
			from = 0
		}
		win.Seed(g, from)
	}

	seen := bitset.New(rares.Len())

	for n := start + 1; cfg.TailUntil <= 0 || n <= cfg.TailUntil; n++ {
		var v uint32
		if pool != nil {
			v = mex.RCParallel(pool, rules, win, n, seen, rares, rareIdx)
		} else {
			v = mex.RC(rules, win, n, seen, rares, rareIdx)
		}

		if int(v) > largestNimber {
			return fmt.Errorf("%w: position %d: new nimber %d exceeds prior maximum %d", ErrMaxNimberGrewInTail, n, v, largestNimber)
		}

		win.Set(n, v)
		rareIdx.MaybePush(rares, n, v)
		hist.Add(int(v))

		if reporter != nil {
			reporter.Progress(n, n, v)
		}

		if ckpt != nil && n%w == 0 {
			snap := win.Snapshot(n - w + 1)
			if err := ckpt.Write(n+1, snap); err != nil {
				return fmt.Errorf("%w: %v", ErrIoError, err)
			}
		}
	}

	return nil
}
