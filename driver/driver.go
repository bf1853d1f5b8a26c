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

// Package driver orchestrates a full nimber computation run: bootstrap
// the opening positions, walk n from the rule length up to the
// configured in-memory bound computing G(n) with the rare/common mex
// engine, refresh the rare partition as new maxima appear, search for
// an eventual period, and optionally hand off to tail-mode ring-buffer
// continuation.
package driver

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/grundylab/octal/bitset"
	"github.com/grundylab/octal/histogram"
	"github.com/grundylab/octal/internal/workers"
	"github.com/grundylab/octal/mex"
	"github.com/grundylab/octal/nimber"
	"github.com/grundylab/octal/period"
	"github.com/grundylab/octal/rare"
	"github.com/grundylab/octal/ruleset"
)

// Config holds every knob a Run needs. Zero values pick sane defaults
// for Width and DumpAt/TailWindowSize; Rules and N should always be
// set explicitly by the caller.
type Config struct {
	Rules string      // octal game digit string, e.g. "0.034"
	N     int         // max-full-memory: the in-memory prefix bound
	Width nimber.Width // nimber storage width; defaults to Width32 if zero

	Threads int // worker count for Phase D; <=1 disables the pool

	TailMode       bool // continue past N with TailWindow if no period is found
	TailWindowSize int  // ring size W for tail mode; defaults to N if <=0
	TailUntil      int  // stop tail mode once n reaches this index; <=0 means run without bound

	DumpAt []int // additional milestone indices to dump the histogram at

	VerifyInternalInvariant bool // debug-only: re-check every G(n) against the naive mex
}

func (c Config) width() nimber.Width {
	if c.Width == 0 {
		return nimber.Width32
	}
	return c.Width
}

func (c Config) tailWindowSize() int {
	if c.TailWindowSize > 0 {
		return c.TailWindowSize
	}
	return c.N
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Run executes steps 1-5 of the orchestration sequence: parse rules,
// bootstrap, build the initial histogram/rare partition/index, walk
// n = r..N computing G(n), search for a period, and — if none is
// found and cfg.TailMode is set — continue indefinitely via
// TailWindow using ckpt for checkpoint I/O. reporter and ckpt may both
// be nil.
//
// Run returns the computed prefix (nil once the run has continued into
// tail mode, since the window discards everything beyond its ring),
// the period search result, and
// an error wrapping one of ErrInvalidRules, ErrIoError,
// ErrMaxNimberGrewInTail, or ErrInternalInvariantViolation.
func Run(cfg Config, reporter Reporter, ckpt Checkpointer) (*nimber.Array, period.Result, error) {
	rules, err := ruleset.Parse(cfg.Rules)
	if err != nil {
		return nil, period.Result{}, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	width := cfg.width()
	g := nimber.New(width, cfg.N)
	mex.Bootstrap(rules, g)

	hist := histogram.New(0)
	largestNimber := 0
	for i := 1; i < rules.Len(); i++ {
		v := int(g.Get(i))
		hist.Add(v)
		if v > largestNimber {
			largestNimber = v
		}
	}

	rares := rare.GenRares(hist.Frequencies(), largestNimber)
	rareIdx := rare.NewIndex()
	rareIdx.Rebuild(rares, rules.Len(), func(i int) uint32 { return g.Get(i) })

	var pool *workers.Pool
	if cfg.Threads > 1 {
		pool = workers.NewPool(cfg.Threads)
		defer pool.Close()
	}

	runID := uuid.New().String()
	if reporter != nil {
		reporter.Banner(runID, width)
	}

	dumpAt := make(map[int]bool, len(cfg.DumpAt))
	for _, d := range cfg.DumpAt {
		dumpAt[d] = true
	}

	seen := bitset.New(rares.Len())

	for n := rules.Len(); n <= cfg.N; n++ {
		v, err := computeOne(pool, rules, g, n, seen, rares, rareIdx, cfg.VerifyInternalInvariant)
		if err != nil {
			return g, period.Result{}, err
		}
		g.Set(n, v)
		hist.Add(int(v))

		regenerate := isPow2(n)
		if int(v) > largestNimber {
			largestNimber = int(v)
			regenerate = true
		} else {
			rareIdx.MaybePush(rares, n, v)
		}

		if regenerate {
			rares = rare.GenRares(hist.Frequencies(), largestNimber)
			rareIdx.Rebuild(rares, n+1, func(i int) uint32 { return g.Get(i) })
			seen = bitset.New(rares.Len())
		}

		if reporter != nil {
			reporter.Progress(n, cfg.N, v)
			if isPow2(n) || dumpAt[n] {
				reporter.DumpHistogram(n, histogramEntries(hist, rares))
			}
		}
	}

	getter := func(i int) uint32 { return g.Get(i) }
	digest := period.NewDigestFromRules(cfg.Rules)
	res := period.Detect(cfg.N, rules.Len(), getter, digest)

	if res.Found {
		if reporter != nil {
			reporter.PeriodFound(res)
		}
		return g, res, nil
	}

	if reporter != nil {
		reporter.NoPeriod(res.LongestRun)
	}

	if !cfg.TailMode {
		return g, res, nil
	}

	if err := runTail(cfg, rules, g, width, hist, rares, rareIdx, largestNimber, pool, reporter, ckpt); err != nil {
		return nil, res, err
	}
	return nil, res, nil
}

// computeOne dispatches to the parallel or sequential R-C engine
// depending on whether pool is usable, and optionally cross-checks the
// result against the naive mex.
func computeOne(pool *workers.Pool, rules ruleset.RuleSet, g mex.Source, n int, seen, rares *bitset.Set, rareIdx *rare.Index, verify bool) (uint32, error) {
	var v uint32
	if pool != nil {
		v = mex.RCParallel(pool, rules, g, n, seen, rares, rareIdx)
	} else {
		v = mex.RC(rules, g, n, seen, rares, rareIdx)
	}

	if verify {
		naiveSeen := bitset.New(rares.Len())
		want := mex.Naive(rules, g, n, naiveSeen)
		if want != v {
			return 0, fmt.Errorf("%w: position %d: rare/common mex=%d, naive mex=%d", ErrInternalInvariantViolation, n, v, want)
		}
	}
	return v, nil
}

// histogramEntries renders hist into the ordered, rare-flagged rows a
// Reporter dump needs.
func histogramEntries(hist *histogram.Histogram, rares *bitset.Set) []HistogramEntry {
	freqs := hist.Frequencies()
	entries := make([]HistogramEntry, len(freqs))
	for v, f := range freqs {
		entries[v] = HistogramEntry{
			Nimber:    uint32(v),
			Frequency: f,
			Rare:      v < rares.Len() && rares.Get(v),
		}
	}
	return entries
}
