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

package mex

import (
	"github.com/grundylab/octal/bitset"
	"github.com/grundylab/octal/internal/workers"
	"github.com/grundylab/octal/ints"
	"github.com/grundylab/octal/rare"
	"github.com/grundylab/octal/ruleset"
)

// superChunkItems bounds how many (i, j) proof-sweep pairs a single
// worker job scans before its partial bitset is merged back in and the
// early-exit condition is re-checked. Small enough that an early mex
// doesn't burn much wasted work across threads; large enough that job
// dispatch overhead stays a small fraction of the scan itself.
const superChunkItems = 4096

type divideItem struct {
	i, j int
}

// divideWorkItems flattens every (i, j) pair a sequential proof sweep
// would visit, in the same order, so a parallel sweep can slice that
// same space into independent chunks.
func divideWorkItems(rules ruleset.RuleSet, n int) []divideItem {
	var items []divideItem
	for i := 1; i < rules.Len(); i++ {
		if !rules.At(i).AllowDivide {
			continue
		}
		for j := 1; j <= (n-i)/2; j++ {
			items = append(items, divideItem{i: i, j: j})
		}
	}
	return items
}

// RCParallel computes G(n) exactly as RC does, but spreads the proof
// sweep's divide-move scan across pool. Results are identical to RC
// regardless of pool's thread count: every (i, j) pair is still
// visited exactly once, just not necessarily in rule order, and the
// early-exit check only happens at super-chunk granularity instead of
// after every single pair.
//
// A nil pool, or one with a single thread, falls back to the
// sequential sweep with no parallel dispatch at all.
func RCParallel(pool *workers.Pool, rules ruleset.RuleSet, g Source, n int, seen, rares *bitset.Set, rareIdx *rare.Index) uint32 {
	seen.ClearAll()
	setSeenFromSomeMoves(rules, g, n, seen)
	setZeroBitIfDividesInHalf(rules, n, seen)
	sweepRareXorCommon(rules, g, n, rareIdx, seen)

	firstCommon := findFirstCommonUnset(seen, rares)
	mex := seen.CopyPrefix(firstCommon)

	if pool == nil || pool.Threads() <= 1 {
		return proveSweep(rules, g, n, firstCommon, mex)
	}

	remaining := mex.CountZeros(firstCommon)
	if remaining == 0 {
		return uint32(firstCommon)
	}

	items := divideWorkItems(rules, n)
	if len(items) == 0 {
		return uint32(mex.FirstZero())
	}

	superSize := superChunkItems * pool.Threads()
	whole := ints.Interval{Start: 0, End: len(items)}
	for _, super := range whole.Chunks(superSize) {
		subChunks := ints.Interval{Start: super.Start, End: super.End}.Chunks(superChunkItems)
		jobs := make([]func(), len(subChunks))
		partials := make([]*bitset.Set, len(subChunks))

		for k, sub := range subChunks {
			k, sub := k, sub
			jobs[k] = func() {
				local := bitset.New(firstCommon)
				for idx := sub.Start; idx < sub.End; idx++ {
					it := items[idx]
					a, b := g.Get(it.j), g.Get(n-it.i-it.j)
					loc := int(a ^ b)
					if loc < firstCommon {
						local.Set(loc)
					}
				}
				partials[k] = local
			}
		}

		pool.RunBatch(jobs)
		for _, p := range partials {
			mex.UnionFrom(p)
		}

		if mex.CountZeros(firstCommon) == 0 {
			return uint32(firstCommon)
		}
	}

	return uint32(mex.FirstZero())
}
