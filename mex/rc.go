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
	"github.com/grundylab/octal/rare"
	"github.com/grundylab/octal/ruleset"
)

// RC computes G(n) using the rare/common split: rares and rareIdx must
// be a consistent R/C partition and its matching index, built from the
// same g this call reads. seen is cleared and reused as scratch space;
// it must be sized at least as large as rares.
//
// The result is identical to Naive for the same rules, g and n — RC is
// purely an acceleration, never a different answer.
func RC(rules ruleset.RuleSet, g Source, n int, seen, rares *bitset.Set, rareIdx *rare.Index) uint32 {
	seen.ClearAll()
	setSeenFromSomeMoves(rules, g, n, seen)
	setZeroBitIfDividesInHalf(rules, n, seen)
	sweepRareXorCommon(rules, g, n, rareIdx, seen)

	firstCommon := findFirstCommonUnset(seen, rares)
	mex := seen.CopyPrefix(firstCommon)
	return proveSweep(rules, g, n, firstCommon, mex)
}

// proveSweep walks every divide-move successor in rule order, folding
// newly discovered rare values below firstCommon into mex, and returns
// as soon as every slot below firstCommon is accounted for (the
// position's nimber is then firstCommon itself) or, failing that, the
// smallest slot that was never filled.
func proveSweep(rules ruleset.RuleSet, g Source, n, firstCommon int, mex *bitset.Set) uint32 {
	remaining := mex.CountZeros(firstCommon)
	if remaining == 0 {
		return uint32(firstCommon)
	}

	for i := 1; i < rules.Len(); i++ {
		if remaining == 0 {
			break
		}
		if !rules.At(i).AllowDivide {
			continue
		}
		for j := 1; j <= (n-i)/2; j++ {
			a, b := g.Get(j), g.Get(n-i-j)
			loc := int(a ^ b)
			if loc < firstCommon && !mex.Get(loc) {
				mex.Set(loc)
				remaining--
				if remaining == 0 {
					return uint32(firstCommon)
				}
			}
		}
	}

	return uint32(mex.FirstZero())
}
