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

package period

import "testing"

// buildPeriodic returns a sequence of length n that is an arbitrary
// preperiod of length `start` followed by a repetition of a `p`-long
// block, so Detect's sufficient condition is satisfiable for the right
// n.
func buildPeriodic(n, start, p int) []uint32 {
	g := make([]uint32, n)
	for i := 0; i < start; i++ {
		g[i] = uint32(1000 + i) // preperiod noise, never colliding with the repeating block
	}
	block := make([]uint32, p)
	for i := range block {
		block[i] = uint32(i % 5)
	}
	for i := start; i < n; i++ {
		g[i] = block[(i-start)%p]
	}
	return g
}

func getter(g []uint32) func(int) uint32 {
	return func(i int) uint32 { return g[i] }
}

func TestDetectFindsExactPeriod(t *testing.T) {
	const start, p, r = 5, 3, 4
	// n large enough that n >= 2*start+2*p+r-1 = 10+6+3 = 19
	n := 40
	g := buildPeriodic(n, start, p)

	res := Detect(n, r, getter(g), NewDigestFromRules("0.034"))
	if !res.Found {
		t.Fatalf("expected a period to be found, longest=%d", res.LongestRun)
	}
	if res.Period != p {
		t.Fatalf("Period = %d, want %d", res.Period, p)
	}
	if res.Start > start {
		t.Fatalf("Start = %d, want <= %d (a smaller start is also a valid tighter fit)", res.Start, start)
	}
}

func TestDetectNoPeriodInNonPeriodicSequence(t *testing.T) {
	n := 64
	g := make([]uint32, n)
	for i := range g {
		// A pseudo-random-looking, non-periodic sequence.
		g[i] = uint32((i*2654435761 + 17) % 97)
	}

	res := Detect(n, 4, getter(g), NewDigestFromRules("0.034"))
	if res.Found {
		t.Fatalf("did not expect a period in a non-periodic sequence, got start=%d period=%d", res.Start, res.Period)
	}
}

func TestBisectBoundaryAgreesWithExactScan(t *testing.T) {
	n := 97
	g := buildPeriodic(n, 11, 7)
	d := NewDigestFromRules("0.007")

	for p := 1; p <= n/2; p++ {
		got := d.bisectBoundary(getter(g), 0, n-p, p)
		want := exactBoundary(getter(g), 0, n-p, p)
		if got != want {
			t.Fatalf("p=%d: bisectBoundary=%d, exactBoundary=%d", p, got, want)
		}
	}
}

func TestDigestFromRulesIsDeterministic(t *testing.T) {
	a := NewDigestFromRules("0.034")
	b := NewDigestFromRules("0.034")
	if a != b {
		t.Fatal("NewDigestFromRules should be deterministic for the same rules string")
	}
	c := NewDigestFromRules("0.007")
	if a == c {
		t.Fatal("different rules strings should not collide onto the same digest key")
	}
}
