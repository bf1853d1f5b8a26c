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

package nimber

import "testing"

func TestEachWidthRoundTrips(t *testing.T) {
	for _, w := range []Width{Width8, Width16, Width32} {
		a := New(w, 10)
		if a.Get(0) != 0 {
			t.Fatalf("width %d: G(0) must be 0", w)
		}
		if a.IsSet(5) {
			t.Fatalf("width %d: index 5 should start unset", w)
		}
		a.Set(5, 3)
		if !a.IsSet(5) || a.Get(5) != 3 {
			t.Fatalf("width %d: Set/Get round trip failed", w)
		}
	}
}

func TestSentinelDistinctFromRealValues(t *testing.T) {
	w := Width8
	a := New(w, 2)
	a.Set(1, uint32(w.Sentinel())-1)
	if !a.IsSet(1) {
		t.Fatal("value one below sentinel should be considered set")
	}
}
