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

package ints

import "testing"

func TestSetClearBit(t *testing.T) {
	words := make([]uint64, 4)
	for _, k := range []int{0, 1, 63, 64, 65, 200, 255} {
		SetBit(words, k)
		if !TestBit(words, k) {
			t.Fatalf("bit %d not set after SetBit", k)
		}
		ClearBit(words, k)
		if TestBit(words, k) {
			t.Fatalf("bit %d still set after ClearBit", k)
		}
	}
}

func TestSetBitsRange(t *testing.T) {
	words := make([]uint64, 4)
	SetBits(words, 10, 130)
	for k := 0; k < 256; k++ {
		want := k >= 10 && k < 130
		if got := TestBit(words, k); got != want {
			t.Fatalf("bit %d: got %v want %v", k, got, want)
		}
	}
	ClearBits(words, 60, 70)
	for k := 60; k < 70; k++ {
		if TestBit(words, k) {
			t.Fatalf("bit %d still set after ClearBits", k)
		}
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[uint64]uint64{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 1023: 1024, 1024: 1024}
	for in, want := range cases {
		if got := NextPow2(in); got != want {
			t.Fatalf("NextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestIntervalChunks(t *testing.T) {
	iv := Interval{Start: 1, End: 10}
	chunks := iv.Chunks(3)
	want := []Interval{{1, 4}, {4, 7}, {7, 10}}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Fatalf("chunk %d: got %v want %v", i, chunks[i], want[i])
		}
	}
	if len(Interval{Start: 5, End: 5}.Chunks(3)) != 0 {
		t.Fatal("empty interval should yield no chunks")
	}
}
