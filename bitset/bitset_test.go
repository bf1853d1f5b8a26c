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

package bitset

import "testing"

func TestSmallAndLargeAgree(t *testing.T) {
	for _, n := range []int{1, 32, 64, 65, 200} {
		s := New(n)
		for i := 0; i < n; i += 7 {
			s.Set(i)
		}
		for i := 0; i < n; i++ {
			want := i%7 == 0
			if got := s.Get(i); got != want {
				t.Fatalf("n=%d i=%d: got %v want %v", n, i, got, want)
			}
		}
	}
}

func TestFirstZero(t *testing.T) {
	s := New(8)
	for i := 0; i < 5; i++ {
		s.Set(i)
	}
	if got := s.FirstZero(); got != 5 {
		t.Fatalf("FirstZero() = %d, want 5", got)
	}

	full := New(4)
	for i := 0; i < 4; i++ {
		full.Set(i)
	}
	if got := full.FirstZero(); got != 4 {
		t.Fatalf("FirstZero() on full set = %d, want len (4)", got)
	}
}

func TestFirstZeroLarge(t *testing.T) {
	s := New(200)
	for i := 0; i < 130; i++ {
		s.Set(i)
	}
	if got := s.FirstZero(); got != 130 {
		t.Fatalf("FirstZero() = %d, want 130", got)
	}
}

func TestCountZeros(t *testing.T) {
	s := New(16)
	s.Set(1)
	s.Set(3)
	s.Set(5)
	// bits [0,8): set at 1,3,5 => 3 ones, 5 zeros
	if got := s.CountZeros(8); got != 5 {
		t.Fatalf("CountZeros(8) = %d, want 5", got)
	}
}

func TestUnionFrom(t *testing.T) {
	a := New(128)
	b := New(128)
	a.Set(3)
	b.Set(70)
	a.UnionFrom(b)
	if !a.Get(3) || !a.Get(70) {
		t.Fatal("union should contain bits from both sets")
	}
}

func TestCopyPrefix(t *testing.T) {
	s := New(128)
	s.Set(5)
	s.Set(70)
	p := s.CopyPrefix(64)
	if !p.Get(5) {
		t.Fatal("prefix should retain bit 5")
	}
	if p.Get(70) {
		t.Fatal("prefix should not see bit 70, which is out of range")
	}
}

func TestClearAll(t *testing.T) {
	s := New(128)
	s.Set(10)
	s.Set(100)
	s.ClearAll()
	if s.Get(10) || s.Get(100) {
		t.Fatal("ClearAll should clear every bit")
	}
}

func TestNewForLargestInvariant(t *testing.T) {
	// spec: logical length >= 2*NextPow2(largest)+2
	s := NewForLargest(5)
	if s.Len() < 2*8+2 {
		t.Fatalf("NewForLargest(5) length %d too small", s.Len())
	}
}
