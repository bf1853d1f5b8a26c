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

package ruleset

import (
	"errors"
	"testing"
)

func TestParse034(t *testing.T) {
	rs, err := Parse("0.034")
	if err != nil {
		t.Fatal(err)
	}
	want := []Rule{
		{false, false, false},
		{false, false, false},
		{true, true, false},
		{false, false, true},
	}
	if rs.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", rs.Len(), len(want))
	}
	for i, w := range want {
		if rs.At(i) != w {
			t.Fatalf("rule %d = %+v, want %+v", i, rs.At(i), w)
		}
	}
}

func TestParse012345670(t *testing.T) {
	rs, err := Parse("0.012345670")
	if err != nil {
		t.Fatal(err)
	}
	want := []Rule{
		{false, false, false},
		{false, false, false},
		{true, false, false},
		{false, true, false},
		{true, true, false},
		{false, false, true},
		{true, false, true},
		{false, true, true},
		{true, true, true},
		{false, false, false},
	}
	for i, w := range want {
		if rs.At(i) != w {
			t.Fatalf("rule %d = %+v, want %+v", i, rs.At(i), w)
		}
	}
}

func TestParseInvalidDigit(t *testing.T) {
	for _, s := range []string{"0.089", "0.0x4", "0.9"} {
		if _, err := Parse(s); !errors.Is(err, ErrInvalidDigit) {
			t.Fatalf("Parse(%q): got %v, want ErrInvalidDigit", s, err)
		}
	}
}

func TestParseDiscardsDots(t *testing.T) {
	a, err := Parse("0.034")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("0034")
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != b.Len() {
		t.Fatalf("dot should only be a separator: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			t.Fatalf("rule %d differs with/without dot", i)
		}
	}
}
