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

package tail

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grundylab/octal/nimber"
	"github.com/grundylab/octal/ruleset"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, width := range []nimber.Width{nimber.Width8, nimber.Width16, nimber.Width32} {
		values := []uint32{0, 1, 2, 3, 10, 255}
		if width == nimber.Width8 {
			values = []uint32{0, 1, 2, 3, 10, 200}
		}
		data := Encode(values, width)
		got, err := Decode(data, width)
		if err != nil {
			t.Fatalf("width %d: %v", width, err)
		}
		if len(got) != len(values) {
			t.Fatalf("width %d: got %d values, want %d", width, len(got), len(values))
		}
		for i, v := range values {
			if got[i] != v {
				t.Fatalf("width %d: value %d = %d, want %d", width, i, got[i], v)
			}
		}
	}
}

func TestDecodeRejectsBadLength(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3}, nimber.Width32)
	if !errors.Is(err, ErrBadLength) {
		t.Fatalf("expected ErrBadLength, got %v", err)
	}
}

func TestEncodeIsBigEndian(t *testing.T) {
	data := Encode([]uint32{0x01020304}, nimber.Width32)
	want := []byte{0x01, 0x02, 0x03, 0x04}
	if string(data) != string(want) {
		t.Fatalf("Encode = %x, want %x (big-endian, most significant byte first)", data, want)
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	dir := t.TempDir()
	values := []uint32{1, 2, 3, 4, 5, 6, 7, 8}

	if err := WriteCheckpoint(dir, "0.034", 1000, values, nimber.Width32); err != nil {
		t.Fatal(err)
	}

	got, err := ReadCheckpoint(dir, "0.034", 1000, nimber.Width32)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(values) {
		t.Fatalf("got %d values, want %d", len(got), len(values))
	}
	for i, v := range values {
		if got[i] != v {
			t.Fatalf("value %d = %d, want %d", i, got[i], v)
		}
	}
}

func TestCheckpointDetectsDigestMismatch(t *testing.T) {
	dir := t.TempDir()
	values := []uint32{1, 2, 3}
	if err := WriteCheckpoint(dir, "0.034", 50, values, nimber.Width32); err != nil {
		t.Fatal(err)
	}

	path := checkpointPath(dir, "0.034", 50)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[0] ^= 0xff
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = ReadCheckpoint(dir, "0.034", 50, nimber.Width32)
	if !errors.Is(err, ErrDigestMismatch) {
		t.Fatalf("expected ErrDigestMismatch, got %v", err)
	}
}

func TestCheckpointWithoutSidecarIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	values := []uint32{9, 9, 9}
	data := Encode(values, nimber.Width32)
	path := filepath.Join(dir, "nimbers_0.034_7")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadCheckpoint(dir, "0.034", 7, nimber.Width32)
	if err != nil {
		t.Fatalf("absent sidecar should not be an error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d values, want 3", len(got))
	}
}

func TestLatestCheckpointPicksHighest(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []int{10, 1000, 500} {
		if err := WriteCheckpoint(dir, "0.034", n, []uint32{1}, nimber.Width32); err != nil {
			t.Fatal(err)
		}
	}
	// A file for a different rules string must not be picked up.
	if err := WriteCheckpoint(dir, "0.007", 999999, []uint32{1}, nimber.Width32); err != nil {
		t.Fatal(err)
	}

	n, ok, err := LatestCheckpoint(dir, "0.034")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || n != 1000 {
		t.Fatalf("LatestCheckpoint = (%d, %v), want (1000, true)", n, ok)
	}
}

func TestLatestCheckpointNoneFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := LatestCheckpoint(dir, "0.034")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected ok=false for an empty directory")
	}
}

func TestWindowHeadAndRing(t *testing.T) {
	rules, err := ruleset.Parse("0.034")
	if err != nil {
		t.Fatal(err)
	}
	head := nimber.New(nimber.Width32, rules.Len())
	for i := 0; i <= rules.Len(); i++ {
		head.Set(i, uint32(i))
	}

	win := NewWindow(rules, head, nimber.Width32, 8)
	for i := 0; i < rules.Len(); i++ {
		if got := win.Get(i); got != uint32(i) {
			t.Fatalf("Get(%d) = %d, want %d (served from head)", i, got, i)
		}
	}

	win.Set(100, 42)
	if got := win.Get(100); got != 42 {
		t.Fatalf("Get(100) = %d, want 42", got)
	}
}

func TestWindowSeedSnapshotRestore(t *testing.T) {
	rules, err := ruleset.Parse("0.034")
	if err != nil {
		t.Fatal(err)
	}
	head := nimber.New(nimber.Width32, rules.Len())

	full := nimber.New(nimber.Width32, 100)
	for i := 0; i <= 100; i++ {
		full.Set(i, uint32(i%7))
	}

	win := NewWindow(rules, head, nimber.Width32, 10)
	win.Seed(full, 90)
	snap := win.Snapshot(90)
	for i, v := range snap {
		want := full.Get(90 + i)
		if v != want {
			t.Fatalf("snapshot[%d] = %d, want %d", i, v, want)
		}
	}

	win2 := NewWindow(rules, head, nimber.Width32, 10)
	win2.Restore(snap, 90)
	for i := 90; i < 100; i++ {
		if win2.Get(i) != win.Get(i) {
			t.Fatalf("restored Get(%d) = %d, want %d", i, win2.Get(i), win.Get(i))
		}
	}
}
