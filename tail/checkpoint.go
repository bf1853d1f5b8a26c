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
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/grundylab/octal/nimber"
)

// ErrBadLength is wrapped into an *os.PathError-free error when a
// checkpoint file's length isn't an exact multiple of the nimber
// width in bytes.
var ErrBadLength = errors.New("tail: checkpoint file length is not a whole number of nimbers")

// ErrDigestMismatch indicates a checkpoint's sidecar digest doesn't
// match the file's actual bytes.
var ErrDigestMismatch = errors.New("tail: checkpoint sidecar digest mismatch")

func bytesPerNimber(width nimber.Width) int {
	return int(width) / 8
}

// Encode serializes values as fixed-width big-endian integers with no
// framing: exactly len(values) * bytesPerNimber(width) bytes.
func Encode(values []uint32, width nimber.Width) []byte {
	b := bytesPerNimber(width)
	buf := make([]byte, len(values)*b)
	for i, v := range values {
		off := i * b
		switch width {
		case nimber.Width8:
			buf[off] = byte(v)
		case nimber.Width16:
			binary.BigEndian.PutUint16(buf[off:], uint16(v))
		case nimber.Width32:
			binary.BigEndian.PutUint32(buf[off:], v)
		}
	}
	return buf
}

// Decode parses a checkpoint byte slice into nimbers. It rejects any
// length that isn't an exact multiple of the configured width.
func Decode(buf []byte, width nimber.Width) ([]uint32, error) {
	b := bytesPerNimber(width)
	if len(buf)%b != 0 {
		return nil, fmt.Errorf("%w: got %d bytes, width %d bits", ErrBadLength, len(buf), width)
	}
	out := make([]uint32, len(buf)/b)
	for i := range out {
		off := i * b
		switch width {
		case nimber.Width8:
			out[i] = uint32(buf[off])
		case nimber.Width16:
			out[i] = uint32(binary.BigEndian.Uint16(buf[off:]))
		case nimber.Width32:
			out[i] = binary.BigEndian.Uint32(buf[off:])
		}
	}
	return out, nil
}

func checkpointPath(dir, rules string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("nimbers_%s_%d", rules, n))
}

func sidecarPath(path string) string {
	return path + ".b2"
}

// WriteCheckpoint encodes values and writes them to
// <dir>/nimbers_<rules>_<n>, plus a BLAKE2b-256 sidecar digest of the
// exact bytes written.
func WriteCheckpoint(dir, rules string, n int, values []uint32, width nimber.Width) error {
	data := Encode(values, width)
	path := checkpointPath(dir, rules, n)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("tail: writing checkpoint %s: %w", path, err)
	}

	sum := blake2b.Sum256(data)
	if err := os.WriteFile(sidecarPath(path), sum[:], 0o644); err != nil {
		return fmt.Errorf("tail: writing checkpoint digest %s: %w", sidecarPath(path), err)
	}
	return nil
}

// ReadCheckpoint reads and decodes the checkpoint at <dir>/nimbers_<rules>_<n>.
// If a sidecar digest file is present, its content must match a fresh
// BLAKE2b-256 sum of the checkpoint bytes or ErrDigestMismatch is
// returned; an absent sidecar is not an error, since the length check
// alone is the format's baseline guarantee.
func ReadCheckpoint(dir, rules string, n int, width nimber.Width) ([]uint32, error) {
	path := checkpointPath(dir, rules, n)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tail: reading checkpoint %s: %w", path, err)
	}

	if sidecar, err := os.ReadFile(sidecarPath(path)); err == nil {
		sum := blake2b.Sum256(data)
		if len(sidecar) != len(sum) || string(sidecar) != string(sum[:]) {
			return nil, fmt.Errorf("%w: %s", ErrDigestMismatch, path)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("tail: reading checkpoint digest %s: %w", sidecarPath(path), err)
	}

	return Decode(data, width)
}

// LatestCheckpoint scans dir for files named nimbers_<rules>_<n> and
// returns the largest n found, or ok=false if none exist.
func LatestCheckpoint(dir, rules string) (n int, ok bool, err error) {
	prefix := fmt.Sprintf("nimbers_%s_", rules)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, false, fmt.Errorf("tail: scanning %s: %w", dir, err)
	}

	var found []int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || strings.HasSuffix(name, ".b2") {
			continue
		}
		suffix := name[len(prefix):]
		v, convErr := strconv.Atoi(suffix)
		if convErr != nil {
			continue
		}
		found = append(found, v)
	}
	if len(found) == 0 {
		return 0, false, nil
	}
	sort.Ints(found)
	return found[len(found)-1], true, nil
}
