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

import "github.com/grundylab/octal/nimber"

// FileCheckpointer binds a directory, rules string, and nimber width
// into the three-method shape the driver package's Checkpointer
// interface expects, so driver never needs to import this package
// directly — it only needs something that can Write/Latest/Read.
type FileCheckpointer struct {
	Dir   string
	Rules string
	Width nimber.Width
}

// Write encodes values and writes them (plus a digest sidecar) to
// <dir>/nimbers_<rules>_<n>.
func (f FileCheckpointer) Write(n int, values []uint32) error {
	return WriteCheckpoint(f.Dir, f.Rules, n, values, f.Width)
}

// Latest returns the highest checkpointed n under Dir for Rules.
func (f FileCheckpointer) Latest() (int, bool, error) {
	return LatestCheckpoint(f.Dir, f.Rules)
}

// Read loads and verifies the checkpoint for window-end index n.
func (f FileCheckpointer) Read(n int) ([]uint32, error) {
	return ReadCheckpoint(f.Dir, f.Rules, n, f.Width)
}
