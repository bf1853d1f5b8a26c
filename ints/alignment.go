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

import (
	"golang.org/x/exp/constraints"
)

// ChunkCount returns the number of chunkSize-sized chunks needed to
// hold n units (e.g. the number of 64-bit words needed to hold n bits).
func ChunkCount[T constraints.Unsigned](n, chunkSize T) T {
	return (n + chunkSize - 1) / chunkSize
}
