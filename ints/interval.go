// Copyright (C) 2024 Grundy Lab
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package ints

// Interval is a half-open interval [Start, End) of integer indices.
type Interval struct {
	Start, End int
}

// Len returns the length of the interval; zero if empty.
func (in Interval) Len() int {
	if in.End <= in.Start {
		return 0
	}
	return in.End - in.Start
}

// Chunks splits in into consecutive sub-intervals of at most size
// elements each. The final chunk may be shorter. Chunks of an empty
// or inverted interval yields no chunks.
func (in Interval) Chunks(size int) []Interval {
	if size <= 0 || in.Len() == 0 {
		return nil
	}
	n := (in.Len() + size - 1) / size
	out := make([]Interval, 0, n)
	for start := in.Start; start < in.End; start += size {
		end := start + size
		if end > in.End {
			end = in.End
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return out
}
