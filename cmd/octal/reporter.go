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

package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/grundylab/octal/driver"
	"github.com/grundylab/octal/nimber"
	"github.com/grundylab/octal/period"
)

// jsonEntry is the wire shape of one histogram-dump row: the literal
// field names spec.md's standard-output contract names.
type jsonEntry struct {
	Nimber    uint32 `json:"nimber"`
	Frequency int    `json:"frequency"`
	Rare      bool   `json:"rare"`
}

// stdoutReporter prints the banner, percentage/ETA progress line,
// power-of-two JSON histogram dumps, and termination line the CLI
// contract (spec.md §6) requires, using lg so every line carries the
// run-ID prefix main assembled.
type stdoutReporter struct {
	lg      *log.Logger
	start   time.Time
	lastPct int
}

func newStdoutReporter(lg *log.Logger) *stdoutReporter {
	return &stdoutReporter{lg: lg, start: time.Now(), lastPct: -1}
}

func (r *stdoutReporter) Banner(runID string, width nimber.Width) {
	r.lg.Printf("octal nimber engine: run=%s nimber-width=%d bits", runID, width)
}

func (r *stdoutReporter) Progress(n, target int, g uint32) {
	if target <= 0 {
		return
	}
	pct := n * 100 / target
	if pct == r.lastPct {
		return
	}
	r.lastPct = pct

	elapsed := time.Since(r.start)
	var eta time.Duration
	if n > 0 {
		perStep := elapsed / time.Duration(n)
		remaining := target - n
		eta = perStep * time.Duration(remaining)
	}
	r.lg.Printf("progress: %d%% (n=%d/%d) G(n)=%d eta=%s", pct, n, target, g, eta.Round(time.Second))
}

func (r *stdoutReporter) DumpHistogram(n int, entries []driver.HistogramEntry) {
	rows := make([]jsonEntry, len(entries))
	for i, e := range entries {
		rows[i] = jsonEntry{Nimber: e.Nimber, Frequency: e.Frequency, Rare: e.Rare}
	}
	buf, err := json.Marshal(rows)
	if err != nil {
		r.lg.Printf("histogram dump at n=%d: marshal error: %s", n, err)
		return
	}
	r.lg.Printf("histogram at n=%d: %s", n, buf)
}

func (r *stdoutReporter) PeriodFound(res period.Result) {
	r.lg.Printf("period start: %d", res.Start)
	r.lg.Printf("period: %d", res.Period)
}

func (r *stdoutReporter) NoPeriod(longestRun int) {
	r.lg.Printf("no period :( longest streak: %d", longestRun)
}
