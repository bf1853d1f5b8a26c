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

// Command octal computes Sprague-Grundy nimbers for an octal game,
// printing progress and periodic histogram dumps, and reporting the
// eventual period of the sequence (or continuing past the in-memory
// prefix in tail mode).
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/google/uuid"

	"github.com/grundylab/octal/driver"
	"github.com/grundylab/octal/internal/debug"
	"github.com/grundylab/octal/nimber"
	"github.com/grundylab/octal/tail"
)

// args holds every flag/config value main acts on, separate from
// flag.FlagSet so the --config overlay can rewrite fields before the
// driver.Config is assembled.
type args struct {
	rules         string
	maxFullMemory int
	tailMemory    bool
	threads       int
	dumpAt        intList
	configPath    string
	debugAddr     string
	verify        bool
}

func parseArgs(argv []string) (args, error) {
	a := args{}
	fs := flag.NewFlagSet("octal", flag.ContinueOnError)
	fs.StringVar(&a.rules, "rules", "0.034", "octal game digit string")
	fs.IntVar(&a.maxFullMemory, "max-full-memory", 1_000_000, "in-memory prefix bound N")
	fs.BoolVar(&a.tailMemory, "continue-with-tail-memory", false, "continue past N with a ring-buffer tail window if no period is found")
	fs.IntVar(&a.threads, "threads", 10, "worker count for the parallel proof sweep; 1 disables parallelism")
	fs.Var(&a.dumpAt, "dump-at", "additional index to dump the histogram at (repeatable)")
	fs.StringVar(&a.configPath, "config", "", "path to a YAML file overlaying any flag default")
	fs.StringVar(&a.debugAddr, "debug-addr", "", "host:port to serve net/http/pprof on; empty disables it")
	fs.BoolVar(&a.verify, "verify-internal-invariant", false, "cross-check every R-C mex against the naive mex (slow; off by default)")
	if err := fs.Parse(argv); err != nil {
		return a, err
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if a.configPath != "" {
		fc, err := loadFileConfig(a.configPath)
		if err != nil {
			return a, err
		}
		fc.overlay(&a, explicit)
	}

	return a, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	a, err := parseArgs(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	runID := uuid.New().String()
	lg := log.New(os.Stdout, "[octal "+runID[:8]+"] ", log.LstdFlags)

	if a.debugAddr != "" {
		if err := startDebugEndpoint(a.debugAddr, lg); err != nil {
			lg.Printf("warning: debug endpoint disabled: %s", err)
		}
	}

	var ckpt driver.Checkpointer
	if a.tailMemory {
		ckpt = tail.FileCheckpointer{Dir: ".", Rules: a.rules, Width: nimber.Width32}
	}

	cfg := driver.Config{
		Rules:                   a.rules,
		N:                       a.maxFullMemory,
		Width:                   nimber.Width32,
		Threads:                 a.threads,
		TailMode:                a.tailMemory,
		DumpAt:                  a.dumpAt,
		VerifyInternalInvariant: a.verify,
	}

	reporter := newStdoutReporter(lg)
	_, _, err = driver.Run(cfg, reporter, ckpt)
	if err != nil {
		lg.Printf("error: %s", err)
		return exitCodeFor(err)
	}
	return 0
}

// startDebugEndpoint binds addr, extracts its backing file descriptor,
// and hands it to debug.Fd, the teacher's pprof-over-fd helper —
// adapted here so --debug-addr can name a host:port instead of
// requiring the caller to pass a pre-opened fd via socket activation.
func startDebugEndpoint(addr string, lg *log.Logger) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	tl, ok := l.(*net.TCPListener)
	if !ok {
		l.Close()
		return fmt.Errorf("listener for %s is not a TCP listener", addr)
	}
	f, err := tl.File()
	l.Close()
	if err != nil {
		return fmt.Errorf("extracting fd for %s: %w", addr, err)
	}
	debug.Fd(int(f.Fd()), lg)
	lg.Printf("debug endpoint listening on %s", addr)
	return nil
}

// exitCodeFor maps the sentinel error kinds driver.Run can return to
// the nonzero exit codes spec.md §6 calls for ("nonzero on malformed
// rules, I/O failure, or the tail-mode max-nimber panic").
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, driver.ErrInvalidRules):
		return 3
	case errors.Is(err, driver.ErrIoError):
		return 4
	case errors.Is(err, driver.ErrMaxNimberGrewInTail):
		return 5
	case errors.Is(err, driver.ErrInternalInvariantViolation):
		return 6
	default:
		return 1
	}
}
