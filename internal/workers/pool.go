// Copyright (C) 2022 Sneller, Inc.
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

// Package workers implements the persistent goroutine pool that backs
// the mex engine's data-parallel proof sweep: a fixed number of
// workers started once at Driver startup, reused across every call to
// the R-C engine for the life of the run.
//
// Unlike a one-shot dispatch pool closed after a single session, this
// pool supports many independent batches: RunBatch blocks until the
// jobs in that batch finish, but the pool (and its goroutines) stays
// alive for the next call. Jobs never race each other or the caller:
// a batch's private state (typically a per-worker bitset.Set) is only
// touched by the one job that owns it, and RunBatch does not return
// until every job in the batch has returned.
package workers

import "sync"

// Pool is a fixed-size goroutine pool that runs batches of jobs.
type Pool struct {
	threads int

	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	closed  bool
}

// NewPool starts threads persistent goroutines and returns a Pool
// ready to accept batches. threads must be >= 1.
func NewPool(threads int) *Pool {
	p := &Pool{threads: threads}
	p.cond = sync.NewCond(&p.mu)

	var started sync.WaitGroup
	started.Add(threads)
	for i := 0; i < threads; i++ {
		go p.worker(&started)
	}
	// Wait for all workers to be ready so an early Broadcast is
	// never missed.
	started.Wait()
	return p
}

// Threads reports the configured worker count.
func (p *Pool) Threads() int {
	return p.threads
}

func (p *Pool) worker(started *sync.WaitGroup) {
	started.Done()
	for {
		p.mu.Lock()
		for !p.closed && len(p.pending) == 0 {
			p.cond.Wait()
		}
		if p.closed && len(p.pending) == 0 {
			p.mu.Unlock()
			return
		}
		job := p.pending[len(p.pending)-1]
		p.pending = p.pending[:len(p.pending)-1]
		p.mu.Unlock()

		job()
	}
}

// RunBatch enqueues every job in jobs and blocks until all of them
// have run to completion. It may be called many times over the life
// of the Pool; it never closes the pool.
func (p *Pool) RunBatch(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(jobs))

	p.mu.Lock()
	for _, j := range jobs {
		job := j
		p.pending = append(p.pending, func() {
			job()
			wg.Done()
		})
	}
	p.cond.Broadcast()
	p.mu.Unlock()

	wg.Wait()
}

// Close stops every worker goroutine. The pool must not be used again
// afterward.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}
