// Package sched runs named recurring jobs on fixed intervals.
//
// Rescheduling happens from the actual fire time, so intervals drift with
// job duration, and ticks missed while the process was stopped are dropped
// rather than caught up. Both are deliberate policy, matched by tests.
package sched

import (
	"container/heap"
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Job is one recurring unit of work. Jobs must tolerate being invoked
// again after a failure; the scheduler never retries a specific firing.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context)
}

// Scheduler fires registered jobs when due, earliest first.
type Scheduler struct {
	log  zerolog.Logger
	jobs []Job
}

// New returns an empty scheduler.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Add registers a job. Jobs with a non-positive interval are ignored,
// which is how config disables them.
func (s *Scheduler) Add(j Job) {
	if j.Interval <= 0 || j.Fn == nil {
		return
	}
	s.jobs = append(s.jobs, j)
}

// Jobs returns the registered jobs in registration order.
func (s *Scheduler) Jobs() []Job {
	return s.jobs
}

// Run blocks until ctx is cancelled, firing due jobs. The first firing of
// each job happens one interval after Run starts.
func (s *Scheduler) Run(ctx context.Context) {
	if len(s.jobs) == 0 {
		<-ctx.Done()
		return
	}

	now := time.Now()
	h := make(jobHeap, 0, len(s.jobs))
	for i := range s.jobs {
		h = append(h, &pending{job: s.jobs[i], next: now.Add(s.jobs[i].Interval)})
	}
	heap.Init(&h)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		next := h[0]
		timer.Reset(time.Until(next.next))

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.invoke(ctx, next.job)
			next.next = time.Now().Add(next.job.Interval)
			heap.Fix(&h, 0)
		}
	}
}

// invoke runs one job, keeping the loop alive through panics.
func (s *Scheduler) invoke(ctx context.Context, j Job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Any("panic", r).Str("job", j.Name).Msg("scheduled job panicked")
		}
	}()

	s.log.Debug().Str("job", j.Name).Msg("job firing")
	j.Fn(ctx)
}

type pending struct {
	job  Job
	next time.Time
}

type jobHeap []*pending

func (h jobHeap) Len() int            { return len(h) }
func (h jobHeap) Less(i, j int) bool  { return h[i].next.Before(h[j].next) }
func (h jobHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *jobHeap) Push(x any)         { *h = append(*h, x.(*pending)) }
func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
