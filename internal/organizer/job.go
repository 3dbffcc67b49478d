package organizer

import (
	"context"
	"sync"
)

// Job is a run executing on a background goroutine.
//
// Events are queued without bound so the worker never waits on the consumer,
// then forwarded in order on Events. Callers that want the full stream drain
// Events until it is closed; the outcome event is always the last value
// received. Callers that only need the outcome call Wait.
type Job struct {
	events chan Event
	done   chan struct{}

	stop     chan struct{}
	stopOnce sync.Once

	outcome Outcome

	mu      sync.Mutex
	cond    *sync.Cond
	pending []Event
	closed  bool
}

// Start launches a run in the background and returns immediately.
func (o *Organizer) Start(ctx context.Context, req Request) *Job {
	job := &Job{
		events: make(chan Event),
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
	}
	job.cond = sync.NewCond(&job.mu)

	go job.forward()
	go func() {
		job.outcome = o.Run(ctx, req, SinkFunc(job.push))
		job.closeQueue()
		close(job.done)
	}()
	return job
}

// Events returns the ordered event stream. The channel is closed after the
// outcome event has been delivered.
func (j *Job) Events() <-chan Event {
	return j.events
}

// Done is closed once the run has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the run has finished and returns its outcome. Events not
// yet received when Wait returns are dropped and Events is closed.
func (j *Job) Wait() Outcome {
	<-j.done
	j.stopOnce.Do(func() { close(j.stop) })
	return j.outcome
}

func (j *Job) push(e Event) {
	j.mu.Lock()
	j.pending = append(j.pending, e)
	j.mu.Unlock()
	j.cond.Signal()
}

func (j *Job) closeQueue() {
	j.mu.Lock()
	j.closed = true
	j.mu.Unlock()
	j.cond.Broadcast()
}

func (j *Job) forward() {
	defer close(j.events)
	for {
		j.mu.Lock()
		for len(j.pending) == 0 && !j.closed {
			j.cond.Wait()
		}
		batch := j.pending
		j.pending = nil
		done := j.closed
		j.mu.Unlock()

		for _, e := range batch {
			select {
			case j.events <- e:
			case <-j.stop:
				return
			}
		}
		if done && len(batch) == 0 {
			return
		}
	}
}
