package runtime

import (
	"context"
	"fmt"
	"sync"
)

// Recorder is a Runner that records invocations without running anything.
type Recorder struct {
	mu   sync.Mutex
	Cmds []Cmd
	// Fail maps a program name to the error its invocations return.
	Fail map[string]error
	// Killed lists the pids passed to Terminate.
	Killed []int
	next   int
	alive  map[int]bool
}

func (r *Recorder) record(c Cmd) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cmds = append(r.Cmds, c)
	return r.Fail[c.Name]
}

// Run implements Runner.
func (r *Recorder) Run(_ context.Context, c Cmd) (*Output, error) {
	if err := r.record(c); err != nil {
		return &Output{ExitCode: 1}, err
	}
	return &Output{}, nil
}

// Start implements Runner. Process ids count up from 1001.
func (r *Recorder) Start(_ context.Context, c Cmd) (int, error) {
	if err := r.record(c); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	pid := 1000 + r.next
	if r.alive == nil {
		r.alive = map[int]bool{}
	}
	r.alive[pid] = true
	return pid, nil
}

// Alive implements Runner. Only pids handed out by Start and not yet
// terminated are alive.
func (r *Recorder) Alive(pid int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alive[pid]
}

// Terminate implements Runner.
func (r *Recorder) Terminate(pid int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Killed = append(r.Killed, pid)
	if !r.alive[pid] {
		return fmt.Errorf("process %d: not running", pid)
	}
	delete(r.alive, pid)
	return nil
}

// Commands returns the recorded invocations as strings.
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Cmds))
	for i, c := range r.Cmds {
		out[i] = c.String()
	}
	return out
}
