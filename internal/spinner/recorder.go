package spinner

import "sync"

// Recorder keeps every state change in memory. Command tests use it to
// assert what a generator reported.
type Recorder struct {
	mu     sync.Mutex
	Events []string
}

func (r *Recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, s)
}

func (r *Recorder) Start(text string)           { r.add("start:" + text) }
func (r *Recorder) SetText(text string)         { r.add("text:" + text) }
func (r *Recorder) Succeed(text string)         { r.add("succeed:" + text) }
func (r *Recorder) Fail(text string)            { r.add("fail:" + text) }
func (r *Recorder) Persist(symbol, text string) { r.add("persist:" + symbol + " " + text) }
func (r *Recorder) Stop()                       { r.add("stop") }

// Last returns the most recent event, or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Events) == 0 {
		return ""
	}
	return r.Events[len(r.Events)-1]
}
