package notify

import "sync"

// Recorder keeps every notification it receives. It is used by tests and by
// the host to print a trace after a pass.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
	starts, ends  int
	progress      []int
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *Recorder) ProcessStart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
}

func (r *Recorder) ProcessEnd() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends++
}

func (r *Recorder) Progress(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, percent)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// For returns the notifications recorded for a single source.
func (r *Recorder) For(source string) []Notification {
	var out []Notification
	for _, n := range r.All() {
		if n.Source == source {
			out = append(out, n)
		}
	}
	return out
}

// Last returns the most recent notification for a source.
func (r *Recorder) Last(source string) (Notification, bool) {
	ns := r.For(source)
	if len(ns) == 0 {
		return Notification{}, false
	}
	return ns[len(ns)-1], true
}

// Processes returns how many passes were started and ended.
func (r *Recorder) Processes() (starts, ends int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.starts, r.ends
}

// ProgressValues returns every progress value received.
func (r *Recorder) ProgressValues() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.progress))
	copy(out, r.progress)
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
	r.starts, r.ends = 0, 0
	r.progress = nil
}
