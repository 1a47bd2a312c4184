// Package statusrelay forwards notifications to a remote status display
// over socket.io.
package statusrelay

import (
	"sync"
	"time"

	"github.com/specialistvlad/nodegraph/internal/notify"
)

// Event names emitted by the relay.
const (
	EventNotification = "notification"
	EventProcess      = "process"
	EventProgress     = "progress"
)

// EmitFunc sends one event with its payload.
type EmitFunc func(event string, payload map[string]any)

// Relay is a notify.Subscriber that emits every notification as an event.
type Relay struct {
	session string
	emit    EmitFunc
	close   func()

	mu sync.Mutex
}

var _ notify.Subscriber = (*Relay)(nil)

// New creates a relay around an emit function. closeFn may be nil.
func New(sessionID string, emit EmitFunc, closeFn func()) *Relay {
	return &Relay{session: sessionID, emit: emit, close: closeFn}
}

func (r *Relay) send(event string, payload map[string]any) {
	payload["session"] = r.session
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emit(event, payload)
}

// Notify implements notify.Subscriber.
func (r *Relay) Notify(n notify.Notification) {
	r.send(EventNotification, map[string]any{
		"node":    n.Source,
		"level":   n.Level.String(),
		"message": n.Message,
		"time":    n.Time.UTC().Format(time.RFC3339Nano),
	})
}

// ProcessStart implements notify.Subscriber.
func (r *Relay) ProcessStart() {
	r.send(EventProcess, map[string]any{"phase": "start"})
}

// ProcessEnd implements notify.Subscriber.
func (r *Relay) ProcessEnd() {
	r.send(EventProcess, map[string]any{"phase": "end"})
}

// Progress implements notify.Subscriber.
func (r *Relay) Progress(percent int) {
	r.send(EventProgress, map[string]any{"percent": percent})
}

// Close disconnects the underlying transport.
func (r *Relay) Close() {
	if r.close != nil {
		r.close()
	}
}
