// Package notify is the pub/sub channel for human-readable status messages
// produced while the graph is edited and validated. Messages are keyed by
// the display name of the node they concern.
package notify

import (
	"sync"
	"time"
)

// Level classifies a notification.
type Level int

const (
	Info Level = iota
	OK
	Warning
	Error
)

// String returns the lower-case name of the level.
func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case OK:
		return "ok"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a single status message.
type Notification struct {
	Source  string
	Level   Level
	Message string
	Time    time.Time
}

// Subscriber receives notifications and process lifecycle signals.
type Subscriber interface {
	Notify(n Notification)
	ProcessStart()
	ProcessEnd()
	Progress(percent int)
}

// Channel fans notifications out to its subscribers in subscription order.
// Delivery is synchronous.
type Channel struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
	now    func() time.Time
}

type subscription struct {
	id  int
	sub Subscriber
}

// NewChannel creates a channel without subscribers.
func NewChannel() *Channel {
	return &Channel{now: time.Now}
}

// Subscribe registers a subscriber and returns the function that removes it.
func (c *Channel) Subscribe(s Subscriber) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, sub: s})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, existing := range c.subs {
				if existing.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// snapshot copies the subscriber list so that a subscriber may unsubscribe
// while being notified.
func (c *Channel) snapshot() []Subscriber {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Subscriber, len(c.subs))
	for i, s := range c.subs {
		out[i] = s.sub
	}
	return out
}

// Publish delivers a notification. A zero Time is stamped with the current time.
func (c *Channel) Publish(n Notification) {
	if n.Time.IsZero() {
		n.Time = c.now()
	}
	for _, s := range c.snapshot() {
		s.Notify(n)
	}
}

func (c *Channel) Info(source, msg string)    { c.Publish(Notification{Source: source, Level: Info, Message: msg}) }
func (c *Channel) OK(source, msg string)      { c.Publish(Notification{Source: source, Level: OK, Message: msg}) }
func (c *Channel) Warning(source, msg string) { c.Publish(Notification{Source: source, Level: Warning, Message: msg}) }
func (c *Channel) Error(source, msg string)   { c.Publish(Notification{Source: source, Level: Error, Message: msg}) }

// ProcessStart signals that a long-running validation pass begins.
func (c *Channel) ProcessStart() {
	for _, s := range c.snapshot() {
		s.ProcessStart()
	}
}

// ProcessEnd signals that the running validation pass is over.
func (c *Channel) ProcessEnd() {
	for _, s := range c.snapshot() {
		s.ProcessEnd()
	}
}

// Progress reports the completion of the running pass, clamped to [0, 100].
func (c *Channel) Progress(percent int) {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	for _, s := range c.snapshot() {
		s.Progress(percent)
	}
}
