package nodeid

import (
	"errors"
	"fmt"
)

// ErrTaken is returned when an identifier is already reserved.
var ErrTaken = errors.New("identifier already in use")

// Allocator hands out identifiers that are unique within one editing session.
type Allocator struct {
	used map[string]struct{}
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{used: make(map[string]struct{})}
}

// Next reserves and returns the first free identifier for the given label:
// the bare label, then label(2), label(3) and so on.
func (a *Allocator) Next(label string) string {
	base := Sanitize(label)
	id := New(base)
	for ordinal := 2; ; ordinal++ {
		if _, taken := a.used[id.String()]; !taken {
			break
		}
		id = NewWithOrdinal(base, ordinal)
	}
	a.used[id.String()] = struct{}{}
	return id.String()
}

// Reserve claims a specific identifier, typically one restored from a saved document.
func (a *Allocator) Reserve(raw string) error {
	id, err := Parse(raw)
	if err != nil {
		return err
	}
	key := id.String()
	if _, taken := a.used[key]; taken {
		return fmt.Errorf("%w: %s", ErrTaken, key)
	}
	a.used[key] = struct{}{}
	return nil
}

// Release frees an identifier so that it can be handed out again.
func (a *Allocator) Release(raw string) {
	delete(a.used, raw)
}
