package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/localexecutor"
	"github.com/specialistvlad/nodegraph/internal/notify"
	"github.com/specialistvlad/nodegraph/internal/paramform"
	"github.com/specialistvlad/nodegraph/internal/validation"
)

// Session is one editable graph with its collaborators.
type Session struct {
	ID      string
	Channel *notify.Channel
	Graph   *graph.Manager
	Form    *paramform.Form
	Engine  *validation.Engine

	closers []func()
}

// NewSession creates an empty graph bound to the app's catalog and handlers.
// Notifications are mirrored to the context logger.
func (a *App) NewSession(ctx context.Context) *Session {
	id := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("session", id)

	ch := notify.NewChannel()
	m := graph.NewManager(a.catalog, ch)
	form := paramform.New()
	s := &Session{
		ID:      id,
		Channel: ch,
		Graph:   m,
		Form:    form,
		Engine:  validation.NewEngine(m, form, localexecutor.New(a.handlers)),
	}
	s.closers = append(s.closers, m.AddListener(form))
	s.Subscribe(notify.NewLogSubscriber(logger))
	logger.Debug("Session created.")
	return s
}

// Subscribe attaches sub to the session channel until Close.
func (s *Session) Subscribe(sub notify.Subscriber) {
	s.closers = append(s.closers, s.Channel.Subscribe(sub))
}

// Close detaches every subscriber and tears down the graph.
func (s *Session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
	s.Graph.Close()
}
