package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/notify"
)

var statusNames = []string{
	graph.Unchecked.String(),
	graph.Validated.String(),
	graph.Warning.String(),
	graph.Error.String(),
}

// statusServer serves health, metrics, and the last published node
// snapshot. It also subscribes to session notifications to track progress.
type statusServer struct {
	logger     *slog.Logger
	port       int
	httpServer *http.Server
	router     chi.Router

	nodes atomic.Pointer[[]NodeStatus]

	registry      *prometheus.Registry
	nodeStatus    *prometheus.GaugeVec
	notifications *prometheus.CounterVec
	progress      prometheus.Gauge
	running       prometheus.Gauge
}

var _ notify.Subscriber = (*statusServer)(nil)

func newStatusServer(logger *slog.Logger, port int) *statusServer {
	s := &statusServer{
		logger:   logger,
		port:     port,
		registry: prometheus.NewRegistry(),
		nodeStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nodegraph_node_status",
			Help: "1 for the current validation status of each node.",
		}, []string{"node", "kind", "status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nodegraph_notifications_total",
			Help: "Notifications published, by level.",
		}, []string{"level"}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nodegraph_validation_progress_percent",
			Help: "Progress of the running validation pass.",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nodegraph_validation_running",
			Help: "1 while a validation pass runs.",
		}),
	}
	s.registry.MustRegister(s.nodeStatus, s.notifications, s.progress, s.running)

	empty := []NodeStatus{}
	s.nodes.Store(&empty)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", s.healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Route("/nodes", func(r chi.Router) {
		r.Get("/", s.listNodes)
		r.Get("/{id}", s.getNode)
	})
	s.router = r
	return s
}

// Publish replaces the served snapshot and the node status gauges.
func (s *statusServer) Publish(nodes []NodeStatus) {
	cp := append([]NodeStatus(nil), nodes...)
	s.nodes.Store(&cp)

	s.nodeStatus.Reset()
	for _, n := range cp {
		for _, name := range statusNames {
			v := 0.0
			if name == n.Status {
				v = 1
			}
			s.nodeStatus.WithLabelValues(n.ID, n.Kind, name).Set(v)
		}
	}
}

func (s *statusServer) Notify(n notify.Notification) {
	s.notifications.WithLabelValues(n.Level.String()).Inc()
}

func (s *statusServer) ProcessStart() {
	s.running.Set(1)
	s.progress.Set(0)
}

func (s *statusServer) ProcessEnd() { s.running.Set(0) }

func (s *statusServer) Progress(percent int) { s.progress.Set(float64(percent)) }

func (s *statusServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *statusServer) listNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, *s.nodes.Load())
}

func (s *statusServer) getNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, n := range *s.nodes.Load() {
		if n.ID == id {
			writeJSON(w, http.StatusOK, n)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("node %q not found", id)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Start runs the HTTP server in the background.
func (s *statusServer) Start() {
	addr := fmt.Sprintf(":%d", s.port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.logger.Info("🩺 Status server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Status server failed unexpectedly", "error", err)
		}
	}()
}

// Close shuts the server down gracefully.
func (s *statusServer) Close(ctx context.Context) error {
	if s.httpServer == nil {
		s.logger.Debug("Status server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("🩺 Shutting down status server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Status server shutdown failed", "error", err)
		return err
	}
	s.httpServer = nil
	return nil
}
