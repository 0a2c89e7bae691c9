// Package intake is the collector bridging browser interaction events to
// observation sessions.
//
// The page script opens a session, streams pointer and keyboard events over
// a websocket, and finally asks for the analysis report to attach to its
// registration request. The collector validates every event against a JSON
// schema before recording it, and optionally archives scored payloads for
// audit.
package intake

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"botsense/internal/analysis"
	"botsense/internal/config"
	"botsense/internal/store"
	"botsense/internal/tracker"
)

// Archive is the submission sink the server writes scored payloads to.
// Satisfied by *store.Store; nil disables archiving.
type Archive interface {
	SaveSubmission(p tracker.Payload, createdAt time.Time) (int64, error)
}

// Server is the intake collector.
type Server struct {
	log      *slog.Logger
	registry *registry
	archive  Archive
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	scoring  analysis.Config
	capacity int
	maxBytes int64
}

// NewServer creates a collector from the service configuration.
func NewServer(cfg *config.Config, archive Archive, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		log:      log,
		registry: newRegistry(time.Duration(cfg.Intake.SessionTTLSec) * time.Second),
		archive:  archive,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The page script connects from the product origin; origin
			// policy is enforced by the fronting proxy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		scoring:  cfg.Scoring,
		capacity: cfg.Capacity,
		maxBytes: cfg.Intake.MaxEventBytes,
	}
}

// UpdateScoring swaps the scoring tuning for sessions created from now on.
// Live sessions keep the tuning they started with. Called by the config
// watcher on hot reload.
func (s *Server) UpdateScoring(cfg analysis.Config, capacity int) {
	s.mu.Lock()
	s.scoring = cfg
	s.capacity = capacity
	s.mu.Unlock()
	s.log.Info("scoring config updated",
		"threshold", cfg.SuspicionThreshold, "capacity", capacity)
}

// Close shuts down the session registry.
func (s *Server) Close() {
	s.registry.close()
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/sessions", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/v1/sessions/{id}/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/sessions/{id}/stop", s.handleStop).Methods(http.MethodPost)
	r.HandleFunc("/v1/sessions/{id}/report", s.handleReport).Methods(http.MethodPost)
	r.HandleFunc("/v1/sessions/{id}", s.handleDelete).Methods(http.MethodDelete)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.registry.len(),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	scoring, capacity := s.scoring, s.capacity
	s.mu.RUnlock()

	t := s.registry.create(scoring, capacity)
	s.log.Info("session started", "session_id", t.ID())
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": t.ID()})
}

// handleEvents upgrades to a websocket and records each validated event.
// The stream closes when the client disconnects or the session stops.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	t, ok := s.registry.get(id)
	if !ok {
		httpError(w, http.StatusNotFound, "unknown session")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "session_id", id, "error", err)
		return
	}
	defer conn.Close()

	if s.maxBytes > 0 {
		conn.SetReadLimit(s.maxBytes)
	}

	for {
		// Stopped sessions drop events anyway; detach the feed.
		if !t.Active() {
			return
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("event stream closed", "session_id", id, "error", err)
			}
			return
		}

		sample, err := decodeEvent(raw)
		if err != nil {
			s.log.Warn("rejected event", "session_id", id, "error", err)
			continue
		}
		t.Record(sample)
	}
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	t, ok := s.registry.get(id)
	if !ok {
		httpError(w, http.StatusNotFound, "unknown session")
		return
	}
	t.Stop()
	writeJSON(w, http.StatusOK, map[string]string{"session_id": id, "state": "stopped"})
}

// reportRequest carries the client dimensions needed at scoring time.
type reportRequest struct {
	UserAgent      string  `json:"user_agent"`
	ScreenWidth    float64 `json:"screen_width"`
	ScreenHeight   float64 `json:"screen_height"`
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
}

// handleReport scores the session's current window and returns the full
// submission payload. The session is left as-is: callers may request a
// mid-flow report and keep recording.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	t, ok := s.registry.get(id)
	if !ok {
		httpError(w, http.StatusNotFound, "unknown session")
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "malformed report request")
		return
	}

	payload := t.BuildPayload(tracker.ClientInfo{
		UserAgent:      req.UserAgent,
		ScreenWidth:    req.ScreenWidth,
		ScreenHeight:   req.ScreenHeight,
		ViewportWidth:  req.ViewportWidth,
		ViewportHeight: req.ViewportHeight,
	})

	if s.archive != nil {
		if _, err := s.archive.SaveSubmission(payload, time.Now()); err != nil {
			// Archiving is best-effort; the verdict still goes back.
			s.log.Error("archive submission failed", "session_id", id, "error", err)
		}
	}

	s.log.Info("session scored",
		"session_id", id,
		"score", payload.Report.Score,
		"suspicious", payload.Report.Suspicious,
		"reasons", len(payload.Report.Reasons))

	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.registry.remove(id)
	w.WriteHeader(http.StatusNoContent)
}

// ListenAndServe runs the collector until the server errors out.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info("intake collector listening", "addr", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Sink adapts a *store.Store into the Archive interface, keeping the nil
// check in one place.
func Sink(st *store.Store) Archive {
	if st == nil {
		return nil
	}
	return st
}
