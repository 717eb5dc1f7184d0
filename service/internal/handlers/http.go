package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pangkah/service/internal/auth"
	"github.com/jason-s-yu/pangkah/service/internal/database"
	"github.com/jason-s-yu/pangkah/service/internal/game"
	"github.com/sirupsen/logrus"
)

// Pinger is a dependency checked by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TotalsReader serves the per-player totals endpoint.
type TotalsReader interface {
	Totals(ctx context.Context, player uuid.UUID) (database.PlayerTotals, error)
}

// Server wires the HTTP routes to the game manager.
type Server struct {
	mgr     *game.Manager
	hub     *Hub
	issuer  *auth.Issuer
	totals  TotalsReader
	checks  map[string]Pinger
	origins []string
	log     *logrus.Entry
}

// Config holds the collaborators of a Server. Totals and Checks are optional.
type Config struct {
	Manager *game.Manager
	Hub     *Hub
	Issuer  *auth.Issuer
	Totals  TotalsReader
	Checks  map[string]Pinger
	Origins []string
	Log     *logrus.Entry
}

// NewServer returns a Server for cfg.
func NewServer(cfg Config) *Server {
	log := cfg.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{
		mgr:     cfg.Manager,
		hub:     cfg.Hub,
		issuer:  cfg.Issuer,
		totals:  cfg.Totals,
		checks:  cfg.Checks,
		origins: cfg.Origins,
		log:     log,
	}
}

// Routes returns the HTTP handler for every endpoint.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/guest", s.handleGuest)
	mux.HandleFunc("GET /rooms", s.handleRooms)
	mux.HandleFunc("GET /players/{id}/totals", s.handleTotals)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.ServeWS)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Debug("write response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleGuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	token, ident, err := s.issuer.IssueGuest(req.Name)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"id":    ident.ID,
		"name":  ident.Name,
	})
}

func (s *Server) handleRooms(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.mgr.Lobby())
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	if s.totals == nil {
		s.writeError(w, http.StatusServiceUnavailable, "results store not configured")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	t, err := s.totals.Totals(r.Context(), id)
	if err != nil {
		s.log.WithError(err).WithField("player", id).Warn("totals query failed")
		s.writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(s.checks))
	for name, p := range s.checks {
		if err := p.Ping(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	s.writeJSON(w, status, map[string]interface{}{
		"rooms":  s.mgr.Repository().Len(),
		"online": s.hub.Online(),
		"deps":   deps,
	})
}
