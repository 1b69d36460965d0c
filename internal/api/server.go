// Package api provides a read-only HTTP view of the running simulation.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/talgya/creditcycle/internal/agents"
	"github.com/talgya/creditcycle/internal/engine"
)

// Server serves simulation state over HTTP. All endpoints are GET.
type Server struct {
	Sim    *engine.Simulation
	Runner *engine.Runner
	Port   int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/firms", s.handleFirms)
	mux.HandleFunc("/api/v1/bank", s.handleBank)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	addr := fmt.Sprintf(":%d", s.Port)
	go func() {
		slog.Info("api listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("api server stopped", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"step":     s.Sim.CurrentStep(),
		"running":  s.Runner != nil && s.Runner.Running,
		"stats":    s.Sim.Stats,
		"defaults": s.Sim.Defaults,
	})
}

func (s *Server) handleFirms(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")

	var firms []*agents.Firm
	switch kind {
	case "capital":
		firms = s.Sim.CapitalFirms
	case "consumption":
		firms = s.Sim.ConsumptionFirms
	default:
		firms = append(firms, s.Sim.ConsumptionFirms...)
		firms = append(firms, s.Sim.CapitalFirms...)
	}

	writeJSON(w, firms)
}

func (s *Server) handleBank(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Bank)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := s.Sim.Events
	if len(events) > 100 {
		events = events[len(events)-100:]
	}
	writeJSON(w, events)
}
