// Package api serves a running game over HTTP.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token and drive the session.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/younisbosefi/younosomy/internal/actions"
	"github.com/younisbosefi/younosomy/internal/engine"
	"github.com/younisbosefi/younosomy/internal/persistence"
	"github.com/younisbosefi/younosomy/internal/state"
)

// Server exposes one session.
type Server struct {
	Session  *engine.Session
	DB       *persistence.DB // Optional; enables the leaderboard.
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	commandLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/state", s.handleState)
	mux.HandleFunc("GET /api/v1/events", s.handleEvents)
	mux.HandleFunc("GET /api/v1/decisions", s.handleDecisions)
	mux.HandleFunc("GET /api/v1/leaderboard", s.handleLeaderboard)

	mux.HandleFunc("POST /api/v1/command", s.adminOnly(RateLimitMiddleware(commandLimiter, s.handleCommand)))
	mux.HandleFunc("POST /api/v1/decision", s.adminOnly(s.handleDecision))
	mux.HandleFunc("POST /api/v1/uprising", s.adminOnly(s.handleUprising))
	mux.HandleFunc("POST /api/v1/war/ack", s.adminOnly(s.handleWarAck))
	mux.HandleFunc("POST /api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("POST /api/v1/playing", s.adminOnly(s.handlePlaying))

	return corsMiddleware(mux)
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of extra origins. Localhost dev
// servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "control endpoints disabled (no admin key set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Session.State()
	writeJSON(w, map[string]any{
		"game_id":          st.GameID,
		"country":          st.Country.Name,
		"day":              st.CurrentDay,
		"total_days":       st.TotalDays,
		"calendar":         engine.Calendar(st.CurrentDay),
		"phase":            engine.PhaseOf(&st).String(),
		"playing":          st.IsPlaying,
		"speed":            st.Speed(),
		"gdp":              st.GDP,
		"growth":           st.GDPGrowthRate,
		"treasury":         st.Treasury,
		"debt_ratio":       st.DebtToGDPRatio,
		"inflation":        st.InflationRate,
		"unemployment":     st.UnemploymentRate,
		"happiness":        st.Happiness,
		"reputation":       st.GlobalReputation,
		"score":            st.Score,
		"allies":           st.Allies,
		"enemies":          st.Enemies,
		"wars":             len(st.ActiveWars),
		"pending_decision": len(st.PendingDecisions),
		"war_result":       st.PendingWarResult,
		"outcome":          st.Outcome,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.State())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= state.MaxEvents {
			limit = n
		}
	}

	events := s.Session.State().Events
	if typ := r.URL.Query().Get("type"); typ != "" {
		var filtered []state.Event
		for _, e := range events {
			if string(e.Type) == typ {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	start := 0
	if len(events) > limit {
		start = len(events) - limit
	}
	writeJSON(w, events[start:])
}

func (s *Server) handleDecisions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.State().PendingDecisions)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "no scoreboard configured", http.StatusNotFound)
		return
	}
	top, err := s.DB.Leaderboard(10)
	if err != nil {
		slog.Error("leaderboard failed", "error", err)
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, top)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	cmd, err := commandFor(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := s.Session.Execute(cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("command", "action", req.Action, "target", req.Target, "success", res.Success)
	writeJSON(w, map[string]any{"success": res.Success, "message": res.Message})
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice int `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Session.ResolveDecision(req.Choice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": res.Success, "message": res.Message})
}

func (s *Server) handleUprising(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var answer func() (actions.Result, error)
	switch req.Response {
	case "fight":
		answer = s.Session.FightUprising
	case "crackdown":
		answer = s.Session.CrackDownUprising
	case "surrender":
		answer = s.Session.SurrenderUprising
	default:
		http.Error(w, "response must be fight, crackdown or surrender", http.StatusBadRequest)
		return
	}
	res, err := answer()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": res.Success, "message": res.Message})
}

func (s *Server) handleWarAck(w http.ResponseWriter, r *http.Request) {
	res, err := s.Session.AcknowledgeWarResult()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed int `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := s.Session.SetSpeed(req.Speed); err != nil {
		writeError(w, err)
		return
	}
	slog.Info("speed changed", "speed", req.Speed)
	writeJSON(w, map[string]int{"speed": req.Speed})
}

func (s *Server) handlePlaying(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Playing bool `json:"playing"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := s.Session.SetPlaying(req.Playing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"playing": req.Playing})
}

// writeError maps session errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrGameOver):
		code = http.StatusGone
	case errors.Is(err, engine.ErrInvalidChoice), errors.Is(err, engine.ErrInvalidSpeed):
		code = http.StatusBadRequest
	case errors.Is(err, engine.ErrNoPendingDecision), errors.Is(err, engine.ErrNoUprising), errors.Is(err, engine.ErrNoWarResult):
		code = http.StatusConflict
	}
	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
