// Package web serves scores, versus history, metrics and a live websocket
// spectator stream over HTTP.
package web

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/jump-quest/internal/games/jumpquest"
	"github.com/vovakirdan/jump-quest/internal/storage"
	"github.com/vovakirdan/jump-quest/internal/telemetry"
)

// ScoreSource is the read side of the score database.
type ScoreSource interface {
	TopScores(mode string, limit int) ([]storage.ScoreEntry, error)
	RecentVersusMatches(limit int) ([]storage.VersusMatch, error)
	VersusRecord() (p1, p2, draws int, err error)
	AllLevelStats() ([]storage.LevelStats, error)
}

// RouterConfig contains the router's dependencies.
type RouterConfig struct {
	Scores ScoreSource // nil serves empty lists
	Hub    *Hub        // nil disables the spectator stream

	// RateLimiter is optional; when nil one is built from RateLimitConfig,
	// or DefaultRateLimitConfig when that is nil too.
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	// CORSOrigins defaults to localhost on any port.
	CORSOrigins []string

	Logger *log.Logger
}

type handlers struct {
	scores ScoreSource
	hub    *Hub
	logger *log.Logger
}

// NewRouter builds the HTTP router. It starts no goroutines and opens no
// listeners.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	limiter := cfg.RateLimiter
	if limiter == nil {
		rlc := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlc = *cfg.RateLimitConfig
		}
		limiter = NewIPRateLimiter(rlc)
	}
	r.Use(limiter.Middleware)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &handlers{scores: cfg.Scores, hub: cfg.Hub, logger: logger}

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", telemetry.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/scores", h.handleScores)
		r.Get("/versus", h.handleVersus)
		r.Get("/levels", h.handleLevels)
		r.Get("/sessions", h.handleSessions)
	})

	if cfg.Hub != nil {
		r.Handle("/ws/spectate", cfg.Hub)
	}

	return r
}

// metricsMiddleware records latency and status per route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		telemetry.RecordRequest(r.Method, pattern, status, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// queryLimit reads ?limit=, clamped to [1, 100].
func queryLimit(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, 100)
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	spectators := 0
	if h.hub != nil {
		spectators = h.hub.Spectators()
	}
	writeJSON(w, map[string]any{"status": "ok", "spectators": spectators})
}

type scoreJSON struct {
	Player    string    `json:"player"`
	Mode      string    `json:"mode"`
	Level     int       `json:"level"`
	Score     int       `json:"score"`
	Seconds   float64   `json:"seconds"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *handlers) handleScores(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode != "" {
		m, err := jumpquest.ParseMode(mode)
		if err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode = string(m)
	}

	out := []scoreJSON{}
	if h.scores != nil {
		entries, err := h.scores.TopScores(mode, queryLimit(r, 10))
		if err != nil {
			h.logger.Error("query scores", "err", err)
			writeError(w, "cannot load scores", http.StatusInternalServerError)
			return
		}
		for _, e := range entries {
			out = append(out, scoreJSON{
				Player: e.Player, Mode: e.Mode, Level: e.Level, Score: e.Score,
				Seconds: e.Seconds, Completed: e.Completed, CreatedAt: e.CreatedAt,
			})
		}
	}
	writeJSON(w, out)
}

type matchJSON struct {
	P1Points  int       `json:"p1_points"`
	P2Points  int       `json:"p2_points"`
	P1Kills   int       `json:"p1_kills"`
	P2Kills   int       `json:"p2_kills"`
	Winner    string    `json:"winner"`
	Duration  float64   `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *handlers) handleVersus(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		P1Wins  int         `json:"p1_wins"`
		P2Wins  int         `json:"p2_wins"`
		Draws   int         `json:"draws"`
		Matches []matchJSON `json:"matches"`
	}{Matches: []matchJSON{}}

	if h.scores != nil {
		matches, err := h.scores.RecentVersusMatches(queryLimit(r, 20))
		if err != nil {
			h.logger.Error("query versus matches", "err", err)
			writeError(w, "cannot load matches", http.StatusInternalServerError)
			return
		}
		resp.P1Wins, resp.P2Wins, resp.Draws, err = h.scores.VersusRecord()
		if err != nil {
			h.logger.Error("query versus record", "err", err)
			writeError(w, "cannot load matches", http.StatusInternalServerError)
			return
		}
		for _, m := range matches {
			winner := "draw"
			if m.Winner != 0 {
				winner = m.Winner.String()
			}
			resp.Matches = append(resp.Matches, matchJSON{
				P1Points: m.Result.P1Points, P2Points: m.Result.P2Points,
				P1Kills: m.Result.P1Kills, P2Kills: m.Result.P2Kills,
				Winner: winner, Duration: m.Result.Duration, CreatedAt: m.CreatedAt,
			})
		}
	}
	writeJSON(w, resp)
}

func (h *handlers) handleLevels(w http.ResponseWriter, r *http.Request) {
	type levelJSON struct {
		Level       int     `json:"level"`
		Completions int     `json:"completions"`
		BestScore   int     `json:"best_score"`
		BestSeconds float64 `json:"best_seconds"`
		AvgSeconds  float64 `json:"avg_seconds"`
	}
	out := []levelJSON{}
	if h.scores != nil {
		stats, err := h.scores.AllLevelStats()
		if err != nil {
			h.logger.Error("query level stats", "err", err)
			writeError(w, "cannot load level stats", http.StatusInternalServerError)
			return
		}
		for _, s := range stats {
			out = append(out, levelJSON{s.Level, s.Completions, s.BestScore, s.BestSeconds, s.AvgSeconds})
		}
	}
	writeJSON(w, out)
}

func (h *handlers) handleSessions(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	if h.hub != nil {
		ids = h.hub.Sessions()
		sort.Strings(ids)
	}
	writeJSON(w, ids)
}
