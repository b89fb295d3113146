// Package http exposes the tracker over a JSON API, mirroring the
// dashboard's widgets: transactions, summary cards, category grid,
// weekly statistics, reminders, and settings.
package http

import (
	"net/http"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/charts"
	"fintrack/internal/services"
	"fintrack/internal/settings"
)

// Server holds handler dependencies and the route table.
type Server struct {
	tracker  *services.Tracker
	settings *settings.Service
	renderer *charts.Renderer

	// dashboards memoizes marshaled dashboard responses per filter;
	// cleared on every mutation.
	dashboards *cache.LRUCache[[]byte]

	now func() time.Time
}

// NewServer builds the configured *http.Server. cacheSize and cacheTTL
// bound the dashboard response cache.
func NewServer(addr string, tracker *services.Tracker, st *settings.Service, renderer *charts.Renderer, cacheSize int, cacheTTL time.Duration) *http.Server {
	s := &Server{
		tracker:    tracker,
		settings:   st,
		renderer:   renderer,
		dashboards: cache.NewLRUCache[[]byte](cacheSize, cacheTTL),
		now:        time.Now,
	}

	return &http.Server{
		Addr:           addr,
		Handler:        traceMiddleware(s.routes()),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)

	mux.HandleFunc("GET /api/reminders", s.handleListReminders)
	mux.HandleFunc("POST /api/reminders", s.handleCreateReminder)
	mux.HandleFunc("POST /api/reminders/{id}/toggle", s.handleToggleReminder)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handlePutSettings)

	mux.HandleFunc("GET /api/charts/weekly.png", s.handleWeeklyChart)
	mux.HandleFunc("GET /api/charts/balance.png", s.handleBalanceChart)

	return mux
}

// invalidate drops memoized dashboard responses after any mutation.
func (s *Server) invalidate() {
	s.dashboards.Clear()
}
