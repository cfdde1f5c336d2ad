// Package http serves the JSON API: derived month views (summary, charts,
// budgets, balances), ledger CRUD and the operational endpoints. Derived views
// are cached per period and the whole cache is invalidated on every mutation.
package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"financas/internal/cache"
	"financas/internal/config"
	"financas/internal/ledger"
	"financas/internal/log"
	"financas/internal/middleware/ratelimit"
	"financas/internal/middleware/security"
	"financas/internal/middleware/trace"
	"financas/internal/report"
)

type Server struct {
	http.Server

	store  ledger.Store
	logger *log.Logger

	traceMiddleware *trace.Middleware
	rateLimiter     *ratelimit.Limiter

	// Derived views are cheap to recompute but hit the store for a full
	// snapshot, so both caches front them with a TTL.
	reportCache  *cache.LRUCache[report.MonthReport]
	balanceCache *cache.LRUCache[report.AccountBalances]
	cacheManager *cache.Manager

	appMetrics appMetrics

	shutdownOnce sync.Once
}

type appMetrics struct {
	totalMutations int64
	cacheHits      int64
	cacheMisses    int64
	uptime         time.Time
}

// NewServer configures routes, middleware and caches, returning a
// ready-to-run server listening on the configured port.
func NewServer(cfg *config.Config, store ledger.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	s := &Server{
		store:           store,
		logger:          logger,
		traceMiddleware: trace.NewMiddleware(extractClientIP),
		reportCache:     cache.NewLRUCache[report.MonthReport](cfg.CacheEntries, cfg.CacheTTL),
		balanceCache:    cache.NewLRUCache[report.AccountBalances](cfg.CacheEntries, cfg.CacheTTL),
		cacheManager:    cache.NewManager(),
	}
	s.appMetrics.uptime = time.Now()
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.Register(s.balanceCache)

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimitPerMinute,
	})

	mux := http.NewServeMux()
	s.routes(mux)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	handler := headers.Middleware(s.withWriteLimit(s.traceMiddleware.Middleware(log.Middleware(logger)(mux))))

	s.Server = http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.cacheManager.StartCleanup(10 * time.Minute)

	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	// Derived views
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/charts", s.handleCharts)
	mux.HandleFunc("GET /api/budgets/summary", s.handleBudgetSummary)
	mux.HandleFunc("GET /api/accounts/balances", s.handleAccountBalances)
	mux.HandleFunc("GET /api/reports/history", s.handleReportHistory)

	// Ledger CRUD
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("GET /api/contributions", s.handleListContributions)
	mux.HandleFunc("POST /api/contributions", s.handleCreateContribution)
	mux.HandleFunc("DELETE /api/contributions/{id}", s.handleDeleteContribution)

	// Operational endpoints
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)
}

// withWriteLimit applies rate limiting to mutating requests only; reads are
// served from cache and stay unthrottled.
func (s *Server) withWriteLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodDelete {
			clientIP := extractClientIP(r)
			if !s.rateLimiter.Allow(clientIP) {
				s.logger.WarnContext(r.Context(), "Rate limit exceeded",
					log.FieldClientIP, clientIP,
					log.FieldMethod, r.Method,
					log.FieldPath, r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func periodKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// invalidateViews drops every cached derived view. Any mutation can move a
// historical month, so per-key invalidation would be guesswork.
func (s *Server) invalidateViews() {
	s.reportCache.Clear()
	s.balanceCache.Clear()
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// extractClientIP resolves the client address, honoring proxy headers.
func extractClientIP(r *http.Request) string {
	clientIP := r.Header.Get("X-Forwarded-For")
	if clientIP == "" {
		clientIP = r.Header.Get("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = r.RemoteAddr
	}
	return clientIP
}
