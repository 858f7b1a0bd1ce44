package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Upstream calls are capped at 5s, so a request never legitimately needs this long.
const requestTimeout = 15 * time.Second

type Server struct{ mux *chi.Mux }

func New(l zerolog.Logger) *Server { return NewWithTimeout(l, requestTimeout) }

// NewWithTimeout is New with an explicit per-request deadline.
func NewWithTimeout(l zerolog.Logger, timeout time.Duration) *Server {
	m := chi.NewRouter()

	// middlewares go before any routes are added. Metrics and Logger stay inside Timeout:
	// chi fills the route pattern on the handler goroutine, so reading it from outside
	// would race once the deadline fires. They derive the 503 from the request context.
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(timeout))
	m.Use(Metrics)
	m.Use(Logger(l))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
