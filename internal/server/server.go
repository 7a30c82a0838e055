package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/docschat/docschat/internal/catalog"
	"github.com/docschat/docschat/internal/sidebar"
)

// requestTimeout bounds each HTTP request and each websocket message.
const requestTimeout = 60 * time.Second

// Answerer answers a single user query with a generated reply.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server exposes the query pipeline and corpus metadata over HTTP.
type Server struct {
	cfg        Config
	svc        Answerer
	catalog    *catalog.Store // optional
	sidebar    *sidebar.Sidebar
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. catalogStore may be nil; sb may be nil for an
// empty sidebar; logger may be nil for the default logger.
func New(cfg Config, svc Answerer, catalogStore *catalog.Store, sb *sidebar.Sidebar, logger *log.Logger) *Server {
	if sb == nil {
		sb = &sidebar.Sidebar{}
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:     cfg,
		svc:     svc,
		catalog: catalogStore,
		sidebar: sb,
		logger:  logger,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Post("/api/chat", s.handleChat)
		r.Get("/api/sidebar", s.handleSidebar)
		r.Get("/api/corpus", s.handleCorpus)
	})

	// The websocket session outlives any single request deadline; each
	// message gets its own timeout in the handler instead.
	r.Get("/api/chat/ws", s.handleChatWS)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Printf("docschat server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
