package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/codevault/codevault"
	apimiddleware "github.com/codevault/codevault/infrastructure/api/middleware"
	v1 "github.com/codevault/codevault/infrastructure/api/v1"
	"github.com/codevault/codevault/internal/log"
)

// APIServer provides an HTTP API backed by a codevault Client.
type APIServer struct {
	client *codevault.Client
	server *Server
	logger *log.Logger
}

// NewAPIServer creates a new APIServer wired to the given codevault Client.
func NewAPIServer(client *codevault.Client) *APIServer {
	return &APIServer{
		client: client,
		logger: client.Logger(),
	}
}

// MountRoutes wires up all v1 API routes on the given router.
func (a *APIServer) MountRoutes(router chi.Router) {
	snippetsRouter := v1.NewSnippetsRouter(a.client)
	tagsRouter := v1.NewTagsRouter(a.client)
	conversationsRouter := v1.NewConversationsRouter(a.client)
	assistantRouter := v1.NewAssistantRouter(a.client)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(120 * time.Second))
		r.Use(apimiddleware.Logging(a.logger))

		r.Mount("/snippets", snippetsRouter.Routes())
		r.Mount("/tags", tagsRouter.Routes())
		r.Mount("/conversations", conversationsRouter.Routes())
		r.Mount("/assistant", assistantRouter.Routes())
	})

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// ListenAndServe starts the HTTP server on the given address and blocks
// until it stops.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.MountRoutes(server.Router())
	a.server = &server
	return a.server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
