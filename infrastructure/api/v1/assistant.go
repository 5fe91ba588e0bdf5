package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codevault/codevault"
	"github.com/codevault/codevault/infrastructure/api/middleware"
	"github.com/codevault/codevault/infrastructure/api/v1/dto"
	"github.com/codevault/codevault/internal/log"
)

// AssistantRouter handles one-shot completion endpoints.
type AssistantRouter struct {
	client *codevault.Client
	logger *log.Logger
}

// NewAssistantRouter creates a new AssistantRouter.
func NewAssistantRouter(client *codevault.Client) *AssistantRouter {
	return &AssistantRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for assistant endpoints.
func (r *AssistantRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/completions", r.Complete)
	return router
}

// Complete handles POST /api/v1/assistant/completions: a stateless
// retrieval-augmented completion.
func (r *AssistantRouter) Complete(w http.ResponseWriter, req *http.Request) {
	var body dto.CompletionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	if strings.TrimSpace(body.Prompt) == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "missing prompt", nil), r.logger)
		return
	}

	completion := r.client.Assistant.Complete(req.Context(), body.Prompt)
	middleware.WriteJSON(w, http.StatusOK, dto.CompletionResponse{Completion: completion})
}
