package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codevault/codevault"
	"github.com/codevault/codevault/domain/chat"
	"github.com/codevault/codevault/infrastructure/api/middleware"
	"github.com/codevault/codevault/infrastructure/api/v1/dto"
	"github.com/codevault/codevault/internal/log"
)

// ConversationsRouter handles conversation API endpoints.
type ConversationsRouter struct {
	client *codevault.Client
	logger *log.Logger
}

// NewConversationsRouter creates a new ConversationsRouter.
func NewConversationsRouter(client *codevault.Client) *ConversationsRouter {
	return &ConversationsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for conversation endpoints.
func (r *ConversationsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Start)
	router.Get("/{id}", r.Get)
	router.Delete("/{id}", r.Delete)
	router.Post("/{id}/messages", r.Send)

	return router
}

// List handles GET /api/v1/conversations.
func (r *ConversationsRouter) List(w http.ResponseWriter, req *http.Request) {
	conversations, err := r.client.Conversations.List(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.ConversationData, 0, len(conversations))
	for _, c := range conversations {
		data = append(data, conversationToDTO(c))
	}
	middleware.WriteJSON(w, http.StatusOK, dto.ConversationListResponse{Data: data})
}

// Start handles POST /api/v1/conversations: opens a conversation and
// answers its first message.
func (r *ConversationsRouter) Start(w http.ResponseWriter, req *http.Request) {
	var body dto.StartConversationRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "missing message", nil), r.logger)
		return
	}

	conversation, err := r.client.Conversations.Start(req.Context(), body.Message)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.ConversationResponse{Data: conversationToDTO(conversation)})
}

// Get handles GET /api/v1/conversations/{id}.
func (r *ConversationsRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	conversation, err := r.client.Conversations.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ConversationResponse{Data: conversationToDTO(conversation)})
}

// Delete handles DELETE /api/v1/conversations/{id}.
func (r *ConversationsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Conversations.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Send handles POST /api/v1/conversations/{id}/messages: stores the user
// message and returns the assistant's reply.
func (r *ConversationsRouter) Send(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.SendMessageRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "missing content", nil), r.logger)
		return
	}

	reply, err := r.client.Conversations.Send(req.Context(), id, body.Content)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.MessageResponse{Data: messageToDTO(reply)})
}

func conversationToDTO(c chat.Conversation) dto.ConversationData {
	messages := make([]dto.MessageData, 0, len(c.Messages()))
	for _, m := range c.Messages() {
		messages = append(messages, messageToDTO(m))
	}
	return dto.ConversationData{
		ID:        c.ID(),
		Title:     c.Title(),
		IsActive:  c.Active(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
		Messages:  messages,
	}
}

func messageToDTO(m chat.Message) dto.MessageData {
	return dto.MessageData{
		ID:             m.ID(),
		ConversationID: m.ConversationID(),
		Content:        m.Content(),
		IsFromUser:     m.FromUser(),
		Timestamp:      m.Timestamp(),
	}
}
