package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codevault/codevault"
	"github.com/codevault/codevault/infrastructure/api/middleware"
	"github.com/codevault/codevault/infrastructure/api/v1/dto"
	"github.com/codevault/codevault/internal/log"
)

// TagsRouter handles tag API endpoints.
type TagsRouter struct {
	client *codevault.Client
	logger *log.Logger
}

// NewTagsRouter creates a new TagsRouter.
func NewTagsRouter(client *codevault.Client) *TagsRouter {
	return &TagsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for tag endpoints.
func (r *TagsRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.List)
	return router
}

// List handles GET /api/v1/tags, ordered by usage.
func (r *TagsRouter) List(w http.ResponseWriter, req *http.Request) {
	tags, err := r.client.Snippets.Tags(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.TagData, 0, len(tags))
	for _, t := range tags {
		data = append(data, dto.TagData{
			ID:         t.ID(),
			Name:       t.Name(),
			UsageCount: t.UsageCount(),
		})
	}
	middleware.WriteJSON(w, http.StatusOK, dto.TagListResponse{Data: data})
}
