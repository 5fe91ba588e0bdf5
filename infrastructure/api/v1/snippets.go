// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/codevault/codevault"
	"github.com/codevault/codevault/domain/analysis"
	"github.com/codevault/codevault/domain/snippet"
	"github.com/codevault/codevault/infrastructure/api/middleware"
	"github.com/codevault/codevault/infrastructure/api/v1/dto"
	"github.com/codevault/codevault/internal/log"
)

// SnippetsRouter handles snippet API endpoints.
type SnippetsRouter struct {
	client *codevault.Client
	logger *log.Logger
}

// NewSnippetsRouter creates a new SnippetsRouter.
func NewSnippetsRouter(client *codevault.Client) *SnippetsRouter {
	return &SnippetsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for snippet endpoints.
func (r *SnippetsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/search", r.Search)
	router.Post("/search", r.SearchSemantic)
	router.Get("/compare", r.Compare)
	router.Get("/{id}", r.Get)
	router.Put("/{id}", r.Update)
	router.Delete("/{id}", r.Delete)
	router.Post("/{id}/rating", r.Rate)
	router.Post("/{id}/usage", r.MarkUsed)
	router.Get("/{id}/metrics", r.ListMetrics)
	router.Post("/{id}/metrics", r.AddMetric)
	router.Get("/{id}/complexity", r.Complexity)
	router.Get("/{id}/security", r.SecurityScan)
	router.Post("/{id}/security/rescan", r.Rescan)

	return router
}

// List handles GET /api/v1/snippets. Optional tag or language query
// parameters narrow the result.
func (r *SnippetsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var snippets []snippet.Snippet
	var err error
	switch {
	case req.URL.Query().Get("tag") != "":
		snippets, err = r.client.Snippets.ByTag(ctx, req.URL.Query().Get("tag"))
	case req.URL.Query().Get("language") != "":
		snippets, err = r.client.Snippets.ByLanguage(ctx, req.URL.Query().Get("language"))
	default:
		snippets, err = r.client.Snippets.List(ctx)
	}
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SnippetListResponse{Data: snippetsToDTO(snippets)})
}

// Create handles POST /api/v1/snippets.
func (r *SnippetsRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body dto.SnippetRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}

	created, err := r.client.Snippets.Create(req.Context(), body.Title, body.Content, body.Language, body.Description, body.Tags)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.SnippetResponse{Data: snippetToDTO(created)})
}

// Get handles GET /api/v1/snippets/{id}. Retrieval counts as a view.
func (r *SnippetsRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	sn, err := r.client.Snippets.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SnippetResponse{Data: snippetToDTO(sn)})
}

// Update handles PUT /api/v1/snippets/{id}.
func (r *SnippetsRouter) Update(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.SnippetRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}

	updated, err := r.client.Snippets.Update(req.Context(), id, body.Title, body.Content, body.Language, body.Description, body.Tags)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SnippetResponse{Data: snippetToDTO(updated)})
}

// Delete handles DELETE /api/v1/snippets/{id}.
func (r *SnippetsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Snippets.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/v1/snippets/search: lexical keyword search with
// an optional language filter.
func (r *SnippetsRouter) Search(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query().Get("q")
	if query == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "missing query parameter q", nil), r.logger)
		return
	}
	language := req.URL.Query().Get("language")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	snippets, err := r.client.Snippets.SearchLexical(req.Context(), query, language, limit)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SnippetListResponse{Data: snippetsToDTO(snippets)})
}

// SearchSemantic handles POST /api/v1/snippets/search: embedding
// similarity search with lexical fallback.
func (r *SnippetsRouter) SearchSemantic(w http.ResponseWriter, req *http.Request) {
	var body dto.SearchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	if body.Query == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "missing query", nil), r.logger)
		return
	}

	snippets, err := r.client.Snippets.SearchSemantic(req.Context(), body.Query, body.Language, body.Limit)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SnippetListResponse{Data: snippetsToDTO(snippets)})
}

// Rate handles POST /api/v1/snippets/{id}/rating.
func (r *SnippetsRouter) Rate(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.RatingRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}

	rated, err := r.client.Snippets.Rate(req.Context(), id, body.Value)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SnippetResponse{Data: snippetToDTO(rated)})
}

// MarkUsed handles POST /api/v1/snippets/{id}/usage: records that the
// snippet was copied or pasted into a project.
func (r *SnippetsRouter) MarkUsed(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Snippets.MarkUsed(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMetrics handles GET /api/v1/snippets/{id}/metrics.
func (r *SnippetsRouter) ListMetrics(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	metrics, err := r.client.Snippets.Metrics(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.MetricData, 0, len(metrics))
	for _, m := range metrics {
		data = append(data, metricToDTO(m))
	}
	middleware.WriteJSON(w, http.StatusOK, dto.MetricListResponse{Data: data})
}

// AddMetric handles POST /api/v1/snippets/{id}/metrics.
func (r *SnippetsRouter) AddMetric(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.MetricRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}

	metric, err := r.client.Snippets.AddMetric(req.Context(), id, body.Name, body.Value, body.NumericValue, body.Unit, body.Environment, body.Notes)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, metricToDTO(metric))
}

// Complexity handles GET /api/v1/snippets/{id}/complexity.
func (r *SnippetsRouter) Complexity(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	report, err := r.client.Analysis.Complexity(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ComplexityResponse{Data: dto.ComplexityData{
		Cyclomatic:    report.Cyclomatic,
		Level:         analysis.ComplexityLevel(report.Cyclomatic),
		NestingDepth:  report.NestingDepth,
		FunctionCount: report.FunctionCount,
		LineCount:     report.LineCount,
	}})
}

// SecurityScan handles GET /api/v1/snippets/{id}/security: the latest scan,
// running one first when the snippet has never been scanned.
func (r *SnippetsRouter) SecurityScan(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	scan, err := r.client.Analysis.LatestScan(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ScanResponse{Data: scanToDTO(scan)})
}

// Rescan handles POST /api/v1/snippets/{id}/security/rescan: always runs a
// fresh scan.
func (r *SnippetsRouter) Rescan(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	scan, err := r.client.Analysis.Scan(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.ScanResponse{Data: scanToDTO(scan)})
}

// Compare handles GET /api/v1/snippets/compare?first=&second=.
func (r *SnippetsRouter) Compare(w http.ResponseWriter, req *http.Request) {
	first, err := strconv.ParseInt(req.URL.Query().Get("first"), 10, 64)
	if err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid first snippet id", err), r.logger)
		return
	}
	second, err := strconv.ParseInt(req.URL.Query().Get("second"), 10, 64)
	if err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid second snippet id", err), r.logger)
		return
	}

	report, err := r.client.Analysis.Compare(req.Context(), first, second)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CompareResponse{Report: report})
}

func parseID(req *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		return 0, middleware.NewAPIError(http.StatusBadRequest, "invalid id", err)
	}
	return id, nil
}

func snippetToDTO(s snippet.Snippet) dto.SnippetData {
	return dto.SnippetData{
		ID:          s.ID(),
		Title:       s.Title(),
		Content:     s.Content(),
		Language:    s.Language(),
		Description: s.Description(),
		Tags:        s.Tags(),
		ViewCount:   s.ViewCount(),
		UsageCount:  s.UsageCount(),
		Rating:      s.Rating(),
		RatingCount: s.RatingCount(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func snippetsToDTO(snippets []snippet.Snippet) []dto.SnippetData {
	data := make([]dto.SnippetData, 0, len(snippets))
	for _, s := range snippets {
		data = append(data, snippetToDTO(s))
	}
	return data
}

func metricToDTO(m snippet.Metric) dto.MetricData {
	return dto.MetricData{
		ID:           m.ID(),
		SnippetID:    m.SnippetID(),
		Name:         m.Name(),
		Value:        m.Value(),
		NumericValue: m.NumericValue(),
		Unit:         m.Unit(),
		Environment:  m.Environment(),
		Notes:        m.Notes(),
		CreatedAt:    m.CreatedAt(),
	}
}

func scanToDTO(s analysis.Scan) dto.ScanData {
	findings := make([]dto.FindingData, 0, len(s.Findings()))
	for _, f := range s.Findings() {
		findings = append(findings, dto.FindingData{
			ID:             f.ID,
			Title:          f.Title,
			Description:    f.Description,
			Severity:       string(f.Severity),
			LineNumber:     f.LineNumber,
			Excerpt:        f.Excerpt,
			Recommendation: f.Recommendation,
			Reference:      f.Reference,
		})
	}
	return dto.ScanData{
		ID:            s.ID(),
		SnippetID:     s.SnippetID(),
		ScanDate:      s.ScanDate(),
		Scanner:       s.Scanner(),
		Score:         s.Score(),
		CriticalCount: s.CriticalCount(),
		HighCount:     s.HighCount(),
		MediumCount:   s.MediumCount(),
		LowCount:      s.LowCount(),
		Findings:      findings,
	}
}
