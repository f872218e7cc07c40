package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tanmay/paper-scout/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the single {"error": message} envelope every failure
// uses; success and failure shapes are disjoint.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// RecordStore defines the interface for saved search/report persistence.
type RecordStore interface {
	Insert(ctx context.Context, rec *models.Record) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.Record, error)
	GetByID(ctx context.Context, id string) (*models.Record, error)
	Delete(ctx context.Context, id string) error
}

// FileStore defines the interface for report markdown object storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}

// Handler holds the research HTTP handlers. Each handler is one terminal
// pass through the pipeline; no state survives the request except the
// persisted record.
type Handler struct {
	svc             *Service
	records         RecordStore
	files           FileStore
	searchMax       int
	reportMaxPapers int
	log             *zap.Logger
}

func NewHandler(svc *Service, records RecordStore, files FileStore, searchMax, reportMaxPapers int, log *zap.Logger) *Handler {
	return &Handler{
		svc:             svc,
		records:         records,
		files:           files,
		searchMax:       searchMax,
		reportMaxPapers: reportMaxPapers,
		log:             log,
	}
}

// searchResponse is the wire shape for POST /api/search-papers. Summaries
// are positionally aligned with papers.
type searchResponse struct {
	Papers              []models.Paper `json:"papers"`
	Summaries           []string       `json:"summaries"`
	ConsolidatedSummary string         `json:"consolidatedSummary"`
}

// SearchPapers runs search → parallel summaries → consolidated overview.
func (h *Handler) SearchPapers(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	papers, err := h.svc.SearchPapers(r.Context(), req.Query, h.searchMax)
	if err != nil {
		h.log.Error("paper search failed", zap.String("query", req.Query), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Zero results is a valid outcome; respond well-formed without touching
	// the completion service.
	if len(papers) == 0 {
		writeJSON(w, http.StatusOK, searchResponse{
			Papers:    []models.Paper{},
			Summaries: []string{},
		})
		return
	}

	summaries := h.svc.SummarizeAll(r.Context(), papers)

	consolidated, err := h.svc.ConsolidatedSummary(r.Context(), papers)
	if err != nil {
		h.log.Error("consolidated summary failed", zap.String("query", req.Query), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Papers:              papers,
		Summaries:           summaries,
		ConsolidatedSummary: consolidated,
	})
}

// reportResponse is the wire shape for POST /api/generate-report. The saved
// record echoes the same content as the report.
type reportResponse struct {
	Report      models.Report          `json:"report"`
	Papers      []models.PaperAnalysis `json:"papers"`
	SavedReport *models.Record         `json:"savedReport"`
}

// GenerateReport runs search → parallel analyses → report synthesis →
// persistence. Generation failures and persistence failures surface as
// separate 500s.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	papers, err := h.svc.SearchPapers(r.Context(), req.Query, h.reportMaxPapers)
	if err != nil {
		h.log.Error("paper search failed", zap.String("query", req.Query), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	analyses := h.svc.AnalyzeAll(r.Context(), papers)

	report, err := h.svc.GenerateReport(r.Context(), req.Query, analyses)
	if err != nil {
		h.log.Error("report generation failed", zap.String("query", req.Query), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Upload the markdown to the object store; losing the object is
	// non-fatal, the record still carries the full content.
	mdKey := markdownKey(userID, req.Query)
	if err := h.files.Upload(r.Context(), mdKey, []byte(report.Content), "text/markdown"); err != nil {
		h.log.Warn("markdown upload failed", zap.String("key", mdKey), zap.Error(err))
		mdKey = ""
	}

	rec := &models.Record{
		UserID:            userID,
		Type:              models.RecordTypeReport,
		Query:             req.Query,
		Content:           report.Content,
		SourcePapers:      report.SourcePapers,
		MarkdownObjectKey: mdKey,
	}
	recID, err := h.records.Insert(r.Context(), rec)
	if err != nil {
		h.log.Error("report save failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save report")
		return
	}
	saved, err := h.records.GetByID(r.Context(), recID)
	if err != nil {
		h.log.Error("saved report fetch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save report")
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Report:      report,
		Papers:      analyses,
		SavedReport: saved,
	})
}

// AnalyzePaper summarizes one pasted abstract in a single completion call.
func (h *Handler) AnalyzePaper(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Abstract == "" {
		writeError(w, http.StatusBadRequest, "Abstract is required")
		return
	}

	summary, err := h.svc.AnalyzeAbstract(r.Context(), req.Abstract)
	if err != nil {
		h.log.Error("abstract analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// SuggestPrompt returns a refined-query suggestion object.
func (h *Handler) SuggestPrompt(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.InitialQuery == "" {
		writeError(w, http.StatusBadRequest, "Initial query is required")
		return
	}

	suggestion, err := h.svc.SuggestPrompt(r.Context(), req.InitialQuery)
	if err != nil {
		h.log.Error("prompt suggestion failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, suggestion)
}

// SaveSearch persists a completed search for the current user.
func (h *Handler) SaveSearch(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	var req models.SaveSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Papers == nil {
		req.Papers = []models.Paper{}
	}

	rec := &models.Record{
		UserID:              userID,
		Type:                models.RecordTypeSearch,
		Query:               req.Query,
		ConsolidatedSummary: req.ConsolidatedSummary,
		Papers:              req.Papers,
	}
	recID, err := h.records.Insert(r.Context(), rec)
	if err != nil {
		h.log.Error("search save failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save search")
		return
	}
	saved, err := h.records.GetByID(r.Context(), recID)
	if err != nil {
		h.log.Error("saved search fetch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save search")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"savedSearch": saved,
		"message":     "Search saved successfully",
	})
}

// List returns all saved records for the current user, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	recs, err := h.records.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if recs == nil {
		recs = []models.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// Get returns a single saved record.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.records.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Delete removes a saved record and its markdown object.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.records.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if rec.MarkdownObjectKey != "" {
		h.files.Remove(r.Context(), rec.MarkdownObjectKey)
	}

	if err := h.records.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// DownloadMarkdown streams the stored report markdown.
func (h *Handler) DownloadMarkdown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.records.GetByID(r.Context(), id)
	if err != nil || rec.MarkdownObjectKey == "" {
		writeError(w, http.StatusNotFound, "markdown not available")
		return
	}

	data, _, err := h.files.Download(r.Context(), rec.MarkdownObjectKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "download failed")
		return
	}
	w.Header().Set("Content-Type", "text/markdown")
	w.Header().Set("Content-Disposition", "attachment; filename=report.md")
	w.Write(data)
}

// markdownKey builds the object key for a report's markdown file.
func markdownKey(userID, query string) string {
	slug := query
	if len(slug) > 20 {
		slug = slug[:20]
	}
	return fmt.Sprintf("%s/%s.md", userID, slug)
}
