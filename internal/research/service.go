package research

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tanmay/paper-scout/internal/ai"
	"github.com/tanmay/paper-scout/internal/models"
)

// Searcher fetches papers from the bibliographic search API.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.Paper, error)
}

// Completer sends one prompt to the language-model completion endpoint.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts ai.Options) (string, error)
}

// Service runs the pipeline stages: search, per-paper enrichment, and
// cross-paper synthesis. Handlers compose these into one request each.
type Service struct {
	search Searcher
	llm    Completer
	log    *zap.Logger
}

func NewService(search Searcher, llm Completer, log *zap.Logger) *Service {
	return &Service{search: search, llm: llm, log: log}
}

// SearchPapers fetches up to maxResults papers for a query. An empty result
// is valid; callers short-circuit before any completion call in that case.
func (s *Service) SearchPapers(ctx context.Context, query string, maxResults int) ([]models.Paper, error) {
	return s.search.Search(ctx, query, maxResults)
}

// AnalyzeAbstract summarizes one pasted abstract in a single completion call.
// Unlike batch enrichment there is no placeholder fallback here; the error
// reaches the caller.
func (s *Service) AnalyzeAbstract(ctx context.Context, abstract string) (string, error) {
	prompt := fmt.Sprintf("Summarize this paper abstract in at most 35 words:\n\n%s", abstract)
	text, err := s.llm.Complete(ctx, prompt, ai.Options{Temperature: 0.3, MaxTokens: 100})
	if err != nil {
		return "", fmt.Errorf("abstract analysis: %w", err)
	}
	return strings.TrimSpace(text), nil
}
