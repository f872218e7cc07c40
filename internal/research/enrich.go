package research

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tanmay/paper-scout/internal/ai"
	"github.com/tanmay/paper-scout/internal/models"
)

// Placeholders substituted for a failed per-paper call so batch shape and
// ordering invariants hold.
const (
	SummaryFailedPlaceholder  = "Summary generation failed"
	AnalysisFailedPlaceholder = "Analysis failed due to server error"
)

const summaryAbstractLimit = 1000

func summaryPrompt(p models.Paper) string {
	abstract := p.Abstract
	if len(abstract) > summaryAbstractLimit {
		abstract = abstract[:summaryAbstractLimit]
	}
	return fmt.Sprintf(`Summarize this research paper in 2-3 bullet points (maximum 50 words total):

Title: %s
Abstract: %s`, p.Title, abstract)
}

func analysisPrompt(p models.Paper) string {
	return fmt.Sprintf(`Analyze this research paper and provide:
1. Research Question: What question does the paper address?
2. Methodology: How was the research conducted?
3. Key Findings: What are the main results?
4. Limitations: What are the study's limitations?
5. Conclusion: What do the authors conclude?

Title: %s
Authors: %s
Abstract: %s`, p.Title, strings.Join(p.Authors, ", "), p.Abstract)
}

// SummarizeAll requests a short summary for every paper concurrently. The
// returned slice always has len(papers) entries in input order; a failed call
// fills its own slot with the placeholder and never affects siblings.
func (s *Service) SummarizeAll(ctx context.Context, papers []models.Paper) []string {
	summaries := make([]string, len(papers))

	var wg sync.WaitGroup
	for i, p := range papers {
		wg.Add(1)
		go func(i int, p models.Paper) {
			defer wg.Done()
			text, err := s.llm.Complete(ctx, summaryPrompt(p), ai.Options{Temperature: 0.2, MaxTokens: 100})
			if err != nil {
				s.log.Warn("paper summary failed", zap.String("title", p.Title), zap.Error(err))
				enrichmentFailures.Inc()
				summaries[i] = SummaryFailedPlaceholder
				return
			}
			summaries[i] = strings.TrimSpace(text)
		}(i, p)
	}
	wg.Wait()

	return summaries
}

// AnalyzeAll requests a structured multi-field analysis for every paper
// concurrently, with the same shape and ordering guarantees as SummarizeAll.
func (s *Service) AnalyzeAll(ctx context.Context, papers []models.Paper) []models.PaperAnalysis {
	analyses := make([]models.PaperAnalysis, len(papers))

	var wg sync.WaitGroup
	for i, p := range papers {
		wg.Add(1)
		go func(i int, p models.Paper) {
			defer wg.Done()
			analyses[i].Paper = p
			text, err := s.llm.Complete(ctx, analysisPrompt(p), ai.Options{Temperature: 0.3, MaxTokens: 500})
			if err != nil {
				s.log.Warn("paper analysis failed", zap.String("title", p.Title), zap.Error(err))
				enrichmentFailures.Inc()
				analyses[i].Analysis = AnalysisFailedPlaceholder
				return
			}
			analyses[i].Analysis = strings.TrimSpace(text)
		}(i, p)
	}
	wg.Wait()

	return analyses
}
