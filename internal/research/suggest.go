package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tanmay/paper-scout/internal/ai"
	"github.com/tanmay/paper-scout/internal/models"
)

func refinementPrompt(initialQuery string) string {
	return fmt.Sprintf(`You are a research query refinement assistant. Given the initial
research query below, respond with ONLY a JSON object (no prose, no code
fences) of this exact shape:

{
  "refinedQuery": "an improved, more specific version of the query",
  "suggestedElements": {
    "specificity": ["ways to narrow the query"],
    "researchType": ["relevant research types, e.g. empirical, review"],
    "practicalApplication": ["practical angles to explore"]
  },
  "questionVariations": [
    {"question": "a rephrased research question", "explanation": "why this framing helps"}
  ],
  "relatedConcepts": ["adjacent concepts worth including"]
}

Initial query: "%s"`, initialQuery)
}

func tagsPrompt(initialQuery string) string {
	return fmt.Sprintf(`List 5-8 short research tags for the query below as a single
comma-separated line, nothing else.

Query: "%s"`, initialQuery)
}

// SuggestPrompt asks the model for a JSON-shaped query refinement, then makes
// one auxiliary call for research tags. A malformed refinement payload fails
// the whole operation; a failed tag call only degrades to an empty tag list.
func (s *Service) SuggestPrompt(ctx context.Context, initialQuery string) (models.PromptSuggestion, error) {
	raw, err := s.llm.Complete(ctx, refinementPrompt(initialQuery), ai.Options{Temperature: 0.4, MaxTokens: 600})
	if err != nil {
		return models.PromptSuggestion{}, fmt.Errorf("prompt suggestion: %w", err)
	}

	var suggestion models.PromptSuggestion
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &suggestion); err != nil {
		return models.PromptSuggestion{}, fmt.Errorf("prompt suggestion: parse: %w", err)
	}
	normalizeSuggestion(&suggestion)

	tags, err := s.llm.Complete(ctx, tagsPrompt(initialQuery), ai.Options{Temperature: 0.3, MaxTokens: 100})
	if err != nil {
		s.log.Warn("tag generation failed", zap.Error(err))
	} else {
		suggestion.ResearchTags = splitTags(tags)
	}

	return suggestion, nil
}

// stripCodeFence removes a markdown code fence the model sometimes wraps
// around JSON output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// normalizeSuggestion replaces nil sub-slices with empty ones so the response
// never serializes null for a missing sub-field.
func normalizeSuggestion(s *models.PromptSuggestion) {
	if s.SuggestedElements.Specificity == nil {
		s.SuggestedElements.Specificity = []string{}
	}
	if s.SuggestedElements.ResearchType == nil {
		s.SuggestedElements.ResearchType = []string{}
	}
	if s.SuggestedElements.PracticalApplication == nil {
		s.SuggestedElements.PracticalApplication = []string{}
	}
	if s.QuestionVariations == nil {
		s.QuestionVariations = []models.QuestionVariation{}
	}
	if s.RelatedConcepts == nil {
		s.RelatedConcepts = []string{}
	}
	if s.ResearchTags == nil {
		s.ResearchTags = []string{}
	}
}
