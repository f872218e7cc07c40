package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tanmay/paper-scout/internal/ai"
)

const refinementJSON = `{
  "refinedQuery": "effects of spaced repetition on long-term retention in adults",
  "suggestedElements": {
    "specificity": ["limit to adult learners"],
    "researchType": ["randomized controlled trials"],
    "practicalApplication": ["language learning apps"]
  },
  "questionVariations": [
    {"question": "Does spacing improve retention?", "explanation": "isolates the spacing effect"}
  ],
  "relatedConcepts": ["forgetting curve"]
}`

func suggestCompleter(tagsResult string, tagsErr error) *fakeCompleter {
	return &fakeCompleter{fn: func(prompt string, opts ai.Options) (string, error) {
		if strings.Contains(prompt, "research tags") {
			return tagsResult, tagsErr
		}
		return refinementJSON, nil
	}}
}

func TestSuggestPromptMergesTags(t *testing.T) {
	llm := suggestCompleter("memory, spaced repetition , retention", nil)
	s := NewService(&fakeSearcher{}, llm, zap.NewNop())

	got, err := s.SuggestPrompt(context.Background(), "spaced repetition")
	require.NoError(t, err)

	require.Equal(t, "effects of spaced repetition on long-term retention in adults", got.RefinedQuery)
	require.Equal(t, []string{"limit to adult learners"}, got.SuggestedElements.Specificity)
	require.Equal(t, []string{"randomized controlled trials"}, got.SuggestedElements.ResearchType)
	require.Len(t, got.QuestionVariations, 1)
	require.Equal(t, "Does spacing improve retention?", got.QuestionVariations[0].Question)
	require.Equal(t, []string{"forgetting curve"}, got.RelatedConcepts)
	require.Equal(t, []string{"memory", "spaced repetition", "retention"}, got.ResearchTags)
}

func TestSuggestPromptTagFailureDegrades(t *testing.T) {
	llm := suggestCompleter("", errors.New("tags endpoint down"))
	s := NewService(&fakeSearcher{}, llm, zap.NewNop())

	got, err := s.SuggestPrompt(context.Background(), "spaced repetition")
	require.NoError(t, err)

	// The rest of the suggestion is unaffected; only tags degrade to empty.
	require.Equal(t, "effects of spaced repetition on long-term retention in adults", got.RefinedQuery)
	require.NotNil(t, got.ResearchTags)
	require.Empty(t, got.ResearchTags)
}

func TestSuggestPromptMalformedJSONFails(t *testing.T) {
	llm := &fakeCompleter{fn: func(string, ai.Options) (string, error) {
		return "sure! here is your refined query: ...", nil
	}}
	s := NewService(&fakeSearcher{}, llm, zap.NewNop())

	_, err := s.SuggestPrompt(context.Background(), "q")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse")
}

func TestSuggestPromptStripsCodeFence(t *testing.T) {
	llm := &fakeCompleter{fn: func(prompt string, opts ai.Options) (string, error) {
		if strings.Contains(prompt, "research tags") {
			return "a, b", nil
		}
		return "```json\n" + refinementJSON + "\n```", nil
	}}
	s := NewService(&fakeSearcher{}, llm, zap.NewNop())

	got, err := s.SuggestPrompt(context.Background(), "q")
	require.NoError(t, err)
	require.NotEmpty(t, got.RefinedQuery)
}

func TestSuggestPromptMissingSubFieldsDefaultEmpty(t *testing.T) {
	llm := &fakeCompleter{fn: func(prompt string, opts ai.Options) (string, error) {
		if strings.Contains(prompt, "research tags") {
			return "", errors.New("down")
		}
		return `{"refinedQuery": "just a query"}`, nil
	}}
	s := NewService(&fakeSearcher{}, llm, zap.NewNop())

	got, err := s.SuggestPrompt(context.Background(), "q")
	require.NoError(t, err)
	require.Equal(t, "just a query", got.RefinedQuery)
	require.NotNil(t, got.SuggestedElements.Specificity)
	require.NotNil(t, got.SuggestedElements.ResearchType)
	require.NotNil(t, got.SuggestedElements.PracticalApplication)
	require.NotNil(t, got.QuestionVariations)
	require.NotNil(t, got.RelatedConcepts)
	require.NotNil(t, got.ResearchTags)
}
