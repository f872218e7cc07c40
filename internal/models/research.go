package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Paper is a single bibliographic record returned by the arXiv search.
// Fields are never null: a missing source field becomes "" or an empty slice.
type Paper struct {
	Title    string   `json:"title"    bson:"title"`
	Authors  []string `json:"authors"  bson:"authors"`
	Abstract string   `json:"abstract" bson:"abstract"`
	Link     string   `json:"link"     bson:"link"`
}

// PaperAnalysis pairs a paper with its AI-generated analysis. The analysis
// string holds either model output or a fixed failure placeholder.
type PaperAnalysis struct {
	Paper    Paper  `json:"paper"    bson:"paper"`
	Analysis string `json:"analysis" bson:"analysis"`
}

// Report is the synthesized markdown document for one generate-report call.
type Report struct {
	Query        string          `json:"query"`
	GeneratedAt  time.Time       `json:"generatedAt"`
	Content      string          `json:"content"`
	SourcePapers []PaperAnalysis `json:"sourcePapers"`
}

// Record types stored in MongoDB.
const (
	RecordTypeSearch = "search"
	RecordTypeReport = "report"
)

// Record is a saved search or report owned by a user.
type Record struct {
	ID                  primitive.ObjectID `json:"id"                            bson:"_id,omitempty"`
	UserID              string             `json:"userId"                        bson:"user_id"`
	Type                string             `json:"type"                          bson:"type"`
	Query               string             `json:"query"                         bson:"query"`
	Content             string             `json:"content,omitempty"             bson:"content,omitempty"`
	ConsolidatedSummary string             `json:"consolidatedSummary,omitempty" bson:"consolidated_summary,omitempty"`
	Papers              []Paper            `json:"papers,omitempty"              bson:"papers,omitempty"`
	SourcePapers        []PaperAnalysis    `json:"sourcePapers,omitempty"        bson:"source_papers,omitempty"`
	MarkdownObjectKey   string             `json:"markdownObjectKey,omitempty"   bson:"markdown_object_key,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"                     bson:"created_at"`
}

// SuggestedElements groups the refinement hints of a prompt suggestion.
type SuggestedElements struct {
	Specificity          []string `json:"specificity"`
	ResearchType         []string `json:"researchType"`
	PracticalApplication []string `json:"practicalApplication"`
}

// QuestionVariation is one rephrasing of the user's query.
type QuestionVariation struct {
	Question    string `json:"question"`
	Explanation string `json:"explanation"`
}

// PromptSuggestion is the merged result of the refinement call and the
// auxiliary tag-generation call. Sub-fields the model omitted stay as empty
// strings/slices rather than null.
type PromptSuggestion struct {
	RefinedQuery       string              `json:"refinedQuery"`
	SuggestedElements  SuggestedElements   `json:"suggestedElements"`
	QuestionVariations []QuestionVariation `json:"questionVariations"`
	RelatedConcepts    []string            `json:"relatedConcepts"`
	ResearchTags       []string            `json:"researchTags"`
}

// SearchRequest is the JSON body for POST /api/search-papers and
// POST /api/generate-report.
type SearchRequest struct {
	Query string `json:"query"`
}

// AnalyzeRequest is the JSON body for POST /api/analyze-paper.
type AnalyzeRequest struct {
	Abstract string `json:"abstract"`
}

// SuggestRequest is the JSON body for POST /api/suggest-prompt.
type SuggestRequest struct {
	InitialQuery string `json:"initialQuery"`
}

// SaveSearchRequest is the JSON body for POST /api/save-search.
type SaveSearchRequest struct {
	Query               string  `json:"query"`
	Papers              []Paper `json:"papers"`
	ConsolidatedSummary string  `json:"consolidatedSummary"`
}
