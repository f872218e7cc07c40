package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tanmay/paper-scout/internal/ai"
	"github.com/tanmay/paper-scout/internal/models"
)

// ConsolidatedSummary asks for one cross-cutting synthesis over every paper's
// title and abstract. Unlike per-paper enrichment, a failure here is fatal to
// the request.
func (s *Service) ConsolidatedSummary(ctx context.Context, papers []models.Paper) (string, error) {
	var b strings.Builder
	b.WriteString("Provide a consolidated overview (maximum 100 words) of the common themes and findings across these research papers:\n\n")
	for i, p := range papers {
		fmt.Fprintf(&b, "Paper %d: %s\n%s\n\n", i+1, p.Title, p.Abstract)
	}

	text, err := s.llm.Complete(ctx, b.String(), ai.Options{Temperature: 0.3, MaxTokens: 200})
	if err != nil {
		return "", fmt.Errorf("consolidated summary: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// buildReportPrompt assembles the structured-report prompt. The section
// headings and ordering are an external contract: downstream markdown
// consumers key off them, so treat this template as versioned text.
func buildReportPrompt(query string, date time.Time, analyses []models.PaperAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Write a comprehensive research report in markdown on the topic: "%s"
Date: %s

The report must contain exactly these sections, in this order, as markdown headings:

## Abstract
(150-200 words summarizing the report)

## Introduction
(200-300 words introducing the topic and why it matters)

## Literature Review
(400-500 words reviewing the papers below, grouped by theme)

## Methodology
(150-200 words describing how the reviewed studies were conducted)

## Results
(A markdown table with one row per paper: Title | Authors | Key Findings)

## Discussion
(300-400 words interpreting the findings and their implications)

## Conclusion
(150-200 words of closing synthesis and future directions)

## References
(A numbered list citing every paper by title and authors)

Citation guidelines: cite papers inline as [1], [2], ... matching the order
of the References list. Only cite the papers provided below.

Source papers:

`, query, date.Format("January 2, 2006"))

	for i, a := range analyses {
		fmt.Fprintf(&b, "Paper %d:\nTitle: %s\nAuthors: %s\nAbstract: %s\nAnalysis: %s\n\n",
			i+1, a.Paper.Title, strings.Join(a.Paper.Authors, ", "), a.Paper.Abstract, a.Analysis)
	}

	return b.String()
}

// GenerateReport produces the full markdown report for one query. Content is
// all-or-nothing: on any error no partial report is returned.
func (s *Service) GenerateReport(ctx context.Context, query string, analyses []models.PaperAnalysis) (models.Report, error) {
	now := time.Now()
	prompt := buildReportPrompt(query, now, analyses)

	content, err := s.llm.Complete(ctx, prompt, ai.Options{Temperature: 0.3, MaxTokens: 2000})
	if err != nil {
		return models.Report{}, fmt.Errorf("report synthesis: %w", err)
	}

	reportsGenerated.Inc()
	return models.Report{
		Query:        query,
		GeneratedAt:  now,
		Content:      strings.TrimSpace(content),
		SourcePapers: analyses,
	}, nil
}
