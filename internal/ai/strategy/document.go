package strategy

import (
	"context"
	"fmt"
	"strings"

	"mockmate/internal/domain"

	"go.uber.org/zap"
)

// DocumentStrategy produces the structured resume/CV analysis. Like the
// scoring strategies it has no safe default, so parse errors propagate as
// retryable.
type DocumentStrategy struct {
	gateway domain.CompletionGateway
	logger  *zap.Logger
}

// NewDocumentStrategy creates the document analysis strategy.
func NewDocumentStrategy(gateway domain.CompletionGateway, logger *zap.Logger) *DocumentStrategy {
	return &DocumentStrategy{gateway: gateway, logger: logger}
}

type documentAnalysisResponse struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	SkillGaps       []string `json:"skill_gaps"`
	Recommendations []string `json:"recommendations"`
	JobMatchScore   *float64 `json:"job_match_score"`
}

// Analyze implements domain.DocumentAnalyzer
func (s *DocumentStrategy) Analyze(ctx context.Context, record *domain.AnalysisRecord) (*domain.AnalysisResult, error) {
	prompt := s.buildPrompt(record)
	response, err := s.gateway.Complete(ctx, domain.TaskDocumentAnalysis, prompt)
	if err != nil {
		return nil, err
	}

	var parsed documentAnalysisResponse
	if err := decodeObject(response, &parsed); err != nil {
		s.logger.Warn("Document analysis output did not conform",
			zap.String("record_id", record.ID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &domain.AnalysisResult{
		Summary:         parsed.Summary,
		Strengths:       parsed.Strengths,
		Weaknesses:      parsed.Weaknesses,
		SkillGaps:       parsed.SkillGaps,
		Recommendations: parsed.Recommendations,
	}
	if record.JobDescription != "" && parsed.JobMatchScore != nil {
		score := clamp(*parsed.JobMatchScore, 0, 100)
		result.JobMatchScore = &score
	}
	return result, nil
}

func (s *DocumentStrategy) buildPrompt(record *domain.AnalysisRecord) string {
	var b strings.Builder
	b.WriteString(`You are a professional resume reviewer. Analyze the following resume.

Resume text:
`)
	b.WriteString(record.ExtractedText)
	if record.JobDescription != "" {
		fmt.Fprintf(&b, "\n\nTarget job description:\n%s", record.JobDescription)
	}
	b.WriteString("\n\n" + languageDirective(record.Language))
	b.WriteString(`

Respond with ONLY a JSON object:
{
  "summary": "3-5 sentence professional summary of the candidate",
  "strengths": ["list"],
  "weaknesses": ["list"],
  "skill_gaps": ["skills missing for the candidate's target roles"],
  "recommendations": ["concrete resume improvements"]`)
	if record.JobDescription != "" {
		b.WriteString(`,
  "job_match_score": 0.0`)
	}
	b.WriteString(`
}`)
	if record.JobDescription != "" {
		b.WriteString("\n\n\"job_match_score\" is between 0 and 100 and measures fit against the target job description.")
	}
	return b.String()
}

var _ domain.DocumentAnalyzer = (*DocumentStrategy)(nil)
