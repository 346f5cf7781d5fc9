package service

import (
	"context"
	"fmt"
)

// ScoringProvider sends a bounded resume-vs-job prompt to an external model
// and returns its raw textual reply.
type ScoringProvider interface {
	Evaluate(ctx context.Context, jobDescription, resumeText string) (string, error)
}

const (
	maxJobDescriptionChars = 1000
	maxResumeChars         = 2000
)

// EmptyEvaluation is the canonical degenerate reply substituted when a
// scoring call fails, so downstream parsing always has well-formed input.
const EmptyEvaluation = "SCORE: 0%\nSTRENGTHS:\nMISSING:"

// BuildScoringPrompt embeds a bounded prefix of the job description and the
// resume text together with the fixed response-format instruction.
func BuildScoringPrompt(jobDescription, resumeText string) string {
	return fmt.Sprintf(`Score resume 0-100%% vs job:
JOB: %s
RESUME: %s

Format exactly:
SCORE: XX%%
STRENGTHS: bullet points
MISSING: bullet points`,
		truncateRunes(jobDescription, maxJobDescriptionChars),
		truncateRunes(resumeText, maxResumeChars))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
