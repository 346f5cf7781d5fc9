package model

import (
	"time"

	"github.com/google/uuid"
)

// ScreeningRecord is the evaluation result for one uploaded resume.
type ScreeningRecord struct {
	ID           uuid.UUID `json:"id"`
	SourceName   string    `json:"source_name"`
	ContactEmail string    `json:"contact_email"`
	Score        int       `json:"score"`
	Strengths    []string  `json:"strengths"`
	Gaps         []string  `json:"gaps"`
	// Degraded marks records whose scoring call failed and fell back to the
	// canonical empty response, so a real 0% stays distinguishable.
	Degraded  bool      `json:"degraded"`
	Notified  bool      `json:"notified"`
	CreatedAt time.Time `json:"created_at"`
}

// ScreeningSession holds one batch of screened resumes for the lifetime of
// the process. Records are kept in ranked order after the batch completes.
type ScreeningSession struct {
	ID             uuid.UUID          `json:"id"`
	JobDescription string             `json:"job_description"`
	Records        []*ScreeningRecord `json:"records"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// FindRecord returns the record with the given id, or nil.
func (s *ScreeningSession) FindRecord(id uuid.UUID) *ScreeningRecord {
	for _, r := range s.Records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// MatchLabel maps a score to its qualitative label.
func MatchLabel(score int) string {
	switch {
	case score >= 90:
		return "Excellent Match"
	case score >= 80:
		return "Strong Match"
	case score >= 70:
		return "Good Match"
	case score >= 60:
		return "Fair Match"
	default:
		return "Poor Match"
	}
}

// ShortlistThreshold is the score at or above which a candidate is
// shortlisted rather than rejected.
const ShortlistThreshold = 80
