package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/screenhq/resume-screener/internal/model"
)

const noEmailPlaceholder = "No email found"

type ScreeningRecordDTO struct {
	ID           uuid.UUID `json:"id"`
	SourceName   string    `json:"source_name"`
	Score        int       `json:"score"`
	MatchLabel   string    `json:"match_label"`
	ContactEmail string    `json:"contact_email"`
	Strengths    []string  `json:"strengths"`
	Gaps         []string  `json:"gaps"`
	Degraded     bool      `json:"degraded"`
	Notified     bool      `json:"notified"`
	CanNotify    bool      `json:"can_notify"`
	Action       string    `json:"action"`
}

type ScreeningSessionDTO struct {
	ID          uuid.UUID            `json:"id"`
	MailEnabled bool                 `json:"mail_enabled"`
	Records     []ScreeningRecordDTO `json:"records"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func NewScreeningRecordDTO(record *model.ScreeningRecord, mailEnabled bool) ScreeningRecordDTO {
	email := record.ContactEmail
	if email == "" {
		email = noEmailPlaceholder
	}

	action := "Reject"
	if record.Score >= model.ShortlistThreshold {
		action = "Shortlist"
	}

	return ScreeningRecordDTO{
		ID:           record.ID,
		SourceName:   record.SourceName,
		Score:        record.Score,
		MatchLabel:   model.MatchLabel(record.Score),
		ContactEmail: email,
		Strengths:    record.Strengths,
		Gaps:         record.Gaps,
		Degraded:     record.Degraded,
		Notified:     record.Notified,
		CanNotify:    mailEnabled && record.ContactEmail != "" && !record.Notified,
		Action:       action,
	}
}

func NewScreeningSessionDTO(session *model.ScreeningSession, mailEnabled bool) ScreeningSessionDTO {
	records := make([]ScreeningRecordDTO, 0, len(session.Records))
	for _, record := range session.Records {
		records = append(records, NewScreeningRecordDTO(record, mailEnabled))
	}

	return ScreeningSessionDTO{
		ID:          session.ID,
		MailEnabled: mailEnabled,
		Records:     records,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}
