package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/screenhq/resume-screener/internal/model"
	"github.com/screenhq/resume-screener/internal/repository"
	"github.com/screenhq/resume-screener/internal/service"
	"github.com/screenhq/resume-screener/internal/util"
)

// Upload is one resume document submitted for screening.
type Upload struct {
	Filename string
	Data     []byte
}

// TextExtractor pulls raw text from an uploaded document.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

type ScreeningUsecase struct {
	sessionRepo *repository.SessionRepository
	extractor   TextExtractor
	scorer      service.ScoringProvider
	notifier    service.Notifier
}

func NewScreeningUsecase(sessionRepo *repository.SessionRepository, extractor TextExtractor, scorer service.ScoringProvider, notifier service.Notifier) *ScreeningUsecase {
	return &ScreeningUsecase{sessionRepo: sessionRepo, extractor: extractor, scorer: scorer, notifier: notifier}
}

// Screen runs the full pipeline over a batch of uploads, strictly in
// submission order: extract text and contact email, score against the job
// description, parse the reply into a record. A failing scoring call
// degrades that one record to the canonical empty evaluation; it never
// aborts the batch. The finished session holds the records ranked by score
// descending, ties in upload order.
func (uc *ScreeningUsecase) Screen(ctx context.Context, jobDescription string, uploads []Upload) (*model.ScreeningSession, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("no resumes to screen")
	}

	records := make([]*model.ScreeningRecord, 0, len(uploads))
	for _, upload := range uploads {
		records = append(records, uc.screenOne(ctx, jobDescription, upload))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})

	session := &model.ScreeningSession{
		ID:             uuid.New(),
		JobDescription: jobDescription,
		Records:        records,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	uc.sessionRepo.Save(session)

	log.Printf("screen: session %s complete, %d resumes analyzed", session.ID, len(records))
	return session, nil
}

func (uc *ScreeningUsecase) screenOne(ctx context.Context, jobDescription string, upload Upload) *model.ScreeningRecord {
	text, err := uc.extractor.ExtractText(upload.Data)
	if err != nil {
		// Unreadable document flows through as empty input.
		log.Printf("screen: %s: extraction failed: %v", upload.Filename, err)
		text = ""
	}

	raw, degraded := uc.evaluate(ctx, jobDescription, text, upload.Filename)
	parsed := util.ParseEvaluation(raw)

	return &model.ScreeningRecord{
		ID:           uuid.New(),
		SourceName:   upload.Filename,
		ContactEmail: util.ExtractEmail(text),
		Score:        clampScore(parsed.Score),
		Strengths:    parsed.Strengths,
		Gaps:         parsed.Gaps,
		Degraded:     degraded,
		CreatedAt:    time.Now(),
	}
}

// evaluate calls the scoring provider and falls back to the canonical empty
// evaluation on any failure, reporting the degradation alongside the text.
func (uc *ScreeningUsecase) evaluate(ctx context.Context, jobDescription, resumeText, filename string) (string, bool) {
	raw, err := uc.scorer.Evaluate(ctx, jobDescription, resumeText)
	if err != nil {
		log.Printf("screen: %s: scoring call failed, using empty evaluation: %v", filename, err)
		return service.EmptyEvaluation, true
	}
	return raw, false
}

// GetSession returns the ranked view of an existing session.
func (uc *ScreeningUsecase) GetSession(id uuid.UUID) (*model.ScreeningSession, error) {
	return uc.sessionRepo.FindByID(id)
}

// NotifierEnabled reports whether mail credentials are configured.
func (uc *ScreeningUsecase) NotifierEnabled() bool {
	return uc.notifier.Enabled()
}

// Notify sends the decision email for one record. Preconditions: a contact
// email is present, the record has not been notified yet, and mail is
// configured. The notified flag flips only after a successful send, so a
// failed send leaves the record retryable.
func (uc *ScreeningUsecase) Notify(ctx context.Context, sessionID, recordID uuid.UUID) (bool, error) {
	session, err := uc.sessionRepo.FindByID(sessionID)
	if err != nil {
		return false, err
	}

	record := session.FindRecord(recordID)
	if record == nil {
		return false, fmt.Errorf("record %s not found", recordID)
	}
	if record.ContactEmail == "" {
		return false, fmt.Errorf("record has no contact email")
	}
	if record.Notified {
		return false, fmt.Errorf("record already notified")
	}
	if !uc.notifier.Enabled() {
		return false, fmt.Errorf("mail notifications are not configured")
	}

	if !uc.notifier.Send(ctx, record.ContactEmail, record.Score) {
		return false, nil
	}

	return true, uc.sessionRepo.MarkNotified(sessionID, recordID)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
