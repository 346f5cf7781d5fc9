package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/screenhq/resume-screener/internal/model"
	"github.com/screenhq/resume-screener/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainTextExtractor returns the upload bytes as already-extracted text, so
// tests can feed resume text directly.
type plainTextExtractor struct {
	err error
}

func (e plainTextExtractor) ExtractText(data []byte) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return string(data), nil
}

// stubScorer replies per resume text and can simulate call failures.
type stubScorer struct {
	responses map[string]string
	failFor   map[string]bool
	calls     int
}

func (s *stubScorer) Evaluate(_ context.Context, _, resumeText string) (string, error) {
	s.calls++
	if s.failFor[resumeText] {
		return "", errors.New("simulated network failure")
	}
	return s.responses[resumeText], nil
}

type stubNotifier struct {
	enabled bool
	succeed bool
	sent    []string
}

func (n *stubNotifier) Enabled() bool { return n.enabled }

func (n *stubNotifier) Send(_ context.Context, email string, _ int) bool {
	if !n.succeed {
		return false
	}
	n.sent = append(n.sent, email)
	return true
}

func newTestUsecase(scorer *stubScorer, notifier *stubNotifier) *ScreeningUsecase {
	return NewScreeningUsecase(repository.NewSessionRepository(), plainTextExtractor{}, scorer, notifier)
}

func TestScreenEndToEnd(t *testing.T) {
	resume := "Jane Doe\njane.doe+hr@company.co.uk\nPython developer, REST APIs"
	scorer := &stubScorer{responses: map[string]string{
		resume: "SCORE: 85%\nSTRENGTHS:\n- Python expert\n- Built REST APIs\nMISSING:\n- No cloud experience",
	}}
	uc := newTestUsecase(scorer, &stubNotifier{})

	session, err := uc.Screen(context.Background(), "Looking for Python backend engineer, 3+ years, REST APIs", []Upload{
		{Filename: "jane.pdf", Data: []byte(resume)},
	})
	require.NoError(t, err)
	require.Len(t, session.Records, 1)

	record := session.Records[0]
	assert.Equal(t, "jane.pdf", record.SourceName)
	assert.Equal(t, 85, record.Score)
	assert.Equal(t, "Strong Match", model.MatchLabel(record.Score))
	assert.Equal(t, "jane.doe+hr@company.co.uk", record.ContactEmail)
	assert.Equal(t, []string{"Python expert", "Built REST APIs"}, record.Strengths)
	assert.Equal(t, []string{"No cloud experience"}, record.Gaps)
	assert.False(t, record.Degraded)
	assert.False(t, record.Notified)
}

func TestScreenRankingIsStable(t *testing.T) {
	scorer := &stubScorer{responses: map[string]string{
		"resume a": "SCORE: 70%\nSTRENGTHS:\nMISSING:",
		"resume b": "SCORE: 85%\nSTRENGTHS:\nMISSING:",
		"resume c": "SCORE: 85%\nSTRENGTHS:\nMISSING:",
		"resume d": "SCORE: 90%\nSTRENGTHS:\nMISSING:",
	}}
	uc := newTestUsecase(scorer, &stubNotifier{})

	session, err := uc.Screen(context.Background(), "job", []Upload{
		{Filename: "a.pdf", Data: []byte("resume a")},
		{Filename: "b.pdf", Data: []byte("resume b")},
		{Filename: "c.pdf", Data: []byte("resume c")},
		{Filename: "d.pdf", Data: []byte("resume d")},
	})
	require.NoError(t, err)

	var order []string
	var scores []int
	for _, record := range session.Records {
		order = append(order, record.SourceName)
		scores = append(scores, record.Score)
	}

	// Descending by score; equal scores keep upload order.
	assert.Equal(t, []string{"d.pdf", "b.pdf", "c.pdf", "a.pdf"}, order)
	assert.Equal(t, []int{90, 85, 85, 70}, scores)
}

func TestScreenScoringFaultDegradesOneRecord(t *testing.T) {
	scorer := &stubScorer{
		responses: map[string]string{
			"resume a": "SCORE: 75%\nSTRENGTHS:\n- solid fundamentals\nMISSING:\n- nothing major here",
			"resume c": "SCORE: 65%\nSTRENGTHS:\n- willing to learn\nMISSING:\n- senior experience",
		},
		failFor: map[string]bool{"resume b": true},
	}
	uc := newTestUsecase(scorer, &stubNotifier{})

	session, err := uc.Screen(context.Background(), "job", []Upload{
		{Filename: "a.pdf", Data: []byte("resume a")},
		{Filename: "b.pdf", Data: []byte("resume b")},
		{Filename: "c.pdf", Data: []byte("resume c")},
	})
	require.NoError(t, err)
	require.Len(t, session.Records, 3)

	byName := map[string]*model.ScreeningRecord{}
	for _, record := range session.Records {
		byName[record.SourceName] = record
	}

	failed := byName["b.pdf"]
	assert.Equal(t, 0, failed.Score)
	assert.Empty(t, failed.Strengths)
	assert.Empty(t, failed.Gaps)
	assert.True(t, failed.Degraded)

	assert.Equal(t, 75, byName["a.pdf"].Score)
	assert.False(t, byName["a.pdf"].Degraded)
	assert.Equal(t, 65, byName["c.pdf"].Score)
	assert.False(t, byName["c.pdf"].Degraded)
}

func TestScreenClampsOutOfRangeScore(t *testing.T) {
	scorer := &stubScorer{responses: map[string]string{
		"resume": "SCORE: 150%\nSTRENGTHS:\nMISSING:",
	}}
	uc := newTestUsecase(scorer, &stubNotifier{})

	session, err := uc.Screen(context.Background(), "job", []Upload{
		{Filename: "a.pdf", Data: []byte("resume")},
	})
	require.NoError(t, err)

	assert.Equal(t, 100, session.Records[0].Score)
}

func TestScreenExtractionFailureFlowsThrough(t *testing.T) {
	scorer := &stubScorer{responses: map[string]string{
		"": "SCORE: 0%\nSTRENGTHS:\nMISSING:",
	}}
	uc := NewScreeningUsecase(repository.NewSessionRepository(),
		plainTextExtractor{err: errors.New("broken document")}, scorer, &stubNotifier{})

	session, err := uc.Screen(context.Background(), "job", []Upload{
		{Filename: "broken.pdf", Data: []byte("garbage")},
	})
	require.NoError(t, err)
	require.Len(t, session.Records, 1)

	record := session.Records[0]
	assert.Equal(t, 0, record.Score)
	assert.Empty(t, record.ContactEmail)
	assert.Equal(t, 1, scorer.calls)
}

func TestScreenRejectsEmptyBatch(t *testing.T) {
	uc := newTestUsecase(&stubScorer{}, &stubNotifier{})

	_, err := uc.Screen(context.Background(), "job", nil)
	assert.Error(t, err)
}

func screenedSession(t *testing.T, uc *ScreeningUsecase, resume string) *model.ScreeningSession {
	t.Helper()
	session, err := uc.Screen(context.Background(), "job", []Upload{
		{Filename: "a.pdf", Data: []byte(resume)},
	})
	require.NoError(t, err)
	return session
}

func TestNotifySuccessMarksRecord(t *testing.T) {
	resume := "jane@example.com resume"
	scorer := &stubScorer{responses: map[string]string{resume: "SCORE: 85%\nSTRENGTHS:\nMISSING:"}}
	notifier := &stubNotifier{enabled: true, succeed: true}
	uc := newTestUsecase(scorer, notifier)

	session := screenedSession(t, uc, resume)
	record := session.Records[0]

	sent, err := uc.Notify(context.Background(), session.ID, record.ID)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.True(t, record.Notified)
	assert.Equal(t, []string{"jane@example.com"}, notifier.sent)

	// A second attempt is rejected by the notified flag.
	_, err = uc.Notify(context.Background(), session.ID, record.ID)
	assert.Error(t, err)
}

func TestNotifyFailureLeavesRecordRetryable(t *testing.T) {
	resume := "jane@example.com resume"
	scorer := &stubScorer{responses: map[string]string{resume: "SCORE: 40%\nSTRENGTHS:\nMISSING:"}}
	notifier := &stubNotifier{enabled: true, succeed: false}
	uc := newTestUsecase(scorer, notifier)

	session := screenedSession(t, uc, resume)
	record := session.Records[0]

	sent, err := uc.Notify(context.Background(), session.ID, record.ID)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.False(t, record.Notified)

	// Retry after a transient failure is allowed.
	notifier.succeed = true
	sent, err = uc.Notify(context.Background(), session.ID, record.ID)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.True(t, record.Notified)
}

func TestNotifyPreconditions(t *testing.T) {
	resume := "resume without contact details"
	scorer := &stubScorer{responses: map[string]string{resume: "SCORE: 90%\nSTRENGTHS:\nMISSING:"}}
	notifier := &stubNotifier{enabled: true, succeed: true}
	uc := newTestUsecase(scorer, notifier)

	session := screenedSession(t, uc, resume)
	record := session.Records[0]

	_, err := uc.Notify(context.Background(), session.ID, record.ID)
	assert.ErrorContains(t, err, "no contact email")

	_, err = uc.Notify(context.Background(), session.ID, uuid.New())
	assert.ErrorContains(t, err, "not found")

	_, err = uc.Notify(context.Background(), uuid.New(), record.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestNotifyDisabledMailer(t *testing.T) {
	resume := "jane@example.com resume"
	scorer := &stubScorer{responses: map[string]string{resume: "SCORE: 85%\nSTRENGTHS:\nMISSING:"}}
	uc := newTestUsecase(scorer, &stubNotifier{enabled: false})

	session := screenedSession(t, uc, resume)

	_, err := uc.Notify(context.Background(), session.ID, session.Records[0].ID)
	assert.ErrorContains(t, err, "not configured")
}
