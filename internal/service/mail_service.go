package service

import (
	"context"
	"fmt"
	"log"

	"github.com/screenhq/resume-screener/internal/config"
	"github.com/screenhq/resume-screener/internal/model"
	"github.com/wneessen/go-mail"
)

// Notifier delivers a decision email for one screened candidate. Send
// reports success as a boolean and never propagates delivery errors.
type Notifier interface {
	Enabled() bool
	Send(ctx context.Context, email string, score int) bool
}

const (
	shortlistSubject = "Shortlisted - Next Steps | ABC Technologies"
	rejectionSubject = "Application Update | ABC Technologies"

	shortlistBody = `Dear Candidate,

Thank you for applying to ABC Technologies.

We are pleased to inform you that your profile has been shortlisted for the position based on our initial evaluation (Match Score: %d%%).

Instructions:
1. You will receive a call from our recruitment team within 48 hours to schedule your interview
2. Please ensure you are available next week for the interview process
3. Prepare to discuss your relevant experience and technical skills

We look forward to speaking with you soon.

Best regards,
Hiring Team
ABC Technologies`

	rejectionBody = `Dear Candidate,

Thank you for your application to ABC Technologies.

After careful review of your profile against our current requirements, we have determined it is not a strong match at this time (Match Score: %d%%).

Instructions:
1. Please consider other suitable positions on our careers page
2. Update your profile and reapply when you gain relevant experience
3. We encourage you to continue building skills in required technologies

We wish you success in your career search.

Best regards,
Hiring Team
ABC Technologies`
)

// MailService submits decision emails over SMTPS. Credentials come from
// process configuration; without them the service stays disabled and every
// Send is a no-op false.
type MailService struct {
	cfg *config.MailConfig
}

func NewMailService() *MailService {
	return &MailService{cfg: config.LoadMailConfig()}
}

func (s *MailService) Enabled() bool {
	return s.cfg.Configured()
}

// Send composes the shortlist or rejection template for the score and
// attempts delivery. It performs no deduplication; guarding re-sends is the
// caller's job via the record's notified flag.
func (s *MailService) Send(ctx context.Context, email string, score int) bool {
	if !s.Enabled() || email == "" {
		return false
	}

	subject, body := decisionTemplate(score)

	msg := mail.NewMsg()
	if err := msg.FromFormat("Hiring Team", s.cfg.User); err != nil {
		log.Printf("mail: invalid sender %q: %v", s.cfg.User, err)
		return false
	}
	if err := msg.To(email); err != nil {
		log.Printf("mail: invalid recipient %q: %v", email, err)
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Pass),
	)
	if err != nil {
		log.Printf("mail: client setup failed: %v", err)
		return false
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Printf("mail: send to %s failed: %v", email, err)
		return false
	}

	return true
}

// decisionTemplate picks the shortlist or rejection message for a score and
// renders the score into it.
func decisionTemplate(score int) (subject, body string) {
	if score >= model.ShortlistThreshold {
		return shortlistSubject, fmt.Sprintf(shortlistBody, score)
	}
	return rejectionSubject, fmt.Sprintf(rejectionBody, score)
}
