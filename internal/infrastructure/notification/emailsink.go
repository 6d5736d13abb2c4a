package notification

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"mainta/internal/domain/issue"
	"mainta/internal/domain/shared/events"
	"mainta/internal/shared/config"
	"mainta/internal/shared/logger"
)

// EmailSink mails the maintenance alert list when a high-urgency issue is
// reported. Other events pass through untouched.
type EmailSink struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewEmailSink(cfg config.EmailConfig, log logger.Interface) *EmailSink {
	if log == nil {
		log = logger.NewLogger()
	}
	return &EmailSink{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		logger: log.With("component", "notification.email"),
	}
}

func (s *EmailSink) Notify(event events.DomainEvent) error {
	if !s.cfg.Enabled || len(s.cfg.AlertsTo) == 0 {
		return nil
	}
	if event.EventName() != issue.EventNewIssue {
		return nil
	}

	created, ok := event.(issue.CreatedEvent)
	if !ok {
		return nil
	}
	snapshot := created.Issue()
	if snapshot.Urgency != "high" {
		return nil
	}

	subject := fmt.Sprintf("[%s] High urgency issue on machine %s", snapshot.ID, snapshot.MachineID)
	body := fmt.Sprintf(`A high urgency issue was reported.

Issue:       %s
Machine:     %s
Reported by: %s
Description: %s
Reported at: %s
`, snapshot.ID, snapshot.MachineID, snapshot.ReportedBy, snapshot.Description,
		snapshot.CreatedAt.Format("2006-01-02 15:04:05"))

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", s.cfg.AlertsTo...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Errorw("failed to send alert email",
			"issue_id", snapshot.ID,
			"error", err)
		return err
	}

	s.logger.Infow("alert email sent", "issue_id", snapshot.ID, "recipients", len(s.cfg.AlertsTo))
	return nil
}
