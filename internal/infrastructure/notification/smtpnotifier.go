package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/shared/config"
	"caseflow/internal/shared/goroutine"
	"caseflow/internal/shared/logger"
)

// RecipientResolver resolves a staff or supervisor ID to a deliverable email
// address. Staff directories live outside this system, so resolution is
// pluggable.
type RecipientResolver interface {
	ResolveEmail(ctx context.Context, recipientID uint) (string, error)
}

// SMTPNotifier delivers notification templates over SMTP. Delivery happens in
// a background goroutine and failures are logged only, so callers are never
// blocked or failed by a mail outage.
type SMTPNotifier struct {
	config   *config.NotificationConfig
	dialer   *gomail.Dialer
	resolver RecipientResolver
	logger   logger.Interface
}

// NewSMTPNotifier creates a new SMTP-backed notifier.
func NewSMTPNotifier(cfg *config.NotificationConfig, resolver RecipientResolver, log logger.Interface) *SMTPNotifier {
	return &SMTPNotifier{
		config:   cfg,
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		resolver: resolver,
		logger:   log,
	}
}

// Notify renders the template and sends it to the recipient in the background.
func (n *SMTPNotifier) Notify(ctx context.Context, recipientID uint, template string, payload map[string]any) {
	goroutine.SafeGo(n.logger, "notification-"+template, func() {
		address, err := n.resolver.ResolveEmail(context.Background(), recipientID)
		if err != nil {
			n.logger.Warnw("failed to resolve notification recipient",
				"recipient_id", recipientID,
				"template", template,
				"error", err,
			)
			return
		}

		subject, body := renderTemplate(template, payload)
		if err := n.send(address, subject, body); err != nil {
			n.logger.Errorw("failed to send notification",
				"recipient_id", recipientID,
				"template", template,
				"error", err,
			)
			return
		}

		n.logger.Debugw("notification sent",
			"recipient_id", recipientID,
			"template", template,
		)
	})
}

func (n *SMTPNotifier) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.config.FromAddress, n.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func renderTemplate(template string, payload map[string]any) (string, string) {
	switch template {
	case services.TemplateSLAWarning:
		subject := fmt.Sprintf("SLA warning: work item %v", payload["work_item_id"])
		body := fmt.Sprintf(`Work item %v assigned to you is approaching its SLA deadline.

Priority: %v
Deadline: %v

Please prioritize this item or hand it off before the deadline passes.`,
			payload["work_item_id"], payload["priority"], payload["sla_deadline"])
		return subject, body

	case services.TemplateSLAEscalation:
		subject := fmt.Sprintf("SLA breached: work item %v", payload["work_item_id"])
		body := fmt.Sprintf(`Work item %v has breached its SLA deadline and was escalated to you.

Assignee: %v
Priority: %v
Deadline: %v

Review the assignment and acknowledge the escalation.`,
			payload["work_item_id"], payload["assignee_id"], payload["priority"], payload["sla_deadline"])
		return subject, body

	case services.TemplateManualOverride:
		subject := fmt.Sprintf("Work item %v assigned to you by override", payload["work_item_id"])
		body := fmt.Sprintf(`Work item %v was manually assigned to you.

Assigned by: %v
Reason: %v`,
			payload["work_item_id"], payload["acting_user_id"], payload["reason"])
		return subject, body

	default:
		return fmt.Sprintf("Caseflow notification: %s", template),
			fmt.Sprintf("Notification %s: %v", template, payload)
	}
}
