package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings for the notification dispatch sink.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Resolver turns an opaque employee identifier into a deliverable address.
// Presentation-only; resolution failures mean the message is skipped, never
// that the calling operation fails.
type Resolver interface {
	EmailFor(ctx context.Context, id ref.EmployeeID) (string, error)
}

type senderFunc func(m *gomail.Message) error

// Sink delivers notification triples over SMTP.
type Sink struct {
	cfg      Config
	resolver Resolver
	send     senderFunc
}

var _ notification.Sink = (*Sink)(nil)

// NewSink returns an SMTP-backed notification sink.
func NewSink(cfg Config, resolver Resolver) *Sink {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Sink{
		cfg:      cfg,
		resolver: resolver,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

// Dispatch implements notification.Sink.
func (s *Sink) Dispatch(ctx context.Context, to ref.EmployeeID, typ notification.Type, message string) error {
	address, err := s.resolver.EmailFor(ctx, to)
	if err != nil {
		slog.Warn("Skipping email dispatch, recipient could not be resolved", "recipient", to.String(), "error", err)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", address)
	m.SetHeader("Subject", subjectFor(typ))
	m.SetBody("text/plain", message)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	return nil
}

func subjectFor(typ notification.Type) string {
	switch typ {
	case notification.TypeExceptionRaised:
		return "Time exception raised"
	case notification.TypeExceptionEscalated:
		return "Time exception escalated"
	case notification.TypeCorrectionSubmitted:
		return "Attendance correction request submitted"
	case notification.TypeCorrectionResolved:
		return "Attendance correction request resolved"
	case notification.TypeShiftExpiring:
		return "Shift assignment nearing expiry"
	case notification.TypeShiftExpirySummary:
		return "Expiring shift assignments summary"
	default:
		return "Time management notification"
	}
}
