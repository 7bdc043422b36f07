// Package notify delivers coupon OTPs to employees out of band.
package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNoContact is returned when an employee has no number to deliver to.
var ErrNoContact = errors.New("employee has no contact number")

// Notifier delivers an OTP to an employee. Failures never undo an issued coupon.
type Notifier interface {
	Send(ctx context.Context, contact, employeeName, otp string) error
}

// logNotifier writes deliveries to the log instead of a gateway.
type logNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a Notifier for development and tests.
func NewLogNotifier(logger zerolog.Logger) Notifier {
	return &logNotifier{
		logger: logger.With().Str("component", "log-notifier").Logger(),
	}
}

func (n *logNotifier) Send(ctx context.Context, contact, employeeName, otp string) error {
	if strings.TrimSpace(contact) == "" {
		return ErrNoContact
	}

	n.logger.Info().
		Str("contact", maskContact(contact)).
		Str("employee", employeeName).
		Msg("otp delivery simulated")
	n.logger.Debug().Str("otp", otp).Msg("simulated otp")

	return nil
}

// maskContact keeps the last four digits of a number.
func maskContact(contact string) string {
	if len(contact) <= 4 {
		return contact
	}
	return strings.Repeat("*", len(contact)-4) + contact[len(contact)-4:]
}
