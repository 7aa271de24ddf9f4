package console

import (
	"fmt"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/email"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/logger"

	"go.uber.org/zap"
)

// ConsoleSender is the development-mode fallback used when SMTP is not
// configured. It logs the outgoing message instead of delivering it, loudly
// enough that it cannot be mistaken for a real delivery.
type ConsoleSender struct{}

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{}
}

func (s *ConsoleSender) Send(input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid send email input: %w", err)
	}

	logger.Warn("EMAIL DELIVERY DISABLED (development mode), message logged instead of sent",
		zap.String("to", input.To),
		zap.String("subject", input.Subject),
		zap.String("text", input.Text),
	)

	return nil
}
