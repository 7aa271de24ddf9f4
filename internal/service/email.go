package service

import (
	"fmt"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"
	emailProvider "github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/email"
)

type emailService struct {
	sender  emailProvider.Sender
	config  config.EmailConfig
	codeTTL time.Duration
}

func newEmailService(sender emailProvider.Sender, config config.EmailConfig, codeTTL time.Duration) *emailService {
	return &emailService{
		sender:  sender,
		config:  config,
		codeTTL: codeTTL,
	}
}

type verificationEmailInput struct {
	VerificationCode string
	TTLMinutes       int
}

func (s *emailService) SendVerificationEmail(input VerificationEmailInput) error {
	ttlMinutes := int(s.codeTTL.Minutes())

	templateInput := verificationEmailInput{
		VerificationCode: input.VerificationCode,
		TTLMinutes:       ttlMinutes,
	}
	sendInput := emailProvider.SendEmailInput{
		To:      input.Email,
		Subject: "Your Expense Tracker verification code",
		Text: fmt.Sprintf(
			"Your verification code is %s. It expires in %d minutes. If you didn't request this code, ignore this email.",
			input.VerificationCode, ttlMinutes,
		),
	}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.Verification, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
