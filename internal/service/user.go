package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/auth"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/hash"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/logger"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/otp"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type userService struct {
	userRepository         repository.Users
	verificationRepository repository.Verifications
	txer                   repository.Transactor
	hasher                 hash.PasswordHasher
	tokenManager           auth.TokenManager
	otpGenerator           otp.Generator
	emails                 Emails
	authConfig             config.AuthConfig
}

func newUserService(
	userRepository repository.Users,
	verificationRepository repository.Verifications,
	txer repository.Transactor,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	otpGenerator otp.Generator,
	emails Emails,
	authConfig config.AuthConfig,
) *userService {
	return &userService{
		userRepository:         userRepository,
		verificationRepository: verificationRepository,
		txer:                   txer,
		hasher:                 hasher,
		tokenManager:           tokenManager,
		otpGenerator:           otpGenerator,
		emails:                 emails,
		authConfig:             authConfig,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUpRequestOTP starts the signup flow for an unregistered email:
// any previous pending codes for the address are replaced by a single fresh
// one, then the code goes out through the email sink.
func (s *userService) SignUpRequestOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	if _, err := s.userRepository.GetByEmail(ctx, email); err == nil {
		return ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get user by email failed: %w", err)
	}

	code, err := s.otpGenerator.RandomCode(s.authConfig.VerificationCodeLength)
	if err != nil {
		return fmt.Errorf("generate verification code failed: %w", err)
	}

	verification := &domain.EmailVerification{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.authConfig.VerificationCodeTTL),
	}

	// Delete-then-insert runs in one transaction so two concurrent requests
	// for the same email cannot leave two pending codes behind.
	err = s.txer.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.verificationRepository.DeleteByEmailWithTx(ctx, tx, email); err != nil {
			return err
		}

		return s.verificationRepository.CreateWithTx(ctx, tx, verification)
	})
	if err != nil {
		return fmt.Errorf("store verification failed: %w", err)
	}

	if err := s.emails.SendVerificationEmail(VerificationEmailInput{
		Email:            email,
		VerificationCode: code,
	}); err != nil {
		// The pending row stays behind: the user can re-request a code, which
		// replaces it. Logged loudly because the row is unusable until then.
		logger.Error("verification code delivery failed, pending code is unreachable until re-requested",
			zap.String("email", email), zap.Error(err))
		return ErrDeliveryFailed
	}

	return nil
}

// SignUpVerifyOTP finishes the signup flow: it checks the pending code and,
// inside a single transaction, consumes it, provisions the user and purges
// the verification row. A crash mid-sequence rolls everything back.
func (s *userService) SignUpVerifyOTP(ctx context.Context, input SignUpVerifyInput) (*Tokens, error) {
	email := normalizeEmail(input.Email)

	verification, err := s.verificationRepository.GetPendingByEmailAndCode(ctx, email, input.Code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Wrong code, already-consumed code and never-requested email all
			// collapse into one client-facing error to avoid enumeration;
			// the log keeps them apart.
			logger.Debug("no pending verification for email/code pair", zap.String("email", email))
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("get verification failed: %w", err)
	}

	if verification.Expired(time.Now()) {
		if err := s.verificationRepository.DeleteByID(ctx, verification.ID); err != nil {
			logger.Error("delete expired verification failed", zap.Int64("id", verification.ID), zap.Error(err))
		}
		return nil, ErrCodeExpired
	}

	if _, err := s.userRepository.GetByUsername(ctx, input.Username); err == nil {
		// Pending code stays usable so the user can retry with another name.
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user by username failed: %w", err)
	}

	if _, err := s.userRepository.GetByEmail(ctx, email); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	var userID int64
	err = s.txer.Transaction(ctx, func(tx *sqlx.Tx) error {
		// Conditional consume: of two concurrent verifications exactly one
		// sees the unconsumed row.
		if err := s.verificationRepository.ConsumeWithTx(ctx, tx, verification.ID); err != nil {
			if errors.Is(err, domain.ErrNoRowsAffected) {
				return ErrInvalidCode
			}
			return err
		}

		userID, err = s.userRepository.CreateWithTx(ctx, tx, &domain.User{
			Email:        email,
			Username:     input.Username,
			PasswordHash: passwordHash,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateEntry) {
				return ErrAlreadyRegistered
			}
			return err
		}

		return s.verificationRepository.DeleteByIDWithTx(ctx, tx, verification.ID)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCode) || errors.Is(err, ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("provision user failed: %w", err)
	}

	return s.createSession(userID)
}

func (s *userService) SignIn(ctx context.Context, username string, password string) (*Tokens, error) {
	user, err := s.userRepository.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by username failed: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(user.ID)
}

func (s *userService) GetOneByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	return user, nil
}

func (s *userService) createSession(userID int64) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	return &res, nil
}
