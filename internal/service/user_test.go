package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type emailsMock struct {
	mock.Mock
}

func (m *emailsMock) SendVerificationEmail(input VerificationEmailInput) error {
	args := m.Called(input)

	return args.Error(0)
}

type hasherStub struct{}

func (hasherStub) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (hasherStub) Verify(password string, digest string) bool {
	return digest == "hashed:"+password
}

type tokenManagerStub struct{}

func (tokenManagerStub) NewJWT(userID int64) (string, time.Duration, error) {
	return fmt.Sprintf("token-%d", userID), 30 * time.Minute, nil
}

func (tokenManagerStub) Parse(accessToken string) (int64, error) {
	return 0, errors.New("not implemented")
}

type otpStub struct {
	code string
}

func (s otpStub) RandomCode(length int) (string, error) {
	return s.code, nil
}

type userServiceMocks struct {
	users         *mocks.Users
	verifications *mocks.Verifications
	txer          *mocks.Transactor
	emails        *emailsMock
}

func newTestUserService(t *testing.T) (*userService, userServiceMocks) {
	t.Helper()

	m := userServiceMocks{
		users:         new(mocks.Users),
		verifications: new(mocks.Verifications),
		txer:          new(mocks.Transactor),
		emails:        new(emailsMock),
	}

	s := newUserService(
		m.users,
		m.verifications,
		m.txer,
		hasherStub{},
		tokenManagerStub{},
		otpStub{code: "123456"},
		m.emails,
		config.AuthConfig{
			VerificationCodeLength: 6,
			VerificationCodeTTL:    10 * time.Minute,
		},
	)

	return s, m
}

func TestUserService_SignUpRequestOTP(t *testing.T) {
	s, m := newTestUserService(t)
	ctx := context.Background()

	m.users.On("GetByEmail", mock.Anything, "user@example.com").Return(nil, domain.ErrNotFound)
	m.txer.On("Transaction", mock.Anything).Return(nil)
	m.verifications.On("DeleteByEmailWithTx", mock.Anything, mock.Anything, "user@example.com").Return(nil)
	m.verifications.On("CreateWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(v *domain.EmailVerification) bool {
		return v.Email == "user@example.com" && v.Code == "123456" && v.ExpiresAt.After(time.Now())
	})).Return(nil)
	m.emails.On("SendVerificationEmail", VerificationEmailInput{
		Email:            "user@example.com",
		VerificationCode: "123456",
	}).Return(nil)

	// Address is normalized before any lookup or storage.
	err := s.SignUpRequestOTP(ctx, "  User@Example.COM ")
	require.NoError(t, err)

	m.users.AssertExpectations(t)
	m.verifications.AssertExpectations(t)
	m.emails.AssertExpectations(t)
}

func TestUserService_SignUpRequestOTP_AlreadyRegistered(t *testing.T) {
	s, m := newTestUserService(t)

	m.users.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: 1}, nil)

	err := s.SignUpRequestOTP(context.Background(), "taken@example.com")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	m.verifications.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
	m.emails.AssertNotCalled(t, "SendVerificationEmail", mock.Anything)
}

func TestUserService_SignUpRequestOTP_DeliveryFailed(t *testing.T) {
	s, m := newTestUserService(t)

	m.users.On("GetByEmail", mock.Anything, "user@example.com").Return(nil, domain.ErrNotFound)
	m.txer.On("Transaction", mock.Anything).Return(nil)
	m.verifications.On("DeleteByEmailWithTx", mock.Anything, mock.Anything, "user@example.com").Return(nil)
	m.verifications.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.emails.On("SendVerificationEmail", mock.Anything).Return(errors.New("smtp: connection refused"))

	err := s.SignUpRequestOTP(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func pendingVerification(ttl time.Duration) *domain.EmailVerification {
	return &domain.EmailVerification{
		ID:        5,
		Email:     "user@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(ttl),
	}
}

func verifyInput() SignUpVerifyInput {
	return SignUpVerifyInput{
		Email:    "user@example.com",
		Code:     "123456",
		Username: "newuser",
		Password: "hunter22",
	}
}

func TestUserService_SignUpVerifyOTP(t *testing.T) {
	s, m := newTestUserService(t)

	m.verifications.On("GetPendingByEmailAndCode", mock.Anything, "user@example.com", "123456").
		Return(pendingVerification(time.Minute), nil)
	m.users.On("GetByUsername", mock.Anything, "newuser").Return(nil, domain.ErrNotFound)
	m.users.On("GetByEmail", mock.Anything, "user@example.com").Return(nil, domain.ErrNotFound)
	m.txer.On("Transaction", mock.Anything).Return(nil)
	m.verifications.On("ConsumeWithTx", mock.Anything, mock.Anything, int64(5)).Return(nil)
	m.users.On("CreateWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "user@example.com" && u.Username == "newuser" && u.PasswordHash == "hashed:hunter22"
	})).Return(int64(11), nil)
	m.verifications.On("DeleteByIDWithTx", mock.Anything, mock.Anything, int64(5)).Return(nil)

	tokens, err := s.SignUpVerifyOTP(context.Background(), verifyInput())
	require.NoError(t, err)
	assert.Equal(t, "token-11", tokens.AccessToken)
	assert.Equal(t, 30*time.Minute, tokens.AccessTTL)

	m.verifications.AssertExpectations(t)
	m.users.AssertExpectations(t)
}

func TestUserService_SignUpVerifyOTP_InvalidCode(t *testing.T) {
	s, m := newTestUserService(t)

	m.verifications.On("GetPendingByEmailAndCode", mock.Anything, "user@example.com", "123456").
		Return(nil, domain.ErrNotFound)

	_, err := s.SignUpVerifyOTP(context.Background(), verifyInput())
	assert.ErrorIs(t, err, ErrInvalidCode)

	m.users.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_SignUpVerifyOTP_Expired(t *testing.T) {
	s, m := newTestUserService(t)

	m.verifications.On("GetPendingByEmailAndCode", mock.Anything, "user@example.com", "123456").
		Return(pendingVerification(-time.Minute), nil)
	m.verifications.On("DeleteByID", mock.Anything, int64(5)).Return(nil)

	_, err := s.SignUpVerifyOTP(context.Background(), verifyInput())
	assert.ErrorIs(t, err, ErrCodeExpired)

	m.verifications.AssertExpectations(t)
	m.users.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_SignUpVerifyOTP_UsernameTaken(t *testing.T) {
	s, m := newTestUserService(t)

	m.verifications.On("GetPendingByEmailAndCode", mock.Anything, "user@example.com", "123456").
		Return(pendingVerification(time.Minute), nil)
	m.users.On("GetByUsername", mock.Anything, "newuser").Return(&domain.User{ID: 2}, nil)

	_, err := s.SignUpVerifyOTP(context.Background(), verifyInput())
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Code is left pending so a retry with a free username can still succeed.
	m.verifications.AssertNotCalled(t, "ConsumeWithTx", mock.Anything, mock.Anything, mock.Anything)
	m.verifications.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestUserService_SignUpVerifyOTP_ConsumedConcurrently(t *testing.T) {
	s, m := newTestUserService(t)

	m.verifications.On("GetPendingByEmailAndCode", mock.Anything, "user@example.com", "123456").
		Return(pendingVerification(time.Minute), nil)
	m.users.On("GetByUsername", mock.Anything, "newuser").Return(nil, domain.ErrNotFound)
	m.users.On("GetByEmail", mock.Anything, "user@example.com").Return(nil, domain.ErrNotFound)
	m.txer.On("Transaction", mock.Anything).Return(nil)
	m.verifications.On("ConsumeWithTx", mock.Anything, mock.Anything, int64(5)).Return(domain.ErrNoRowsAffected)

	_, err := s.SignUpVerifyOTP(context.Background(), verifyInput())
	assert.ErrorIs(t, err, ErrInvalidCode)

	m.users.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_SignIn(t *testing.T) {
	s, m := newTestUserService(t)

	m.users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           3,
		Username:     "alice",
		PasswordHash: "hashed:topsecret",
	}, nil)

	tokens, err := s.SignIn(context.Background(), "alice", "topsecret")
	require.NoError(t, err)
	assert.Equal(t, "token-3", tokens.AccessToken)
}

func TestUserService_SignIn_BadCredentials(t *testing.T) {
	s, m := newTestUserService(t)

	m.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)
	m.users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           3,
		PasswordHash: "hashed:topsecret",
	}, nil)

	// Unknown username and wrong password are indistinguishable to the caller.
	_, err := s.SignIn(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.SignIn(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
