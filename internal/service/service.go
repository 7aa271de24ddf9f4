package service

import (
	"context"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/auth"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/email"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/hash"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/otp"

	"github.com/redis/go-redis/v9"
)

type Services struct {
	Users     Users
	Expenses  Expenses
	Analytics Analytics
	Emails    Emails
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	EmailSender  email.Sender
	Cache        redis.UniversalClient
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	emails := newEmailService(deps.EmailSender, deps.Config.Email, deps.Config.Auth.VerificationCodeTTL)
	analytics := newAnalyticsService(deps.Repos.Expenses, deps.Cache, deps.Config.Cache.AnalyticsTTL)

	return &Services{
		Users: newUserService(
			deps.Repos.Users,
			deps.Repos.Verifications,
			deps.Repos.Txer,
			deps.Hasher,
			deps.TokenManager,
			deps.OtpGenerator,
			emails,
			deps.Config.Auth,
		),
		Expenses:  newExpenseService(deps.Repos.Expenses, analytics),
		Analytics: analytics,
		Emails:    emails,
	}
}

type SignUpVerifyInput struct {
	Email    string
	Code     string
	Username string
	Password string
}

type Tokens struct {
	AccessToken string
	AccessTTL   time.Duration
}

type Users interface {
	SignUpRequestOTP(ctx context.Context, email string) error
	SignUpVerifyOTP(ctx context.Context, input SignUpVerifyInput) (*Tokens, error)
	SignIn(ctx context.Context, username string, password string) (*Tokens, error)
	GetOneByID(ctx context.Context, id int64) (*domain.User, error)
}

type ExpenseInput struct {
	SpentAt  time.Time
	Category string
	Amount   float64
	Note     string
}

type Expenses interface {
	Create(ctx context.Context, userID int64, input ExpenseInput) (*domain.Expense, error)
	List(ctx context.Context, userID int64, filters domain.ExpenseFilters) ([]domain.Expense, error)
	Update(ctx context.Context, userID int64, id int64, input ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, userID int64, id int64) error
}

type Analytics interface {
	Summary(ctx context.Context, userID int64) (*domain.AnalyticsSummary, error)
	Invalidate(ctx context.Context, userID int64)
}

type VerificationEmailInput struct {
	Email            string
	VerificationCode string
}

type Emails interface {
	SendVerificationEmail(input VerificationEmailInput) error
}
