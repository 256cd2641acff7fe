package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skmohanty2628/Finverse-AI-Finance/internal/domain/entity"
	repo "github.com/skmohanty2628/Finverse-AI-Finance/internal/domain/repository"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/helpers"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// JobPublisher enqueues background jobs. A nil publisher disables the mail
// pipeline without touching the signup flow.
type JobPublisher interface {
	PublishJSON(ctx context.Context, v any) error
}

type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Mail   JobPublisher
	Logger *logrus.Logger
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, mail JobPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Mail: mail, Logger: logger}
}

// TokenResult carries a signed token and its expiry.
type TokenResult struct {
	Token  string
	Expiry time.Time
}

// Register creates an account and signs it in within the same call. The
// welcome email is best effort; enqueue failures are logged, never surfaced.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, TokenResult, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, TokenResult{}, err
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, TokenResult{}, ErrEmailTaken
		}
		return nil, TokenResult{}, err
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Name, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign token failed")
		}
		return nil, TokenResult{}, err
	}

	if s.Mail != nil {
		if err := s.Mail.PublishJSON(ctx, mailer.WelcomeJob(u.Email, u.Name)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}

	return u, TokenResult{Token: token, Expiry: exp}, nil
}

// Login validates email/password and issues a fresh token. Unknown emails
// still pay the bcrypt cost so response timing does not leak which addresses
// have accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.FakeCompare(password)
			return nil, TokenResult{}, ErrInvalidCredentials
		}
		return nil, TokenResult{}, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, TokenResult{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Name, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign token failed")
		}
		return nil, TokenResult{}, err
	}
	return u, TokenResult{Token: token, Expiry: exp}, nil
}

// Profile resolves the account behind an already verified token subject.
func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
