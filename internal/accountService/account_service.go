package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"auction-site/internal/biddingerrors"
	"auction-site/internal/models"
	"auction-site/internal/repository"
	"auction-site/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs session tokens for authenticated users
type TokenIssuer interface {
	Generate(user models.User) (string, error)
}

// Registration is the input for Register
type Registration struct {
	Username     string `validate:"required,max=150"`
	Email        string `validate:"omitempty,email,max=254"`
	Password     string `validate:"required"`
	Confirmation string
}

// Session is a logged-in user plus the token that proves it
type Session struct {
	User  models.User
	Token string
}

// Option configures an AccountService
type Option func(*AccountService)

// WithBcryptCost overrides the password hashing cost
func WithBcryptCost(cost int) Option {
	return func(s *AccountService) {
		s.cost = cost
	}
}

// AccountService handles registration and login
type AccountService struct {
	repo     repository.AuctionDB
	tokens   TokenIssuer
	validate *validator.Validate
	cost     int
}

// NewAccountService creates a new AccountService instance
func NewAccountService(repo repository.AuctionDB, tokens TokenIssuer, opts ...Option) *AccountService {
	s := &AccountService{
		repo:     repo,
		tokens:   tokens,
		validate: validator.New(),
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and logs them in
func (s *AccountService) Register(ctx context.Context, in Registration) (Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validate.Struct(in); err != nil {
		return Session{}, fmt.Errorf("service: %w - username and password are required, email must be valid", biddingerrors.ErrInvalidInput)
	}
	if in.Password != in.Confirmation {
		return Session{}, fmt.Errorf("service: register %q: %w", in.Username, biddingerrors.ErrPasswordMismatch)
	}

	_, err := s.repo.GetUserByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return Session{}, fmt.Errorf("service: register %q: %w", in.Username, biddingerrors.ErrDuplicateUsername)
	case !errors.Is(err, biddingerrors.ErrUserNotFound):
		return Session{}, fmt.Errorf("service: failed to look up user %q: %w", in.Username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Session{}, fmt.Errorf("service: failed to hash password: %w", err)
	}

	user := models.User{Username: in.Username, Email: in.Email, Password: string(hash)}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return Session{}, fmt.Errorf("service: failed to create user %q: %w", in.Username, err)
	}

	utils.Info("user registered", map[string]any{"user_id": user.ID, "username": user.Username})
	return s.session(user)
}

// Login checks the credentials and issues a new session token
func (s *AccountService) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, fmt.Errorf("service: login: %w", biddingerrors.ErrInvalidCredentials)
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, biddingerrors.ErrUserNotFound) {
		return Session{}, fmt.Errorf("service: login %q: %w", username, biddingerrors.ErrInvalidCredentials)
	}
	if err != nil {
		return Session{}, fmt.Errorf("service: failed to look up user %q: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return Session{}, fmt.Errorf("service: login %q: %w", username, biddingerrors.ErrInvalidCredentials)
	}

	return s.session(user)
}

func (s *AccountService) session(user models.User) (Session, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return Session{}, fmt.Errorf("service: failed to issue token: %w", err)
	}
	return Session{User: user, Token: token}, nil
}
