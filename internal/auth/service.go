package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voice-dashboard/internal/audit"
	"voice-dashboard/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUsernameTaken      = errors.New("auth: username taken")
	ErrInvalidArgument    = errors.New("auth: invalid argument")
)

// Service handles dashboard account registration and login. Passwords
// are stored as bcrypt hashes only.
type Service struct {
	store   store.Store
	manager *Manager
	audit   *audit.Service

	clock func() time.Time
}

func NewService(st store.Store, manager *Manager, auditSvc *audit.Service) *Service {
	return &Service{store: st, manager: manager, audit: auditSvc, clock: time.Now}
}

// Register creates an account. Username uniqueness is enforced by the
// store's atomic insert; a pre-check here would race with concurrent
// registrations.
func (s *Service) Register(ctx context.Context, username, password string) (store.User, error) {
	if username == "" || password == "" {
		return store.User{}, ErrInvalidArgument
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return store.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, store.NewUser{Username: username, Password: string(hash)})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			return store.User{}, ErrUsernameTaken
		}
		return store.User{}, err
	}

	if s.audit != nil {
		_ = s.audit.LogUserRegistered(ctx, username)
	}
	return u, nil
}

// Login checks the password and issues a token pair. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (TokenPair, error) {
	if username == "" || password == "" {
		return TokenPair{}, ErrInvalidCredentials
	}

	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	return s.manager.IssuePair(s.clock(), u.ID, u.Username)
}
