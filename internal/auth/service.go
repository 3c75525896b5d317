package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
	"github.com/2beens/trainingdiary/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth_test

type usersRepo interface {
	Add(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type sessionStore interface {
	Create(ctx context.Context, token string, identity Identity, createdAt time.Time) error
	Get(ctx context.Context, token string, now time.Time) (*Identity, error)
	Delete(ctx context.Context, token string) error
	ScanAndClean(ctx context.Context, now time.Time) int
}

// Session is the result of a successful sign in.
type Session struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}

// Service is the identity provider: email and password accounts with
// session tokens.
type Service struct {
	users    usersRepo
	sessions sessionStore
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
	Now            func() time.Time
}

func NewService(users usersRepo, sessions sessionStore) *Service {
	return &Service{
		users:          users,
		sessions:       sessions,
		RandStringFunc: pkg.GenerateRandomString,
		Now:            time.Now,
	}
}

func (s *Service) SignUp(ctx context.Context, email, password string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.signUp")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.Now().UTC(),
	}
	if err := s.users.Add(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("add user: %w", err)
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	log.Infof("new user signed up: %s", user.ID)

	return s.newSession(ctx, Identity{UserID: user.ID, Email: user.Email})
}

func (s *Service) SignIn(ctx context.Context, email, password string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.signIn")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	span.SetAttributes(attribute.String("user.id", user.ID))

	return s.newSession(ctx, Identity{UserID: user.ID, Email: user.Email})
}

func (s *Service) newSession(ctx context.Context, identity Identity) (*Session, error) {
	token, err := s.RandStringFunc(35)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.sessions.Create(ctx, token, identity, s.Now()); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Session{
		Token:    token,
		Identity: identity,
	}, nil
}

func (s *Service) SignOut(ctx context.Context, token string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.signOut")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if token == "" {
		return ErrNotLoggedIn
	}
	return s.sessions.Delete(ctx, token)
}

// Identify resolves a session token to its user. ErrNotLoggedIn when the
// token is unknown or the session expired.
func (s *Service) Identify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return s.sessions.Get(ctx, token, s.Now())
}

func (s *Service) ScanAndClean(ctx context.Context) int {
	return s.sessions.ScanAndClean(ctx, s.Now())
}
