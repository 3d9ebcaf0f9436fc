package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/finlight/dashboard-be/internal/models"
	"github.com/finlight/dashboard-be/internal/storage"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Service orchestrates hasher, codec, and user repository for the login,
// signup, and logout flows. Handlers own the cookie: it is set only after a
// token has been fully issued here.
type Service struct {
	store  storage.UserStore
	hasher *PasswordHasher
	codec  *TokenCodec
	now    func() time.Time
}

// NewService constructs the auth use cases.
func NewService(store storage.UserStore, hasher *PasswordHasher, codec *TokenCodec) *Service {
	return &Service{store: store, hasher: hasher, codec: codec, now: time.Now}
}

// Login verifies credentials and issues a session. Every failure path except
// repository breakage reports the same generic credentials error, so callers
// cannot distinguish an unknown email from a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, SessionClaims, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, SessionClaims{}, "", NewAuthenticationError()
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, SessionClaims{}, "", NewAuthenticationError()
		}
		return models.User{}, SessionClaims{}, "", NewInfrastructureError(err)
	}

	if err := s.hasher.Compare(password, user.PasswordHash); err != nil {
		return models.User{}, SessionClaims{}, "", err
	}

	claims, token, err := s.codec.Issue(user.ID, user.Role, s.now().UTC())
	if err != nil {
		return models.User{}, SessionClaims{}, "", NewInfrastructureError(err)
	}
	return user, claims, token, nil
}

// Signup validates and persists a new account, then issues a session so the
// user lands logged in.
func (s *Service) Signup(ctx context.Context, email, username, password string) (models.User, SessionClaims, string, error) {
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)

	if fields := validateSignup(email, username, password); len(fields) > 0 {
		return models.User{}, SessionClaims{}, "", NewValidationError(fields)
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return models.User{}, SessionClaims{}, "", NewConflictError("email")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, SessionClaims{}, "", NewInfrastructureError(err)
	}
	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return models.User{}, SessionClaims{}, "", NewConflictError("username")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, SessionClaims{}, "", NewInfrastructureError(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, SessionClaims{}, "", err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		// The unique index is the authority; the pre-checks above only
		// improve the error message under no contention.
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, SessionClaims{}, "", NewConflictError("email")
		}
		return models.User{}, SessionClaims{}, "", NewInfrastructureError(err)
	}

	claims, token, err := s.codec.Issue(created.ID, created.Role, s.now().UTC())
	if err != nil {
		return models.User{}, SessionClaims{}, "", NewInfrastructureError(err)
	}
	return created, claims, token, nil
}

// Logout discards the session cookie. Deleting an absent cookie is not an
// error, so logout is idempotent.
func (s *Service) Logout(cookies CookieTransport) {
	cookies.Delete(SessionCookieName)
}

// NormalizeEmail applies the one canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignup(email, username, password string) map[string]string {
	fields := map[string]string{}
	if email == "" || !emailPattern.MatchString(email) {
		fields["email"] = "a valid email is required"
	}
	if utf8.RuneCountInString(username) < 3 {
		fields["username"] = "must be at least 3 characters"
	}
	if len(password) < 8 || !utf8.ValidString(password) {
		fields["password"] = "must be at least 8 characters"
	}
	return fields
}
