package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
	"github.com/vidshare/platform/internal/pkg/metrics"
)

// dummyHash is compared against when the username is unknown so that a login
// for a missing user costs the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("vidshare/no-such-user"), bcrypt.DefaultCost)
	return h
})

type sessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and session handling.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret []byte
	tokenTTL  time.Duration
	cost      int
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		cost:      bcrypt.DefaultCost,
		log:       log,
		now:       time.Now,
	}
}

// Register creates a user with the default role and returns its id.
// Username and email are stored trimmed.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", domain.Invalid("username, email and password are required")
	}
	if strings.EqualFold(username, domain.AnonymousAuthor) {
		return "", domain.Invalid("username is reserved")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.log.Warn().Str("username", username).Msg("duplicate registration attempt")
		}
		return "", err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created.ID, nil
}

// Login verifies the credentials and opens a session. An unknown username and
// a wrong password yield the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.Invalid("username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("session_id", session.Identity.SessionID).Msg("session opened")
	return session, nil
}

// Logout terminates the actor's session. It is a no-op without a session.
func (s *AuthService) Logout(ctx context.Context, actor *domain.Identity) error {
	if actor == nil {
		return nil
	}
	return terminateSession(ctx, s.sessions, actor, s.now())
}

// Verify parses a session token and rejects it when it is malformed, expired
// or revoked.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.ID == "" || claims.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrUnauthenticated
	}

	identity := &domain.Identity{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      domain.Role(claims.Role),
		SessionID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.Session, error) {
	now := s.now()
	identity := &domain.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		SessionID: uuid.NewString(),
		ExpiresAt: now.Add(s.tokenTTL).Truncate(time.Second),
	}

	claims := sessionClaims{
		UserID:   identity.UserID,
		Username: identity.Username,
		Role:     string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        identity.SessionID,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(identity.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &ports.Session{Token: token, Identity: identity}, nil
}

// terminateSession revokes the actor's session for the rest of its lifetime.
func terminateSession(ctx context.Context, sessions ports.SessionStore, actor *domain.Identity, now time.Time) error {
	if actor.SessionID == "" {
		return nil
	}
	ttl := actor.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return nil
	}
	if err := sessions.Revoke(ctx, actor.SessionID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
