package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/centraldesk/saascore/pkg/jwt"
	"github.com/centraldesk/saascore/pkg/logger"
	"github.com/centraldesk/saascore/pkg/tenant"
)

// Storage is what the service needs from the store; split out so handler
// tests can stub it.
type Storage interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetMembership(ctx context.Context, userID uuid.UUID) (Membership, error)
	ListMembers(ctx context.Context) ([]Membership, error)
}

// Service implements registration and login on top of the store and the
// token issuer.
type Service struct {
	storage Storage
	tokens  *jwt.Service
	log     *slog.Logger
}

func NewService(storage Storage, tokens *jwt.Service, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{storage: storage, tokens: tokens, log: log}
}

// Register creates a global user account.
func (s *Service) Register(ctx context.Context, email, name, password string) (User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	user, err := s.storage.CreateUser(ctx, email, name, hash)
	if err != nil {
		return User{}, err
	}

	s.log.InfoContext(ctx, "user registered", logger.UserID(user.ID))
	return user, nil
}

// Login authenticates a user and issues an access token.
//
// On a tenant subdomain the token is scoped to the user's membership there;
// a user without a membership in the current tenant is rejected even with
// valid credentials. On the central portal (no-tenant scope) the token
// carries identity only.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Uniform failure hides whether the email exists.
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return "", err
	}

	scope, installed := tenant.ScopeFromContext(ctx)
	if !installed || !scope.HasTenant() {
		return s.tokens.Issue(user.ID.String(), "", "")
	}

	membership, err := s.storage.GetMembership(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	s.log.InfoContext(ctx, "user logged in",
		logger.UserID(user.ID), logger.Role(membership.Role))
	return s.tokens.Issue(user.ID.String(), membership.TenantID.String(), membership.Role)
}
