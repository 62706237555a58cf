package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
	"github.com/oksasatya/complaint-desk/internal/domain/entity"
	"github.com/oksasatya/complaint-desk/pkg/helpers"
)

// Revoker is the token denylist. It is optional; without it logout is a
// client-side concern only.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	Credentials *CredentialStore
	JWT         *helpers.JWTManager
	Revocations Revoker
	AdminEmail  string
	Logger      *logrus.Logger
}

func NewAuthService(creds *CredentialStore, jwt *helpers.JWTManager, revocations Revoker, adminEmail string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Credentials: creds,
		JWT:         jwt,
		Revocations: revocations,
		AdminEmail:  adminEmail,
		Logger:      logger,
	}
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token string
	User  *entity.User
	Role  entity.Role
}

// Register creates the account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (string, error) {
	u, err := s.Credentials.Register(ctx, fullName, email, password)
	if err != nil {
		return "", err
	}
	token, _, err := s.JWT.Issue(u.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return token, nil
}

// Login never reveals whether the email exists: an unknown email and a wrong
// password both yield apperror.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Credentials.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !s.Credentials.VerifyPassword(password, u.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	token, _, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, User: u, Role: entity.RoleFor(u, s.AdminEmail)}, nil
}

// Authenticate turns a raw token into claims.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*helpers.Claims, error) {
	if token == "" {
		return nil, apperror.ErrUnauthenticated
	}
	claims, err := s.JWT.Verify(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	if s.Revocations != nil {
		revoked, err := s.Revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apperror.ErrInvalidToken
		}
	}
	return claims, nil
}

// Logout denylists the token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *helpers.Claims) error {
	if s.Revocations == nil || claims == nil {
		return nil
	}
	return s.Revocations.Revoke(ctx, claims.ID, s.JWT.Remaining(claims))
}

// RequireAdmin loads the caller and checks the configured admin email.
func (s *AuthService) RequireAdmin(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Credentials.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("User")
	}
	if !entity.IsAdmin(u, s.AdminEmail) {
		return nil, apperror.ErrForbidden
	}
	return u, nil
}
