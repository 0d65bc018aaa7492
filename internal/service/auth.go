package service

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeapi/internal/apperrors"
	"storeapi/internal/crypto"
	"storeapi/internal/models"
	"storeapi/internal/notifier"
	"storeapi/internal/repository"
	"storeapi/internal/token"
)

// TokenPair is returned by a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput carries the already-validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(input RegisterInput) (*models.User, error)
	Login(email, password string) (*TokenPair, error)
	Refresh(refreshToken string) (string, error)
}

type authService struct {
	users    repository.UserRepository
	hasher   *crypto.PasswordHasher
	tokens   *token.Service
	notifier notifier.Notifier
	logger   *zap.Logger
}

func NewAuthService(users repository.UserRepository, hasher *crypto.PasswordHasher, tokens *token.Service, notify notifier.Notifier, logger *zap.Logger) AuthService {
	return &authService{users: users, hasher: hasher, tokens: tokens, notifier: notify, logger: logger}
}

// Register creates a user with a freshly generated user_id and a hashed
// password. No tokens are issued at registration. A taken email surfaces as
// DuplicateEmail; any other store failure propagates as a server error.
func (s *authService) Register(input RegisterInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleRegular
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		UserID:       uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.UserID), zap.String("role", user.Role))
	if s.notifier != nil {
		s.notifier.Notify("New user registered: " + user.Email)
	}
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair. An
// unknown email and a wrong password return the identical error, and the
// unknown-email path still performs a hash verification so the two cases
// are also indistinguishable by timing.
func (s *authService) Login(email, password string) (*TokenPair, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.hasher.Verify(password, crypto.DummyHash)
			return nil, apperrors.ErrAuthenticationFailed
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrAuthenticationFailed
	}

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		s.logger.Error("Failed to issue access token", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user)
	if err != nil {
		s.logger.Error("Failed to issue refresh token", zap.Error(err))
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The role
// is re-read from the user record rather than trusted from old claims, so a
// role change takes effect at the next refresh. The refresh token itself is
// not rotated.
func (s *authService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return "", apperrors.New(apperrors.KindAuthentication, "invalid or expired refresh token")
	}

	user, err := s.users.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.New(apperrors.KindAuthentication, "invalid or expired refresh token")
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return "", err
	}

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		s.logger.Error("Failed to issue access token", zap.Error(err))
		return "", err
	}

	return accessToken, nil
}
