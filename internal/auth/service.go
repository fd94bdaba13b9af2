package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/multierr"

	"github.com/MajQs/WineLog/internal/users"
	pkgauth "github.com/MajQs/WineLog/pkg/auth"
	"github.com/MajQs/WineLog/pkg/auth/session"
	"github.com/MajQs/WineLog/pkg/config"
	"github.com/MajQs/WineLog/pkg/db"
	"github.com/MajQs/WineLog/pkg/db/models"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	resetTokenTTL             = time.Hour
)

// Service defines the account lifecycle operations.
type Service interface {
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResponse, error)
	Login(ctx context.Context, cmd LoginCommand) (*AuthResponse, error)
	Refresh(ctx context.Context, cmd RefreshCommand) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
	// ForgotPassword issues a single-use reset token. It reports success even
	// for unknown emails so callers cannot probe for accounts; the returned
	// token is empty in that case.
	ForgotPassword(ctx context.Context, cmd ForgotPasswordCommand) (string, error)
	ResetPassword(ctx context.Context, cmd ResetPasswordCommand) error
	DeleteAccount(ctx context.Context, userID uuid.UUID, accessID string, cmd DeleteAccountCommand) error
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type resetStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
	PasswordResetKey(token string) string
}

type service struct {
	users       userRepository
	session     sessionManager
	resets      resetStore
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService wires auth dependencies.
func NewService(userRepo userRepository, sess sessionManager, resets resetStore, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if userRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user repository required")
	}
	if sess == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session manager required")
	}
	if resets == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reset token store required")
	}
	return &service{
		users:       userRepo,
		session:     sess,
		resets:      resets,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, cmd RegisterCommand) (*AuthResponse, error) {
	email := normalizeEmail(cmd.Email)

	hash, err := security.HashPassword(cmd.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{Email: email, PasswordHash: hash})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	pair, err := s.mintPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: users.FromModel(user), TokenPair: *pair}, nil
}

func (s *service) Login(ctx context.Context, cmd LoginCommand) (*AuthResponse, error) {
	email := normalizeEmail(cmd.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	ok, err := security.VerifyPassword(cmd.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	user.LastLoginAt = &now

	pair, err := s.mintPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: users.FromModel(user), TokenPair: *pair}, nil
}

// Refresh accepts the expired access token plus its refresh token and rotates
// both. The old session is revoked as part of the rotation.
func (s *service) Refresh(ctx context.Context, cmd RefreshCommand) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, cmd.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAuthToken, "invalid access token")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, cmd.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Email:  claims.Email,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: newRefresh,
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) ForgotPassword(ctx context.Context, cmd ForgotPasswordCommand) (string, error) {
	email := normalizeEmail(cmd.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}
	if err := s.resets.Set(ctx, s.resets.PasswordResetKey(token), user.ID.String(), resetTokenTTL); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reset token")
	}
	return token, nil
}

func (s *service) ResetPassword(ctx context.Context, cmd ResetPasswordCommand) error {
	stored, err := s.resets.GetDel(ctx, s.resets.PasswordResetKey(cmd.Token))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume reset token")
	}

	userID, err := uuid.Parse(stored)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
	}

	hash, err := security.HashPassword(cmd.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return nil
}

// DeleteAccount removes the user after re-checking the password. Batches,
// notes and ratings go with the account through schema cascades.
func (s *service) DeleteAccount(ctx context.Context, userID uuid.UUID, accessID string, cmd DeleteAccountCommand) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	ok, err := security.VerifyPassword(cmd.Password, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	rows, err := s.users.Delete(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	if accessID != "" {
		if revokeErr := s.session.Revoke(ctx, accessID); revokeErr != nil {
			err = multierr.Append(err, revokeErr)
		}
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) mintPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessID := session.NewAccessID()

	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refresh, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
