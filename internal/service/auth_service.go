package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/repository"
	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/jwt"
	"go-inventory-qr/pkg/logger"
	"go-inventory-qr/pkg/validator"
)

const (
	msgInvalidCredentials = "invalid username or password"
	msgPendingApproval    = "your registration is awaiting administrator approval"
)

type AuthService interface {
	Register(ctx context.Context, username, password, confirm string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	Logout(ctx context.Context, userID uint) error
	Authenticate(ctx context.Context, token string) (*model.User, error)
	ResetPassword(ctx context.Context, username, newPassword string) error
}

type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      model.UserResponse `json:"user"`
}

type registration struct {
	Username string `validate:"notblank,max=80"`
	Password string `validate:"notblank"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	logg     *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, logg *logger.Logger) AuthService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logg:     logg,
	}
}

// Register creates an account waiting for approval.
func (s *authService) Register(ctx context.Context, username, password, confirm string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if errs := validator.ValidateStruct(registration{Username: username, Password: password}); len(errs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, registrationMessage(errs[0]))
	}
	if password != confirm {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
	}
	if !isNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check username")
	}

	user := &model.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash password")
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, writeError(err, "username already taken")
	}
	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user registered, awaiting approval")
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgInvalidCredentials)
	}

	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgInvalidCredentials)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load user")
	}

	// 2. Verify password
	if !user.CheckPassword(password) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgInvalidCredentials)
	}

	// 3. Check approval
	if !user.IsActive() {
		return nil, pkgerrors.New(pkgerrors.CodePendingApproval, msgPendingApproval)
	}

	// 4. Single Session: Generate New Token Version
	version := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(ctx, user.ID, version); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update session")
	}
	user.TokenVersion = version

	// 5. Generate JWT token with TokenVersion
	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.IsAdmin, version)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to generate token")
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.Expiration()).UTC(),
		User:      user.ToResponse(),
	}, nil
}

// Logout invalidates every token issued to the user.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	if err := s.userRepo.UpdateTokenVersion(ctx, userID, uuid.New().String()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to end session")
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	// 1. Validate JWT token
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid or expired session")
	}

	// 2. Find user by ID from token claims
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load user")
	}

	// 3. Check against DB for strict session (TokenVersion)
	if user.TokenVersion == "" || user.TokenVersion != claims.TokenVersion {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	// 4. Check if user is still active
	if !user.IsActive() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account is not active")
	}
	return user, nil
}

// ResetPassword sets a new password and ends every open session.
func (s *authService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "password cannot be empty")
	}
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return lookupError(err, "user not found")
	}
	if err := user.SetPassword(newPassword); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash password")
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update password")
	}
	return s.Logout(ctx, user.ID)
}

func registrationMessage(e *validator.ErrorResponse) string {
	switch {
	case e.FailedField == "registration.Username" && e.Tag == "max":
		return "username is too long"
	case e.FailedField == "registration.Username":
		return "username is required"
	default:
		return "password is required"
	}
}
