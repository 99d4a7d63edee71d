package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo is recorded on the session created at login.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	VerifyEmail(ctx context.Context, userID, hash, token string) (*response.UserResponse, error)
	ResendVerification(ctx context.Context, req *request.ResendVerificationRequest) error
	// EnsureAdmin creates the bootstrap admin when it does not exist yet.
	EnsureAdmin(ctx context.Context, admin utils.AdminConfig) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

var errInvalidCredentials = fmt.Errorf("invalid email or password: %w", utils.ErrUnauthorized)

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, utils.NewValidationError("validation failed", map[string]string{"email": "Email already registered"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Base:         entity.NewBase(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	if err := s.sendVerificationLink(user); err != nil {
		// the account exists, the user can ask for a new link
		s.log.Error("Failed to issue verification link", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	return &response.RegisterResponse{
		User:                 response.UserToResponse(user),
		VerificationRequired: true,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, errInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("account is deactivated: %w", utils.ErrForbidden)
	}

	if !user.EmailVerified() {
		return nil, fmt.Errorf("email address is not verified: %w", utils.ErrForbidden)
	}

	session := entity.NewSession(user.ID, s.sessionTTL(),
		utils.OptionalString(client.UserAgent),
		utils.OptionalString(client.IPAddress),
	)

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) sessionTTL() time.Duration {
	if s.config.Auth.SessionTTL <= 0 {
		return 24 * time.Hour
	}
	return s.config.Auth.SessionTTL
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return fmt.Errorf("session already ended: %w", utils.ErrUnauthorized)
		}
		return err
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	if user == nil {
		return nil, utils.NotFound("user")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) VerifyEmail(ctx context.Context, userID, hash, token string) (*response.UserResponse, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if user == nil {
		return nil, utils.NotFound("user")
	}

	if err := utils.CheckVerificationLink(s.config.Auth.VerifySecret, user.ID, user.Email, hash, token); err != nil {
		s.log.Warn("Rejected verification link", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("%w: %w", err, utils.ErrForbidden)
	}

	if !user.EmailVerified() {
		now := time.Now().UTC()
		if err := s.repo.User.MarkEmailVerified(ctx, user.ID, now); err != nil {
			return nil, err
		}
		user.EmailVerifiedAt = &now
		s.log.Info("Email verified", zap.String("user_id", user.ID.String()))
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) ResendVerification(ctx context.Context, req *request.ResendVerificationRequest) error {
	if err := utils.Validate(req); err != nil {
		return err
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return utils.NotFound("user")
	}
	if user.EmailVerified() {
		return utils.Invalid("email already verified")
	}

	return s.sendVerificationLink(user)
}

// sendVerificationLink logs the link; delivery by mail is left to an
// external worker reading the log stream.
func (s *authService) sendVerificationLink(user *entity.User) error {
	token, expiresAt, err := utils.NewVerificationToken(s.config.Auth.VerifySecret, user.ID, s.config.Auth.VerifyLinkTTL)
	if err != nil {
		return err
	}

	s.log.Info("Verification link issued",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("url", utils.VerificationURL(s.config.App.BaseURL, user.ID, user.Email, token)),
		zap.Time("expires_at", expiresAt),
	)
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context, admin utils.AdminConfig) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	existing, err := s.repo.User.FindByEmail(ctx, admin.Email)
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base:            entity.NewBase(),
		Name:            admin.Name,
		Email:           strings.ToLower(strings.TrimSpace(admin.Email)),
		PasswordHash:    hashedPassword,
		IsAdmin:         true,
		IsActive:        true,
		EmailVerifiedAt: &now,
	}
	if user.Name == "" {
		user.Name = "Administrator"
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return err
	}

	s.log.Info("Bootstrap admin created", zap.String("email", user.Email))
	return nil
}
