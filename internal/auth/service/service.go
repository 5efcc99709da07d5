// Package service implements registration and login for the auth module.
package service

import (
	"context"
	"strings"
	"time"

	"devis_backend/internal/auth/repository"
	"devis_backend/internal/auth/transport"
	"devis_backend/internal/events"
	"devis_backend/platform/apperr"
	"devis_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenType = "access"

// Config is the configuration surface the auth service needs.
type Config interface {
	GetJWTAccessSecret() string
	GetAccessTokenTTL() time.Duration
	GetDefaultQuotePrefix() string
	GetDefaultDisplayLocale() string
}

// Service implements registration and login.
type Service struct {
	repo *repository.Repository
	cfg  Config
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo *repository.Repository, cfg Config, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// Register creates a business and its owner account, then issues a token.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user, err := s.repo.CreateBusinessWithOwner(ctx, strings.TrimSpace(req.BusinessName),
		s.cfg.GetDefaultQuotePrefix(), s.cfg.GetDefaultDisplayLocale(),
		strings.TrimSpace(req.Name), email, string(hash))
	if err != nil {
		return nil, err
	}

	s.log.AuthEvent("register", email, true, "")
	s.bus.Publish(ctx, events.BusinessRegistered{
		BaseEvent:  events.NewBaseEvent(),
		BusinessID: user.BusinessID,
		UserID:     user.ID,
		Email:      user.Email,
	})

	return s.buildAuthResponse(user)
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.AuthEvent("login", email, false, "bad password")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	s.log.AuthEvent("login", email, true, "")
	return s.buildAuthResponse(user)
}

func (s *Service) buildAuthResponse(user *repository.User) (*transport.AuthResponse, error) {
	ttl := s.cfg.GetAccessTokenTTL()
	accessToken, err := s.signJWT(user, ttl)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	return &transport.AuthResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(ttl.Seconds()),
		User: transport.UserResponse{
			ID:         user.ID,
			BusinessID: user.BusinessID,
			Name:       user.Name,
			Email:      user.Email,
		},
	}, nil
}

func (s *Service) signJWT(user *repository.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"tenant_id": user.BusinessID.String(),
		"type":      accessTokenType,
		"exp":       now.Add(ttl).Unix(),
		"iat":       now.Unix(),
	}
	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
