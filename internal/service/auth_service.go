package service

import (
	"errors"
	"time"

	"habittracker/internal/util"
	"habittracker/pkg/config"
)

var (
	ErrAuthDisabled       = errors.New("authentication is disabled")
	ErrInvalidCredentials = errors.New("invalid password")
)

// TokenSubject 单用户部署，token 的 subject 固定
const TokenSubject = "owner"

// AuthService 校验密码并签发 JWT
type AuthService struct {
	cfg config.AuthConfig
	now func() time.Time
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

func (s *AuthService) Enabled() bool {
	return s.cfg.Enabled()
}

// Login checks the password against the configured bcrypt hash and returns a JWT.
func (s *AuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrAuthDisabled
	}
	if !util.CheckPassword(password, s.cfg.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	ttl := s.cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return util.GenerateJWT(TokenSubject, s.cfg.JWTSecret, ttl, s.now())
}

// Verify validates a bearer token and returns its subject.
func (s *AuthService) Verify(token string) (string, error) {
	if !s.Enabled() {
		return "", ErrAuthDisabled
	}
	return util.ParseJWT(token, s.cfg.JWTSecret)
}
