package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultSessionTTL = time.Hour
	DefaultResetTTL   = 5 * time.Minute
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of both session and reset tokens.
type Claims struct {
	PrincipalID uuid.UUID `json:"id"`
	IsAdmin     bool      `json:"isAdmin"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret     string
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

type JWTService interface {
	GenerateSessionToken(id uuid.UUID, isAdmin bool) (string, error)
	ValidateSessionToken(token string) (*Claims, error)
	// GenerateResetToken signs with secret+passwordHash, so the token dies as soon
	// as the stored hash changes.
	GenerateResetToken(id uuid.UUID, isAdmin bool, passwordHash string) (string, error)
	ValidateResetToken(token string, id uuid.UUID, passwordHash string) (*Claims, error)
}

type jwtService struct {
	cfg Config
	now func() time.Time
}

func NewJWTService(cfg Config) JWTService {
	return newJWTService(cfg, time.Now)
}

func newJWTService(cfg Config, now func() time.Time) *jwtService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = DefaultResetTTL
	}
	return &jwtService{cfg: cfg, now: now}
}

func (s *jwtService) GenerateSessionToken(id uuid.UUID, isAdmin bool) (string, error) {
	return s.sign([]byte(s.cfg.Secret), id, isAdmin, s.cfg.SessionTTL)
}

func (s *jwtService) ValidateSessionToken(token string) (*Claims, error) {
	return s.parse(token, []byte(s.cfg.Secret))
}

func (s *jwtService) GenerateResetToken(id uuid.UUID, isAdmin bool, passwordHash string) (string, error) {
	return s.sign(resetKey(s.cfg.Secret, passwordHash), id, isAdmin, s.cfg.ResetTTL)
}

func (s *jwtService) ValidateResetToken(token string, id uuid.UUID, passwordHash string) (*Claims, error) {
	claims, err := s.parse(token, resetKey(s.cfg.Secret, passwordHash))
	if err != nil {
		return nil, err
	}
	if claims.PrincipalID != id {
		return nil, fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}
	return claims, nil
}

func (s *jwtService) sign(key []byte, id uuid.UUID, isAdmin bool, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		PrincipalID: id,
		IsAdmin:     isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) parse(token string, key []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

func resetKey(secret, passwordHash string) []byte {
	return []byte(secret + passwordHash)
}
