package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/status-im/market-gateway/config"
)

var (
	// ErrInvalidCredentials is returned by Issue when the username or
	// password does not match the configured demo principal
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidToken is returned by Verify for malformed tokens or
	// tokens with a bad signature
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrExpiredToken is returned by Verify for tokens past their expiry
	ErrExpiredToken = errors.New("auth: token expired")
)

// Service issues and verifies bearer tokens for the single configured
// principal. Tokens are HS256-signed and valid for the configured TTL;
// there is no revocation, validity is signature + expiry only.
type Service struct {
	secret       []byte
	ttl          time.Duration
	username     string
	passwordHash []byte

	// now is replaceable in tests
	now func() time.Time
}

// NewService creates a token service from the injected settings. The demo
// password is hashed once here so Issue never compares plaintext.
func NewService(cfg config.AuthSettings) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hashing demo password: %w", err)
	}

	return &Service{
		secret:       []byte(cfg.SecretKey),
		ttl:          cfg.TokenTTL,
		username:     cfg.DemoUsername,
		passwordHash: hash,
		now:          time.Now,
	}, nil
}

// Issue authenticates the credentials and returns a signed token embedding
// the principal, issued-at and expiry
func (s *Service) Issue(username, password string) (string, error) {
	if username != s.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the embedded principal
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
