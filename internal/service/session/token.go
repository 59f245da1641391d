package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
)

const sessionTokenType = "session"

// TokenService signs session ids into the cookie value so clients cannot
// pick arbitrary session ids.
type TokenService struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *TokenService) getSecret() []byte {
	return []byte(s.secret)
}

// Issue returns a signed token for sessionID and its expiry.
func (s *TokenService) Issue(sessionID string) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	exp := issuedAt.Add(s.ttl)

	claims := jwt.MapClaims{
		"typ": sessionTokenType,
		"sid": sessionID,
		"iat": issuedAt.Unix(),
		"exp": exp.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.getSecret())
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Validate checks the signature and expiry and returns the session id.
func (s *TokenService) Validate(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return s.getSecret(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", types.ErrExpiredToken
		}
		return "", types.ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", types.ErrInvalidToken
	}

	if typ, _ := mc["typ"].(string); typ != sessionTokenType {
		return "", types.ErrInvalidToken
	}

	sid, _ := mc["sid"].(string)
	if sid == "" {
		return "", types.ErrInvalidToken
	}

	return sid, nil
}
