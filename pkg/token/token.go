package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens stay valid for their full lifetime. There is no revocation list,
// so anything that must reflect current account state re-checks the user
// document per request.
const Validity = 7 * 24 * time.Hour

const issuer = "campusarena"

var (
	ErrExpiredToken         = errors.New("token expired")
	ErrInvalidToken         = errors.New("invalid token signature")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Claims is the decoded payload of a bearer token.
type Claims struct {
	UserID         string   `json:"uid"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	SecondaryRoles []string `json:"secondaryRoles,omitempty"`
	CollegeID      string   `json:"collegeId"`
	FullName       string   `json:"fullName"`
	EmailVerified  bool     `json:"emailVerified"`
	jwt.RegisteredClaims
}

// Service signs and verifies bearer tokens with a server-held secret.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs the claims with HS256, valid for seven days from now.
func (s *Service) Issue(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(Validity)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    issuer,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify parses and validates a bearer token and returns its claims
// unchanged. Expired tokens fail with ErrExpiredToken, bad signatures with
// ErrInvalidToken, and anything else malformed with ErrAuthenticationFailed.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidToken
		default:
			return nil, ErrAuthenticationFailed
		}
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrAuthenticationFailed
	}
	return claims, nil
}
