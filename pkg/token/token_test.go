package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService(testSecret)

	issued := Claims{
		UserID:         "usr-1",
		Email:          "maria@college.edu",
		Role:           "organizer",
		SecondaryRoles: []string{"score_reporter"},
		CollegeID:      "CS2021042",
		FullName:       "Maria Ortega",
		EmailVerified:  true,
	}

	tok, err := svc.Issue(issued)
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, issued.UserID, claims.UserID)
	assert.Equal(t, issued.Email, claims.Email)
	assert.Equal(t, issued.Role, claims.Role)
	assert.Equal(t, issued.SecondaryRoles, claims.SecondaryRoles)
	assert.Equal(t, issued.CollegeID, claims.CollegeID)
	assert.Equal(t, issued.FullName, claims.FullName)
	assert.Equal(t, issued.EmailVerified, claims.EmailVerified)
}

func TestIssueSetsValidityWindow(t *testing.T) {
	svc := NewService(testSecret)

	tok, err := svc.Issue(Claims{UserID: "usr-1"})
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)

	window := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	assert.Equal(t, Validity, window)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService(testSecret)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "usr-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-Validity)),
		},
	})
	tokenStr, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := NewService(testSecret)

	tok, err := NewService("other-secret").Issue(Claims{UserID: "usr-1"})
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewService(testSecret)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
