package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func newTestTokens(t *testing.T) *Tokens {
	t.Helper()
	tokens, err := NewTokens(secret, "portfolio-api", "portfolio-manager", 30*time.Minute)
	require.NoError(t, err)
	return tokens
}

func TestNewTokensRejectsShortSecret(t *testing.T) {
	_, err := NewTokens("short", "iss", "aud", time.Minute)
	assert.Error(t, err)

	_, err = NewTokens(secret, "iss", "aud", 0)
	assert.Error(t, err)
}

func TestIssueAndParse(t *testing.T) {
	tokens := newTestTokens(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return now }

	signed, expiresAt, err := tokens.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), expiresAt)

	userID, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "portfolio-api", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"portfolio-manager"}, claims.Audience)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueGivesUniqueTokenIDs(t *testing.T) {
	tokens := newTestTokens(t)

	first, _, err := tokens.Issue(1)
	require.NoError(t, err)
	second, _, err := tokens.Issue(1)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestIssueRejectsZeroUser(t *testing.T) {
	_, _, err := newTestTokens(t).Issue(0)
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	tokens := newTestTokens(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return now }

	signed, _, err := tokens.Issue(7)
	require.NoError(t, err)

	now = now.Add(31 * time.Minute)
	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejects(t *testing.T) {
	tokens := newTestTokens(t)
	signed, _, err := tokens.Issue(7)
	require.NoError(t, err)

	otherIssuer, err := NewTokens(secret, "elsewhere", "portfolio-manager", time.Minute)
	require.NoError(t, err)
	foreign, _, err := otherIssuer.Issue(7)
	require.NoError(t, err)

	otherSecret, err := NewTokens(strings.Repeat("x", 40), "portfolio-api", "portfolio-manager", time.Minute)
	require.NoError(t, err)
	forged, _, err := otherSecret.Issue(7)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "7",
		Issuer:    "portfolio-api",
		Audience:  jwt.ClaimStrings{"portfolio-manager"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered", signed + "a"},
		{"wrong issuer", foreign},
		{"wrong secret", forged},
		{"alg none", none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Parse(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestClaimsUserID(t *testing.T) {
	id, err := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "15"}}.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 15, id)

	_, err = Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}.UserID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
