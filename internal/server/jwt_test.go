package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforward/career-quest/internal/config"
)

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	cfg := testJWTConfig()
	cfg.ExpirationHours = expirationHours
	return NewJWTService(cfg)
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, config.DefaultJWTIssuer, claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_Expiration(t *testing.T) {
	service := setupTestJWTService(t, 1)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken(uuid.New())
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = service.ValidateToken(token)
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	other := NewJWTService(&config.JWTConfig{Secret: "another-secret-of-sufficient-size", Issuer: config.DefaultJWTIssuer, ExpirationHours: 24})
	foreign, err := other.GenerateToken(userID)
	require.NoError(t, err)

	wrongIssuer := NewJWTService(&config.JWTConfig{Secret: testJWTSecret, Issuer: "someone-else", ExpirationHours: 24})
	misissued, err := wrongIssuer.GenerateToken(userID)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.DefaultJWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.DefaultJWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", foreign},
		{"wrong issuer", misissued},
		{"unexpected algorithm", hs512},
		{"missing user", noUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()
	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	got, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.GetUserID())
}
