package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-unit-tests-only!",
		AccessTokenExpiration: expiration,
		Issuer:                "venue-backend-test",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := newTestService(15 * time.Minute)
	venueID := uuid.New()
	userID := uuid.New()

	token, err := service.GenerateToken(GenerateTokenInput{
		VenueID:  venueID,
		UserID:   userID,
		Username: "manager",
		Role:     "manager",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, time.Minute)
}

func TestJWTService_ValidateToken(t *testing.T) {
	service := newTestService(15 * time.Minute)
	venueID := uuid.New()
	userID := uuid.New()

	t.Run("round-trips claims", func(t *testing.T) {
		token, err := service.GenerateToken(GenerateTokenInput{
			VenueID:  venueID,
			UserID:   userID,
			Username: "manager",
			Role:     "manager",
		})
		require.NoError(t, err)

		claims, err := service.ValidateToken(token.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, venueID.String(), claims.VenueID)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "manager", claims.Username)

		gotVenue, err := claims.GetVenueUUID()
		require.NoError(t, err)
		assert.Equal(t, venueID, gotVenue)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-value!",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "venue-backend-test",
		})
		token, err := other.GenerateToken(GenerateTokenInput{
			VenueID: venueID,
			UserID:  userID,
		})
		require.NoError(t, err)

		_, err = service.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		token, err := expired.GenerateToken(GenerateTokenInput{
			VenueID: venueID,
			UserID:  userID,
		})
		require.NoError(t, err)

		_, err = service.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
