package util

import (
	"errors"
	"testing"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-token-generation"

func TestTokenPairRoundTrip(t *testing.T) {
	userId := uuid.New()

	pair, err := GenerateTokenPair(userId, "alice", testSecret)
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.NotEmpty(t, pair.RefreshToken)

	token, parsedUserId, err := ValidateAccessToken(BearerPrefix+pair.AccessToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, pair.AccessToken, token)
	require.Equal(t, userId, parsedUserId)
}

func TestValidateAccessTokenRejects(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), "alice", testSecret)
	require.NoError(t, err)

	cases := map[string]struct {
		header  string
		secret  string
		message string
	}{
		"missing header":  {header: "", secret: testSecret, message: "No authentication token is provided"},
		"wrong scheme":    {header: "Basic abc", secret: testSecret, message: "Authentication token format is not match"},
		"empty token":     {header: "Bearer ", secret: testSecret, message: "Authentication token is empty"},
		"malformed token": {header: "Bearer not-a-jwt", secret: testSecret, message: "Authentication token is malformed"},
		"wrong secret":    {header: BearerPrefix + pair.AccessToken, secret: "another-secret", message: "Authentication token is invalid"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, userId, err := ValidateAccessToken(tc.header, tc.secret)
			require.Error(t, err)
			require.Equal(t, uuid.Nil, userId)

			var validationErr *model.ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Equal(t, constant.ERR_UNATHORIZED_ERROR, validationErr.Code)
			require.Equal(t, tc.message, validationErr.Message)
		})
	}
}

func TestValidateAccessTokenWithoutSecret(t *testing.T) {
	_, _, err := ValidateAccessToken("Bearer abc", "")
	require.ErrorIs(t, err, ErrMissingSecretKey)
}

func TestGenerateTokenIsRandom(t *testing.T) {
	first, err := GenerateToken(32)
	require.NoError(t, err)
	second, err := GenerateToken(32)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.Len(t, first, 43)
	require.Len(t, HashSHA256(first), 64)
}
