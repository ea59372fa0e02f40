package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	valid, err := GenerateToken("user-1", "secret", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken("user-1", "secret", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name           string
		token          string
		secret         string
		expectedUserID string
		expectedError  bool
	}{
		{name: "Valid token", token: valid, secret: "secret", expectedUserID: "user-1"},
		{name: "Wrong secret", token: valid, secret: "other", expectedError: true},
		{name: "Expired token", token: expired, secret: "secret", expectedError: true},
		{name: "Garbage", token: "not.a.token", secret: "secret", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := ParseToken(tt.token, tt.secret)

			assert.Equal(t, tt.expectedUserID, userID)
			if tt.expectedError {
				assert.ErrorIs(t, err, ErrInvalidToken)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
