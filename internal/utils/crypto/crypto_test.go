package crypto

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password123", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Password123", hash)

	assert.NoError(t, CheckPassword("Password123", hash))
	assert.Error(t, CheckPassword("wrong-password", hash))
}

func TestIsStrong(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"mixed case", "Password123", true},
		{"lowercase only", "secret123", true},
		{"uppercase only", "SECRET123", true},
		{"too short", "Pa1", false},
		{"no digit", "PasswordABC", false},
		{"no letter", "12345678", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrong(tt.password))
		})
	}
}

func TestVerificationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := VerificationCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
		seen[code] = true
	}
	// 50 draws from a 900k space should essentially never collide down to one value.
	assert.Greater(t, len(seen), 1)
}
