package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		AppPort:             5000,
		BcryptCost:          12,
		AuthRatePerMin:      10,
		LogLevel:            "info",
		LogFormat:           "json",
		MongoURI:            "mongodb://localhost:27017",
		MongoDBName:         "resumeforge",
		JWTSecret:           "super-secret-jwt-key-with-32-plus-characters",
		JWTAlgorithm:        "HS256",
		TokenMinutes:        60,
		VerificationCodeTTL: 60,
		MaxProfileImage:     5_000_000,
		ExportTimeoutSec:    60,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing mongo uri",
			mutate:  func(c *Config) { c.MongoURI = "" },
			wantErr: "MONGO_URI cannot be empty",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET cannot be empty",
		},
		{
			name:    "short jwt secret for HS256",
			mutate:  func(c *Config) { c.JWTSecret = "too-short" },
			wantErr: "JWT_SECRET must be at least 32 characters for HS256",
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(c *Config) { c.BcryptCost = 4 },
			wantErr: "BCRYPT_COST must be between 10 and 16",
		},
		{
			name:    "unsupported jwt algorithm",
			mutate:  func(c *Config) { c.JWTAlgorithm = "none" },
			wantErr: "JWT_ALGORITHM must be either HS256 or RS256",
		},
		{
			name:    "zero token lifetime",
			mutate:  func(c *Config) { c.TokenMinutes = 0 },
			wantErr: "TOKEN_MINUTES must be greater than 0",
		},
		{
			name:    "zero verification code ttl",
			mutate:  func(c *Config) { c.VerificationCodeTTL = 0 },
			wantErr: "VERIFICATION_CODE_TTL_MINUTES must be greater than 0",
		},
		{
			name:    "zero profile image ceiling",
			mutate:  func(c *Config) { c.MaxProfileImage = 0 },
			wantErr: "MAX_PROFILE_IMAGE_BYTES must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	ResetCache()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "super-secret-jwt-key-with-32-plus-characters")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.AppPort)
	assert.Equal(t, 60, cfg.TokenMinutes)
	assert.Equal(t, 60, cfg.VerificationCodeTTL)
	assert.Equal(t, 5_000_000, cfg.MaxProfileImage)
	assert.Equal(t, "resumeforge", cfg.MongoDBName)

	ResetCache()
}

func TestLoadCaches(t *testing.T) {
	ResetCache()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "super-secret-jwt-key-with-32-plus-characters")

	first, err := Load()
	require.NoError(t, err)

	// A changed env var must not affect the cached config.
	t.Setenv("APP_PORT", "9999")
	second, err := Load()
	require.NoError(t, err)
	assert.Equal(t, first.AppPort, second.AppPort)

	ResetCache()
}
