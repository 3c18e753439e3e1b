package smtp

import (
	"testing"
	"time"

	"resume-forge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesTemplates(t *testing.T) {
	m, err := New(config.Config{
		SMTPHost:            "smtp.example.com",
		SMTPPort:            587,
		SMTPFrom:            "noreply@example.com",
		SMTPFromName:        "Resume Forge",
		VerificationCodeTTL: 60,
	})
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestRenderVerificationBody(t *testing.T) {
	m, err := New(config.Config{
		SMTPFrom:            "noreply@example.com",
		SMTPFromName:        "Resume Forge",
		VerificationCodeTTL: 60,
	})
	require.NoError(t, err)

	body, err := m.render("verification", VerificationData{
		Code:    "482913",
		AppName: "Resume Forge",
		TTL:     formatTTL(m.ttl),
	})
	require.NoError(t, err)
	assert.Contains(t, body, "482913")
	assert.Contains(t, body, "Resume Forge")
	assert.Contains(t, body, "expires in 1 hour")
}

func TestFormatTTL(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{time.Hour, "1 hour"},
		{2 * time.Hour, "2 hours"},
		{30 * time.Minute, "30 minutes"},
		{90 * time.Minute, "90 minutes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTTL(tt.d))
	}
}
