package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TTL_TEST", "24")
	assert.Equal(t, 24, getEnvInt("TTL_TEST", 168))

	t.Setenv("TTL_TEST", "not-a-number")
	assert.Equal(t, 168, getEnvInt("TTL_TEST", 168))

	assert.Equal(t, 10, getEnvInt("TTL_TEST_UNSET", 10))
}

func TestLoadAppliesTimeUnits(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL_HOURS", "24")
	t.Setenv("OTP_TTL_MINUTES", "5")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.TokenExpires)
	assert.Equal(t, 5*time.Minute, cfg.OTPExpires)
}
