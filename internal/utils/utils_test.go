package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Classic Shirt", "classic-shirt"},
		{"  Premium!! Leather--Bag  ", "premium-leather-bag"},
		{"Déjà Vu", "d-j-vu"},
		{"UPPER case 123", "upper-case-123"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name))
	}
}

func TestGenerateReferralCode(t *testing.T) {
	pattern := regexp.MustCompile(`^RF[A-Z0-9]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateReferralCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes should not repeat every time")
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := GenerateToken(secret, userID, time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("secret-b", token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit                      string
		wantPage, wantLimit, wantOffset int
	}{
		{"", "", 1, 20, 0},
		{"1", "20", 1, 20, 0},
		{"2", "10", 2, 10, 10},
		{"0", "-5", 1, 20, 0},
		{"abc", "xyz", 1, 20, 0},
		{"5", "50", 5, 50, 200},
	}

	for _, tt := range tests {
		pg := NewPagination(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, pg.Page)
		assert.Equal(t, tt.wantLimit, pg.Limit)
		assert.Equal(t, tt.wantOffset, pg.Offset)
	}
}

func TestOTPHashRoundTrip(t *testing.T) {
	hash, err := HashOTP("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, CheckOTP(hash, "123456"))
	assert.False(t, CheckOTP(hash, "654321"))
}
