package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTokenFormat(t *testing.T) {
	assert.True(t, IsValidTokenFormat("ABC123"))
	assert.True(t, IsValidTokenFormat("QQQ001"))

	assert.False(t, IsValidTokenFormat("xyz999")) // строчные буквы
	assert.False(t, IsValidTokenFormat("AB123"))
	assert.False(t, IsValidTokenFormat("ABCD123"))
	assert.False(t, IsValidTokenFormat("123ABC"))
	assert.False(t, IsValidTokenFormat("ABC12"))
	assert.False(t, IsValidTokenFormat(""))
}

func TestCheckInToken_IsExpiredAt(t *testing.T) {
	expiresAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	token := &CheckInToken{Status: TokenIssued, ExpiresAt: expiresAt}

	assert.False(t, token.IsExpiredAt(expiresAt.Add(-time.Minute)))
	assert.True(t, token.IsExpiredAt(expiresAt))
	assert.True(t, token.IsExpiredAt(expiresAt.Add(time.Minute)))
}
