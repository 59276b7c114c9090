package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNewUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		phone    string
		wantErr  string // 出错字段，空串表示合法
	}{
		{"ok", "alice_01", "a@x.com", "secret1", "+1 (555) 123-4567", ""},
		{"username too short", "ab", "a@x.com", "secret1", "555", "username"},
		{"username too long", "a123456789012345678901234567890", "a@x.com", "secret1", "555", "username"},
		{"username bad chars", "alice!", "a@x.com", "secret1", "555", "username"},
		{"bad email", "alice", "not-an-email", "secret1", "555", "email"},
		{"short password", "alice", "a@x.com", "12345", "555", "password"},
		{"bad phone", "alice", "a@x.com", "secret1", "call me", "phone"},
		{"empty phone", "alice", "a@x.com", "secret1", "", "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewUser(tt.username, tt.email, tt.password, tt.phone)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.wantErr)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com "))
}

func TestHasValidResetToken(t *testing.T) {
	now := time.Now()
	tok := "abc"
	future := now.Add(30 * time.Minute)
	past := now.Add(-time.Minute)

	u := &User{}
	assert.False(t, u.HasValidResetToken("abc", now), "no token set")

	u.ResetPasswordToken = &tok
	u.ResetPasswordExpires = &future
	assert.True(t, u.HasValidResetToken("abc", now))
	assert.False(t, u.HasValidResetToken("other", now))

	u.ResetPasswordExpires = &past
	assert.False(t, u.HasValidResetToken("abc", now), "expired token")

	u.ClearResetToken()
	assert.Nil(t, u.ResetPasswordToken)
	assert.Nil(t, u.ResetPasswordExpires)
}
