package encrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	weak := []string{"short1!", "alllowercase1!", "NoDigits!!", "NoSpecial123"}
	for _, pw := range weak {
		assert.ErrorIs(t, ValidatePasswordStrength(pw), ErrWeakPassword, pw)
	}
	assert.NoError(t, ValidatePasswordStrength("!Password123"))
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("!Password123")
	require.NoError(t, err)
	assert.NotEqual(t, "!Password123", hash)

	assert.NoError(t, CheckPassword(hash, "!Password123"))
	assert.ErrorIs(t, CheckPassword(hash, "!Password124"), ErrPasswordMismatch)
}
