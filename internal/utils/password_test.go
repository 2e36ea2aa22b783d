package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallet/cashplan/internal/utils"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, utils.VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, utils.VerifyPassword(hash, "correct horse battery"))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, utils.VerifyPassword("not-a-bcrypt-hash", "anything"))
}
