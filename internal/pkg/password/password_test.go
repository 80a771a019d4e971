package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("roilux2024")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	assert.True(t, Verify("roilux2024", hash))
	assert.False(t, Verify("roilux2025", hash))
	assert.False(t, NeedsRehash(hash))
}

func TestHash_SaltedPerCall(t *testing.T) {
	a, err := Hash("same-password")
	require.NoError(t, err)
	b, err := Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, Verify("same-password", a))
	assert.True(t, Verify("same-password", b))
}

func TestVerify_Bcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("processor123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, Verify("processor123", string(legacy)))
	assert.False(t, Verify("nope", string(legacy)))
	assert.True(t, NeedsRehash(string(legacy)))
}

func TestVerify_Malformed(t *testing.T) {
	for _, h := range []string{
		"",
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$abc",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$a2V5",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$a2V5",
	} {
		assert.False(t, Verify("password", h), h)
		assert.True(t, NeedsRehash(h), h)
	}
}
