package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(4) // low cost keeps the test fast

	digest, err := h.Hash("Secret#123")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "Secret#123", digest)

	assert.True(t, h.Verify("Secret#123", digest))
	assert.False(t, h.Verify("Secret#124", digest))
	assert.False(t, h.Verify("", digest))
}

func TestNewHasher_OutOfRangeCostFallsBack(t *testing.T) {
	h := NewHasher(99)

	digest, err := h.Hash("Secret#123")
	require.NoError(t, err)
	assert.True(t, h.Verify("Secret#123", digest))
}

func TestValidatePolicy_Accepts(t *testing.T) {
	for _, pw := range []string{"Secret#123", "aB3!aB3!", "Very-Long-Passw0rd"} {
		assert.NoError(t, ValidatePolicy(pw), pw)
	}
}

func TestValidatePolicy_Rejects(t *testing.T) {
	cases := map[string]string{
		"short":          "aB3!",
		"no uppercase":   "secret#123",
		"no lowercase":   "SECRET#123",
		"no digit":       "Secret#abc",
		"no symbol":      "Secret1234",
		"all lowercase":  "password",
		"empty password": "",
	}
	for name, pw := range cases {
		assert.Error(t, ValidatePolicy(pw), name)
	}
}

func TestValidatePolicy_ListsEveryMissingClass(t *testing.T) {
	err := ValidatePolicy("abc")
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "8 characters")
	assert.Contains(t, msg, "uppercase")
	assert.Contains(t, msg, "digit")
	assert.Contains(t, msg, "special character")
	assert.NotContains(t, msg, "one lowercase")

	var perr *PolicyError
	require.ErrorAs(t, err, &perr)
	assert.Len(t, perr.Missing, 4)
}
