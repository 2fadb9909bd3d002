package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	signed, err := codec.Issue("tenant-1", "user-1", "Admin", "admin@school.edu")
	require.NoError(t, err)

	claims, err := codec.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "admin@school.edu", claims.Email)
}

func TestParseRejectsGarbage(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	for _, input := range []string{
		"",
		"not-a-token",
		"aGVsbG8gd29ybGQ",
		"a.b.c",
	} {
		_, err := codec.Parse(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	other := NewCodec("other-secret", time.Hour)

	signed, err := other.Issue("tenant-1", "user-1", "Nurse", "nurse@school.edu")
	require.NoError(t, err)

	_, err = codec.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	codec := NewCodec("test-secret", -time.Minute)

	signed, err := codec.Issue("tenant-1", "user-1", "Nurse", "nurse@school.edu")
	require.NoError(t, err)

	_, err = codec.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMissingIdentity(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	signed, err := codec.Issue("", "", "Nurse", "nurse@school.edu")
	require.NoError(t, err)

	_, err = codec.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
