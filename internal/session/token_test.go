package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("top-secret", time.Hour)

	token, err := codec.Sign("3f1c2a9e-session")
	require.NoError(t, err)

	id, err := codec.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "3f1c2a9e-session", id)
}

func TestTokenCodec_RejectsForeignSecret(t *testing.T) {
	token, err := NewTokenCodec("secret-a", time.Hour).Sign("sid")
	require.NoError(t, err)

	_, err = NewTokenCodec("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_RejectsTampered(t *testing.T) {
	codec := NewTokenCodec("top-secret", time.Hour)
	token, err := codec.Sign("sid")
	require.NoError(t, err)

	other, err := codec.Sign("someone-else")
	require.NoError(t, err)

	// payload от другого токена с чужой подписью
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = codec.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = codec.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_RejectsExpired(t *testing.T) {
	codec := NewTokenCodec("top-secret", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	codec.now = func() time.Time { return issued }

	token, err := codec.Sign("sid")
	require.NoError(t, err)

	codec.now = time.Now
	_, err = codec.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestData_Authenticated(t *testing.T) {
	var nilData *Data
	assert.False(t, nilData.Authenticated())
	assert.False(t, (&Data{ID: "x"}).Authenticated())
	assert.True(t, (&Data{ID: "x", UserID: 4}).Authenticated())
}
