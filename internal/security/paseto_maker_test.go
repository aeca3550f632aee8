package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasetoMaker(t *testing.T) {
	t.Run("rejects short key", func(t *testing.T) {
		maker, err := NewPasetoMaker("too-short")
		assert.Nil(t, maker)
		assert.Error(t, err)
	})

	t.Run("accepts 32-byte key", func(t *testing.T) {
		maker, err := NewPasetoMaker(strings.Repeat("k", 32))
		assert.NoError(t, err)
		assert.NotNil(t, maker)
	})
}

func TestPasetoMakerRoundTrip(t *testing.T) {
	maker, err := NewPasetoMaker(strings.Repeat("k", 32))
	require.NoError(t, err)

	token, payload, err := maker.CreateToken("alice", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, payload)

	verified, err := maker.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", verified.Handle)
	assert.Equal(t, payload.ID, verified.ID)
	assert.WithinDuration(t, payload.ExpiredAt, verified.ExpiredAt, time.Second)
}

func TestPasetoMakerExpiredToken(t *testing.T) {
	maker, err := NewPasetoMaker(strings.Repeat("k", 32))
	require.NoError(t, err)

	token, _, err := maker.CreateToken("alice", -time.Minute)
	require.NoError(t, err)

	verified, err := maker.VerifyToken(token)
	assert.Nil(t, verified)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestPasetoMakerInvalidToken(t *testing.T) {
	maker, err := NewPasetoMaker(strings.Repeat("k", 32))
	require.NoError(t, err)

	verified, err := maker.VerifyToken("v2.local.garbage")
	assert.Nil(t, verified)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
