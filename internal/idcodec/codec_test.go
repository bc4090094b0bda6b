package idcodec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amity-dating/amity/internal/idcodec"
)

const testKey = "000102030405060708090a0b0c0d0e0f"

func newCodec(t *testing.T) *idcodec.Codec {
	t.Helper()
	c, err := idcodec.New(testKey)
	require.NoError(t, err)
	return c
}

func TestRoundTrip(t *testing.T) {
	c := newCodec(t)

	for _, id := range []uint64{0, 1, 42, 99999, 1<<63 + 7} {
		token, err := c.Encode(id)
		require.NoError(t, err)

		got, err := c.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestEncodeIsOpaque(t *testing.T) {
	c := newCodec(t)

	token, err := c.Encode(42)
	require.NoError(t, err)
	assert.NotContains(t, token, "42")
}

func TestDecodeMalformedBase64(t *testing.T) {
	c := newCodec(t)

	_, err := c.Decode("not a token!!")
	assert.True(t, errors.Is(err, idcodec.ErrMalformedToken))
}

func TestDecodeInvalidPayload(t *testing.T) {
	c := newCodec(t)

	// valid base64, but nothing we ever minted
	_, err := c.Decode("YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXo")
	assert.True(t, errors.Is(err, idcodec.ErrInvalidToken))
}

func TestDecodeTamperedToken(t *testing.T) {
	c := newCodec(t)

	token, err := c.Encode(7)
	require.NoError(t, err)

	tampered := []byte(token)
	if tampered[len(tampered)-1] == 'A' {
		tampered[len(tampered)-1] = 'B'
	} else {
		tampered[len(tampered)-1] = 'A'
	}

	_, err = c.Decode(string(tampered))
	assert.Error(t, err)
}

func TestDecodeLenient(t *testing.T) {
	c := newCodec(t)

	token, err := c.Encode(1234)
	require.NoError(t, err)

	id, ok := c.DecodeLenient(token)
	assert.True(t, ok)
	assert.Equal(t, uint64(1234), id)

	_, ok = c.DecodeLenient("garbage!!")
	assert.False(t, ok)

	_, ok = c.DecodeLenient("")
	assert.False(t, ok)
}

func TestNewRejectsBadKeys(t *testing.T) {
	_, err := idcodec.New("zz")
	assert.Error(t, err)

	_, err = idcodec.New("abcd") // 2 bytes, not an AES key size
	assert.Error(t, err)
}
