package idcodec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// Decode failure classes. Transport problems (not base64) and value problems
// (not a token we minted) are distinct so callers can tell them apart.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrInvalidToken   = errors.New("invalid token")
)

// Codec reversibly maps internal numeric ids to opaque public tokens.
// Tokens are AES-GCM sealed and base64url encoded; the numeric id never
// appears on the wire.
type Codec struct {
	aead cipher.AEAD
}

// New builds a Codec from a hex-encoded AES key (16, 24 or 32 bytes).
func New(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("id codec key is not valid hex: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("id codec key rejected: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Codec{aead: aead}, nil
}

// Encode seals id into an opaque token.
func (c *Codec) Encode(id uint64) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	plain := make([]byte, 8)
	binary.BigEndian.PutUint64(plain, id)

	sealed := c.aead.Seal(nonce, nonce, plain, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode reverses Encode. It fails with ErrMalformedToken when the token is
// not valid base64url and with ErrInvalidToken when the payload does not
// decrypt to an id.
func (c *Codec) Decode(token string) (uint64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrMalformedToken
	}

	if len(raw) < c.aead.NonceSize() {
		return 0, ErrInvalidToken
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]

	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil || len(plain) != 8 {
		return 0, ErrInvalidToken
	}
	return binary.BigEndian.Uint64(plain), nil
}

// DecodeLenient is the non-failing variant: bad input of any kind simply
// reports absence so list-style callers can keep flowing.
func (c *Codec) DecodeLenient(token string) (uint64, bool) {
	id, err := c.Decode(token)
	if err != nil {
		return 0, false
	}
	return id, true
}
