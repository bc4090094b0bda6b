package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amity-dating/amity/internal/service/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	identity := &auth.Identity{Subject: "alice@example.com", Roles: []string{auth.RoleUser}}

	token, err := auth.GenerateToken(identity, secret, time.Hour)
	require.NoError(t, err)

	subject, err := auth.SubjectFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	identity := &auth.Identity{Subject: "alice@example.com", Roles: []string{auth.RoleUser}}

	token, err := auth.GenerateToken(identity, []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = auth.SubjectFromToken(token, []byte("secret-b"))
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := []byte("test-secret")
	identity := &auth.Identity{Subject: "alice@example.com", Roles: []string{auth.RoleUser}}

	token, err := auth.GenerateToken(identity, secret, -time.Minute)
	require.NoError(t, err)

	_, err = auth.SubjectFromToken(token, secret)
	assert.Error(t, err)
}
