package auth

import "golang.org/x/crypto/bcrypt"

// BcryptMatcher is the default CredentialMatcher.
type BcryptMatcher struct{}

func (BcryptMatcher) Matches(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
