// Package cryptox derives and checks password hashes with argon2id.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated salt.
const SaltSize = 16

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives the stored hash of password under salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword reports whether password hashes to hash under salt. The
// comparison runs in constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
