// Package cryptox hashes and verifies account passwords with argon2id.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/loopin/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// DeriveKey stretches password with salt.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// HashPassword returns a fresh random salt and the derived hash.
func HashPassword(password string) (hash, salt []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	pw := []byte(password)
	defer common.WipeByteArray(pw)
	return DeriveKey(pw, salt), salt
}

// VerifyPassword reports whether password matches hash under salt.
func VerifyPassword(password string, hash, salt []byte) bool {
	pw := []byte(password)
	defer common.WipeByteArray(pw)
	candidate := DeriveKey(pw, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
