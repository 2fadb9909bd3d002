package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/scrypt"
)

var ErrHashingFailed = errors.New("password hashing failed")

const (
	saltLen = 16
	keyLen  = 64

	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// PasswordHasher provides interface for password operations
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, storedHash string) bool
}

type scryptHasher struct{}

// NewScryptHasher creates a password hasher storing "salt:hash" pairs
// derived with scrypt.
func NewScryptHasher() PasswordHasher {
	return &scryptHasher{}
}

func (h *scryptHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", ErrHashingFailed
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", ErrHashingFailed
	}

	return fmt.Sprintf("%s:%s", hex.EncodeToString(salt), hex.EncodeToString(derived)), nil
}

// Verify recomputes the hash with the stored salt and compares in constant
// time. Malformed stored hashes fail closed.
func (h *scryptHasher) Verify(password, storedHash string) bool {
	salt, expected, ok := strings.Cut(storedHash, ":")
	if !ok {
		return false
	}

	saltBytes, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	expectedBytes, err := hex.DecodeString(expected)
	if err != nil || len(expectedBytes) == 0 {
		return false
	}

	derived, err := scrypt.Key([]byte(password), saltBytes, scryptN, scryptR, scryptP, len(expectedBytes))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(derived, expectedBytes) == 1
}

const tempPasswordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789@#%"

// GenerateTemporaryPassword returns a random password drawn from a fixed
// charset that avoids ambiguous characters.
func GenerateTemporaryPassword(length int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(tempPasswordCharset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(tempPasswordCharset[n.Int64()])
	}
	return sb.String(), nil
}
