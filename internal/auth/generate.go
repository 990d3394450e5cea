package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const saltLength = 16

// Salt alphabet matches what the legacy generator used, so seeded and legacy
// hashes are indistinguishable in the database.
const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePBKDF2 hashes a password into the stored pbkdf2 format understood
// by Verify. Used when seeding the admin user; interactive registration uses
// bcrypt instead.
func GeneratePBKDF2(password string) (string, error) {
	salt, err := randomSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), defaultIterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", defaultIterations, salt, hex.EncodeToString(key)), nil
}

func randomSalt(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(buf), nil
}
