// Package auth decides whether a supplied password matches a stored
// credential string. Stored values accumulated under several encodings over
// the life of the system (plaintext, werkzeug-style pbkdf2, bcrypt), so
// verification classifies the stored string first and then dispatches to the
// matching scheme. Verification is fail-closed: malformed input of any kind
// is a mismatch, never an error.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Encoding identifies the storage scheme of a credential string.
type Encoding int

const (
	EncodingUnknown   Encoding = iota // empty or unrecognizable
	EncodingPlaintext                 // legacy: the password itself
	EncodingPBKDF2                    // pbkdf2:sha256[:iterations]$salt$hexdigest
	EncodingBcrypt                    // $2a$ / $2b$ / $2y$ hash
)

// String names the encoding for operator-facing listings.
func (e Encoding) String() string {
	switch e {
	case EncodingPlaintext:
		return "plaintext"
	case EncodingPBKDF2:
		return "pbkdf2"
	case EncodingBcrypt:
		return "bcrypt"
	}
	return "unknown"
}

// defaultIterations matches the generator default; stored pbkdf2 methods that
// omit the iteration count are verified with this value.
const defaultIterations = 260000

// Classify maps a stored credential string to its Encoding by structure
// alone. Anything non-empty without a scheme marker is treated as legacy
// plaintext; whether that is honored is the Verifier's decision.
func Classify(stored string) Encoding {
	switch {
	case strings.HasPrefix(stored, "pbkdf2:"):
		return EncodingPBKDF2
	case strings.HasPrefix(stored, "$2"):
		return EncodingBcrypt
	case stored != "":
		return EncodingPlaintext
	}
	return EncodingUnknown
}

// Verifier checks supplied passwords against stored credential strings.
type Verifier struct {
	// AllowPlaintext enables the oldest revisions' exact-equality fallback
	// for unhashed stored values. When false, anything that is not pbkdf2 or
	// bcrypt is rejected.
	AllowPlaintext bool
}

// Verify reports whether supplied matches the stored credential. It never
// panics or returns an error: any malformed stored value is a mismatch.
func (v Verifier) Verify(stored, supplied string) bool {
	switch Classify(stored) {
	case EncodingPBKDF2:
		return verifyPBKDF2(stored, supplied)
	case EncodingBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	case EncodingPlaintext:
		if v.AllowPlaintext {
			return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
		}
		return false
	}
	return false
}

// verifyPBKDF2 checks a werkzeug-format hash: "pbkdf2:sha256:260000$salt$hex".
// Only the sha256 variant is supported; no other variant was ever written.
func verifyPBKDF2(stored, supplied string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return false
	}
	method := strings.Split(parts[0], ":")
	if len(method) < 2 || len(method) > 3 || method[1] != "sha256" {
		return false
	}
	iterations := defaultIterations
	if len(method) == 3 {
		n, err := strconv.Atoi(method[2])
		if err != nil || n <= 0 {
			return false
		}
		iterations = n
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(supplied), []byte(parts[1]), iterations, sha256.Size, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
