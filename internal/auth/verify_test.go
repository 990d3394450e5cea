package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   Encoding
	}{
		{"pbkdf2", "pbkdf2:sha256:260000$abc$def", EncodingPBKDF2},
		{"pbkdf2 prefix only", "pbkdf2:garbage", EncodingPBKDF2},
		{"bcrypt 2a", "$2a$10$abcdefghijklmnopqrstuv", EncodingBcrypt},
		{"bcrypt 2b", "$2b$12$abcdefghijklmnopqrstuv", EncodingBcrypt},
		{"plaintext", "hunter2", EncodingPlaintext},
		{"dollar but not bcrypt", "$1$md5crypt", EncodingPlaintext},
		{"empty", "", EncodingUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.stored))
		})
	}
}

func TestVerifyPBKDF2(t *testing.T) {
	stored, err := GeneratePBKDF2("secret")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stored, "pbkdf2:sha256:260000$"))

	v := Verifier{}
	assert.True(t, v.Verify(stored, "secret"))
	assert.False(t, v.Verify(stored, "wrong"))
	assert.False(t, v.Verify(stored, ""))
}

func TestVerifyPBKDF2DefaultIterations(t *testing.T) {
	// A stored method without an iteration count verifies with the
	// generator default, so stripping the count from a generated hash
	// must still match.
	stored, err := GeneratePBKDF2("secret")
	require.NoError(t, err)
	legacy := strings.Replace(stored, ":260000$", "$", 1)
	require.NotEqual(t, stored, legacy)

	v := Verifier{}
	assert.True(t, v.Verify(legacy, "secret"))
	assert.False(t, v.Verify(legacy, "wrong"))
}

func TestVerifyBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	v := Verifier{}
	assert.True(t, v.Verify(string(hash), "secret"))
	assert.False(t, v.Verify(string(hash), "wrong"))
}

func TestVerifyPlaintextFallback(t *testing.T) {
	legacy := Verifier{AllowPlaintext: true}
	assert.True(t, legacy.Verify("hunter2", "hunter2"))
	assert.False(t, legacy.Verify("hunter2", "hunter3"))

	strict := Verifier{}
	assert.False(t, strict.Verify("hunter2", "hunter2"))
}

func TestVerifyMalformedReturnsFalse(t *testing.T) {
	v := Verifier{AllowPlaintext: true}
	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"pbkdf2 no separators", "pbkdf2:sha256:260000"},
		{"pbkdf2 missing digest", "pbkdf2:sha256:260000$salt$"},
		{"pbkdf2 missing salt", "pbkdf2:sha256:260000$$deadbeef"},
		{"pbkdf2 bad hex", "pbkdf2:sha256:260000$salt$nothex!"},
		{"pbkdf2 bad iterations", "pbkdf2:sha256:lots$salt$deadbeef"},
		{"pbkdf2 zero iterations", "pbkdf2:sha256:0$salt$deadbeef"},
		{"pbkdf2 wrong variant", "pbkdf2:md5:1000$salt$deadbeef"},
		{"pbkdf2 extra method parts", "pbkdf2:sha256:1000:junk$salt$deadbeef"},
		{"bcrypt garbage", "$2a$not-a-real-hash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, v.Verify(tt.stored, "secret"))
			})
		})
	}
}

func TestGeneratePBKDF2Salts(t *testing.T) {
	a, err := GeneratePBKDF2("secret")
	require.NoError(t, err)
	b, err := GeneratePBKDF2("secret")
	require.NoError(t, err)
	// Random salts: two hashes of the same password differ but both verify.
	assert.NotEqual(t, a, b)
	v := Verifier{}
	assert.True(t, v.Verify(a, "secret"))
	assert.True(t, v.Verify(b, "secret"))
}
