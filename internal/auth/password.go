// Package auth implements password hashing and verification.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Hashes are stored as "pbkdf2:sha256:<iterations>$<salt>$<hexdigest>" so
// existing rows written by earlier deployments of the platform verify
// unchanged, and iteration counts can be raised without invalidating them.
const (
	saltBytes  = 16
	iterations = 600_000
	keyLength  = 32
	method     = "pbkdf2:sha256"
)

// HashPassword derives a salted PBKDF2-SHA256 hash of password using a fresh
// 16-byte random salt.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", method, iterations, salt, hex.EncodeToString(key)), nil
}

// VerifyPassword reports whether password matches the stored hash. The digest
// comparison is constant-time. Malformed hashes never verify.
func VerifyPassword(stored, password string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}

	algo := strings.Split(parts[0], ":")
	if len(algo) != 3 || algo[0] != "pbkdf2" || algo[1] != "sha256" {
		return false
	}
	iters, err := strconv.Atoi(algo[2])
	if err != nil || iters <= 0 {
		return false
	}

	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(parts[1]), iters, len(want), sha256.New)
	return hmac.Equal(got, want)
}
