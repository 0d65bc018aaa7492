package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, stored alongside each hash so they can change
// without invalidating existing credentials.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonSaltLen = 16
	argonKeyLen  = 32
)

// DummyHash is verified against when a login targets an unknown email, so
// the unknown-email path costs the same as a wrong password. It is not a
// real credential and matches no password.
const DummyHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// PasswordHasher hashes and verifies passwords with argon2id. Concurrent
// hashing is capped by a semaphore so a burst of login/register requests
// cannot starve cheap work (token verification) elsewhere in the process.
type PasswordHasher struct {
	sem chan struct{}
}

// NewPasswordHasher creates a hasher allowing at most maxConcurrent argon2
// computations in flight.
func NewPasswordHasher(maxConcurrent int) *PasswordHasher {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &PasswordHasher{sem: make(chan struct{}, maxConcurrent)}
}

// Hash derives an argon2id hash of the password with a fresh random salt and
// encodes it as $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>. Hashing the
// same password twice yields different strings; both verify.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := h.deriveKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether password matches the encoded hash. The comparison
// is constant time; a structurally invalid hash simply fails verification.
func (h *PasswordHasher) Verify(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if threads == 0 || threads > 255 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false
	}

	computed := h.deriveKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// deriveKey runs the argon2 computation under the concurrency cap.
func (h *PasswordHasher) deriveKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()
	return argon2.IDKey(password, salt, time, memory, threads, keyLen)
}
