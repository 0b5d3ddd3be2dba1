package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// New hashes are argon2id. Verification also accepts bcrypt so hashes issued
// before the migration keep validating.

const (
	argon2Version = argon2.Version

	argon2MemoryKiB   = 64 * 1024
	argon2Iterations  = 3
	argon2Parallelism = 2
	argon2SaltLength  = 16
	argon2KeyLength   = 32
)

// HashPassword returns a self-describing PHC string:
// $argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt_b64>$<key_b64>
func HashPassword(password string) (string, error) {
	salt := make([]byte, argon2SaltLength)

	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Iterations, argon2MemoryKiB, argon2Parallelism, argon2KeyLength)

	b64 := base64.RawStdEncoding

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version,
		argon2MemoryKiB,
		argon2Iterations,
		argon2Parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	)

	return encoded, nil
}

// VerifyPassword dispatches on the stored hash's algorithm tag. A malformed
// or unrecognized hash is a non-match, never an error.
func VerifyPassword(password, stored string) bool {
	switch {
	case strings.HasPrefix(stored, "$argon2id$"):
		return verifyArgon2id(password, stored)
	case strings.HasPrefix(stored, "$2a$"), strings.HasPrefix(stored, "$2b$"), strings.HasPrefix(stored, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	default:
		return false
	}
}

func verifyArgon2id(password, encoded string) bool {
	memory, iterations, parallelism, salt, expected, err := decodeArgon2id(encoded)

	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expected)))

	return subtle.ConstantTimeCompare(key, expected) == 1
}

func decodeArgon2id(encoded string) (memory, iterations uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")

	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid hash format")
	}

	var version int

	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported argon2 version")
	}

	var par uint32

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &par); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid hash parameters")
	}

	// Refuse attacker-controlled params far above our own settings.
	if memory == 0 || memory > argon2MemoryKiB*2 || iterations == 0 || iterations > argon2Iterations*4 || par == 0 || par > 16 {
		return 0, 0, 0, nil, nil, fmt.Errorf("hash parameters out of bounds")
	}

	b64 := base64.RawStdEncoding

	salt, err = b64.DecodeString(parts[4])

	if err != nil || len(salt) < 8 || len(salt) > 64 {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid salt")
	}

	key, err = b64.DecodeString(parts[5])

	if err != nil || len(key) < 16 || len(key) > 128 {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid digest")
	}

	return memory, iterations, uint8(par), salt, key, nil
}
