// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"userhub/internal/domain/service"
	"userhub/internal/errors"
)

// argon2id parameters following the OWASP recommendation:
// memory=64MB, iterations=3, parallelism=4.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // 64 MB in KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// argon2Hasher is a concrete implementation of the PasswordHasher interface
// using argon2id with PHC-formatted hash strings.
type argon2Hasher struct{}

// NewArgon2Hasher is the constructor for argon2Hasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewArgon2Hasher() service.PasswordHasher {
	return &argon2Hasher{}
}

// Hash generates an argon2id hash of the given password. The output format is
// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>, which embeds the parameters
// and salt so verification is self-contained. The only failure mode is the
// entropy source, which is treated as unrecoverable, not retried.
func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generating salt")
	}

	digest := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Digest := base64.RawStdEncoding.EncodeToString(digest)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, b64Salt, b64Digest)

	return encoded, nil
}

// Verify recomputes the digest from the parameters and salt embedded in
// encodedHash and compares in constant time. A non-matching password is
// (false, nil); a hash that cannot be parsed is (false, ErrMalformedHash).
func (h *argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	memory, iterations, parallelism, salt, expected, err := parseEncodedHash(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expected)))

	return subtle.ConstantTimeCompare(expected, computed) == 1, nil
}

func parseEncodedHash(encodedHash string) (memory, iterations uint32, parallelism uint8, salt, digest []byte, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, service.ErrMalformedHash
	}

	var version int
	if _, scanErr := fmt.Sscanf(parts[2], "v=%d", &version); scanErr != nil || version != argon2.Version {
		return 0, 0, 0, nil, nil, service.ErrMalformedHash
	}

	if _, scanErr := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); scanErr != nil {
		return 0, 0, 0, nil, nil, service.ErrMalformedHash
	}
	// Zero iterations or parallelism would make the key derivation panic.
	if iterations == 0 || parallelism == 0 {
		return 0, 0, 0, nil, nil, service.ErrMalformedHash
	}

	salt, saltErr := base64.RawStdEncoding.DecodeString(parts[4])
	if saltErr != nil || len(salt) == 0 {
		return 0, 0, 0, nil, nil, service.ErrMalformedHash
	}

	digest, digestErr := base64.RawStdEncoding.DecodeString(parts[5])
	if digestErr != nil || len(digest) == 0 {
		return 0, 0, 0, nil, nil, service.ErrMalformedHash
	}

	return memory, iterations, parallelism, salt, digest, nil
}
