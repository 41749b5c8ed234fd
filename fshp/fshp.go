package fshp

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const (
	// DefaultSaltLen is the salt length used by [Make], in bytes.
	DefaultSaltLen = 8

	// DefaultRounds is the number of digest rounds used by [Make].
	DefaultRounds = 4096

	// DefaultVariant is the digest used by [Make].
	DefaultVariant = SHA256

	// MaxSaltLen is the largest random salt [Encode] will generate, in bytes.
	// Explicit salts are not limited.
	MaxSaltLen = 1024

	prefixFormat = "{FSHP%d|%d|%d}"
)

// randReader is the salt source.  Tests swap it to exercise failures.
var randReader io.Reader = rand.Reader

// Params is the metadata stored in the prefix of every hash.
type Params struct {
	// Variant selects the digest function.
	Variant Variant

	// SaltLen is the salt length in bytes.  Negative values are treated as 0.
	SaltLen int

	// Rounds is the total number of digest computations.  Values below 1
	// are treated as 1.
	Rounds int
}

// DefaultParams returns 8-byte salts, 4096 rounds and SHA-256.
func DefaultParams() Params {
	return Params{
		Variant: DefaultVariant,
		SaltLen: DefaultSaltLen,
		Rounds:  DefaultRounds,
	}
}

// Encode hashes password and returns the encoded FSHP string.
//
// When salt is nil, saltLen random bytes are read from crypto/rand.
// Otherwise salt is used as-is and saltLen is ignored; a non-nil empty salt
// means "no salt".  rounds below 1 become 1 and a negative saltLen becomes 0.
//
// Encode fails for an unsupported variant ([ErrUnsupportedVariant]), a
// random salt longer than [MaxSaltLen] ([ErrSaltTooLong]) and a failing
// random source.
func Encode(password, salt []byte, saltLen, rounds int, v Variant) (string, error) {
	if !v.Valid() {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVariant, int(v))
	}
	if rounds < 1 {
		rounds = 1
	}
	if saltLen < 0 {
		saltLen = 0
	}

	if salt == nil {
		if saltLen > MaxSaltLen {
			return "", fmt.Errorf("%w: %d > %d", ErrSaltTooLong, saltLen, MaxSaltLen)
		}
		var err error
		if salt, err = randomSalt(saltLen); err != nil {
			return "", err
		}
	} else {
		saltLen = len(salt)
	}

	digest := iterate(v, salt, password, rounds)

	payload := make([]byte, 0, len(salt)+len(digest))
	payload = append(payload, salt...)
	payload = append(payload, digest...)

	return fmt.Sprintf(prefixFormat, int(v), saltLen, rounds) +
		base64.StdEncoding.EncodeToString(payload), nil
}

// Make hashes password with [DefaultParams] and a fresh random salt.
func Make(password string) (string, error) {
	return MakeWithParams(password, DefaultParams())
}

// MakeWithParams hashes password with a fresh random salt of p.SaltLen bytes.
func MakeWithParams(password string, p Params) (string, error) {
	return Encode([]byte(password), nil, p.SaltLen, p.Rounds, p.Variant)
}

// MakeWithSalt hashes password with an explicit salt.  The output is fully
// determined by its arguments.
func MakeWithSalt(password string, salt []byte, rounds int, v Variant) (string, error) {
	if salt == nil {
		salt = []byte{}
	}
	return Encode([]byte(password), salt, len(salt), rounds, v)
}

// iterate computes H(salt ‖ password) once and then re-hashes the previous
// digest rounds-1 times.
func iterate(v Variant, salt, password []byte, rounds int) []byte {
	first := make([]byte, 0, len(salt)+len(password))
	first = append(first, salt...)
	first = append(first, password...)

	digest := v.sum(first)
	for i := 1; i < rounds; i++ {
		digest = v.sum(digest)
	}
	return digest
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("fshp: failed to generate salt: %w", err)
	}
	return b, nil
}
