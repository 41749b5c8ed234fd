package fshp

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
)

// hashPattern is anchored at both ends; the payload is restricted to the
// standard base64 alphabet with at most two padding characters.
var hashPattern = regexp.MustCompile(`^\{FSHP(\d+)\|(\d+)\|(\d+)\}([A-Za-z0-9+/]+={0,2})$`)

// Hash is a decoded FSHP string.
type Hash struct {
	Params

	// Salt is the first SaltLen bytes of the payload.
	Salt []byte

	// Digest is the remainder of the payload.
	Digest []byte
}

// Parse decodes an FSHP string without verifying any password.
//
// It returns [ErrMalformedHash] when encoded does not match the grammar,
// [ErrSaltLength] when the salt length points past the payload, and
// [ErrUnsupportedVariant] for an unknown variant id.
func Parse(encoded string) (*Hash, error) {
	m := hashPattern.FindStringSubmatch(encoded)
	if m == nil {
		return nil, fmt.Errorf("%w: does not match {FSHPv|saltlen|rounds}payload", ErrMalformedHash)
	}

	variant, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: variant: %v", ErrMalformedHash, err)
	}
	saltLen, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: salt length: %v", ErrMalformedHash, err)
	}
	rounds, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, fmt.Errorf("%w: rounds: %v", ErrMalformedHash, err)
	}

	v := Variant(variant)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVariant, variant)
	}

	payload, err := base64.StdEncoding.DecodeString(m[4])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedHash, err)
	}
	if saltLen > len(payload) {
		return nil, fmt.Errorf("%w: salt length %d, payload is %d bytes",
			ErrSaltLength, saltLen, len(payload))
	}

	return &Hash{
		Params: Params{
			Variant: v,
			SaltLen: saltLen,
			Rounds:  rounds,
		},
		Salt:   payload[:saltLen:saltLen],
		Digest: payload[saltLen:],
	}, nil
}

// Verify reports whether password matches encoded.
//
// The salt and parameters are recovered from encoded, the password is hashed
// again with them, and the complete re-encoded string is compared with
// encoded in constant time.  Any string that [Parse] rejects yields false;
// Verify never panics on untrusted input.
//
// Because the whole string is compared, hashes with non-canonical metadata
// (for example a leading zero in the rounds field) never verify.
func Verify(password []byte, encoded string) bool {
	h, err := Parse(encoded)
	if err != nil {
		return false
	}
	fresh, err := Encode(password, h.Salt, h.SaltLen, h.Rounds, h.Variant)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(fresh), []byte(encoded)) == 1
}

// Check is [Verify] for a string password.
func Check(password, encoded string) bool {
	return Verify([]byte(password), encoded)
}
