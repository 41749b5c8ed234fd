package fshp

import (
	"crypto/sha1" //nolint:gosec // variant 0 exists for compatibility only
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
)

// Variant identifies the digest function used by a hash.
type Variant int

const (
	// SHA1 selects SHA-1.  It is kept for verifying old hashes; new hashes
	// should use SHA256 or stronger.
	SHA1 Variant = 0
	// SHA256 selects SHA-256.  This is the default.
	SHA256 Variant = 1
	// SHA384 selects SHA-384.
	SHA384 Variant = 2
	// SHA512 selects SHA-512.
	SHA512 Variant = 3
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case SHA1, SHA256, SHA384, SHA512:
		return true
	default:
		return false
	}
}

// String returns the digest name, e.g. "SHA-256".
func (v Variant) String() string {
	switch v {
	case SHA1:
		return "SHA-1"
	case SHA256:
		return "SHA-256"
	case SHA384:
		return "SHA-384"
	case SHA512:
		return "SHA-512"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Size returns the digest length in bytes, or 0 for an unknown variant.
func (v Variant) Size() int {
	switch v {
	case SHA1:
		return sha1.Size
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	default:
		return 0
	}
}

// sum returns a fresh digest of b.  It keeps no hashing state between calls.
func (v Variant) sum(b []byte) []byte {
	switch v {
	case SHA1:
		d := sha1.Sum(b) //nolint:gosec
		return d[:]
	case SHA256:
		d := sha256.Sum256(b)
		return d[:]
	case SHA384:
		d := sha512.Sum384(b)
		return d[:]
	case SHA512:
		d := sha512.Sum512(b)
		return d[:]
	default:
		panic(fmt.Sprintf("fshp: sum called with %v", v))
	}
}
