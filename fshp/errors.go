package fshp

import "errors"

// Sentinel errors returned by fshp operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := fshp.Parse(stored)
//	if errors.Is(err, fshp.ErrMalformedHash) {
//	    // not an FSHP string
//	}
var (
	// ErrUnsupportedVariant is returned by [Encode] when the variant id is
	// not one of [SHA1], [SHA256], [SHA384] or [SHA512].  [Parse] returns it
	// when a stored hash names such a variant.
	ErrUnsupportedVariant = errors.New("fshp: unsupported variant")

	// ErrMalformedHash is returned by [Parse] when the string does not match
	// the FSHP grammar, a number overflows, or the payload is not valid
	// base64.
	ErrMalformedHash = errors.New("fshp: malformed hash string")

	// ErrSaltLength is returned by [Parse] when the salt length in the
	// metadata prefix is larger than the decoded payload.
	ErrSaltLength = errors.New("fshp: salt length exceeds payload")

	// ErrSaltTooLong is returned by [Encode] when a random salt longer than
	// [MaxSaltLen] is requested.
	ErrSaltTooLong = errors.New("fshp: requested salt length too large")
)
