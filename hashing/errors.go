package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := hasher.Check(password, hash)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // stored hash is corrupt
//	}
var (
	// ErrInvalidHash is returned when a hash string has the right prefix for
	// a driver but cannot be parsed.  For FSHP hashes the underlying fshp
	// error is wrapped as well.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned by a constructor when an option is out of
	// range, e.g. an unsupported FSHP variant or a bcrypt cost above 31.
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrDriverNotFound is returned when the requested or default driver has
	// not been registered.
	ErrDriverNotFound = errors.New("hashing: driver not found")

	// ErrEmptyDriverName is returned by [Manager.RegisterDriver] for "".
	ErrEmptyDriverName = errors.New("hashing: driver name must not be empty")

	// ErrNilHasher is returned by [Manager.RegisterDriver] for a nil [Hasher].
	ErrNilHasher = errors.New("hashing: hasher must not be nil")

	// ErrAlgorithmMismatch is returned by a [Hasher] when the hash belongs to
	// another driver.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)
