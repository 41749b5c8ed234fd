package hashing

import (
	"fmt"

	"github.com/hasbyte1/go-fshp/fshp"
)

// FSHPOptions configures an [FSHPHasher].
//
// Every option is written into the hash prefix, so changing them only affects
// new hashes.  Old hashes keep verifying and are reported by NeedsRehash.
type FSHPOptions struct {
	// Variant selects the digest.  Default: [fshp.SHA256].
	Variant fshp.Variant

	// SaltLen is the random salt length in bytes.  Minimum 0.
	// Default: [fshp.DefaultSaltLen] (8).
	SaltLen int

	// Rounds is the number of digest computations.  Minimum 1.
	// Default: [fshp.DefaultRounds] (4096).
	Rounds int

	// MaxRounds caps the round count Check accepts from a stored hash, so a
	// forged hash cannot tie up the CPU.  Zero means no limit.  When set it
	// must be at least Rounds.
	MaxRounds int
}

// DefaultFSHPOptions returns the FSHP1 defaults: SHA-256, 8-byte salt,
// 4096 rounds.
func DefaultFSHPOptions() FSHPOptions {
	p := fshp.DefaultParams()
	return FSHPOptions{Variant: p.Variant, SaltLen: p.SaltLen, Rounds: p.Rounds}
}

// FSHPHasher hashes passwords with FSHP.
//
// FSHPHasher is immutable after construction and safe for concurrent use.
type FSHPHasher struct {
	opts FSHPOptions
}

// NewFSHPHasher validates opts and returns a hasher.  It returns
// [ErrInvalidOption] for an unsupported variant, a salt length outside
// [0, fshp.MaxSaltLen], fewer than one round or a MaxRounds below Rounds.
func NewFSHPHasher(opts FSHPOptions) (*FSHPHasher, error) {
	if !opts.Variant.Valid() {
		return nil, fmt.Errorf("%w: fshp variant %d is not supported", ErrInvalidOption, int(opts.Variant))
	}
	if opts.SaltLen < 0 || opts.SaltLen > fshp.MaxSaltLen {
		return nil, fmt.Errorf("%w: fshp salt_len must be in [0, %d], got %d", ErrInvalidOption, fshp.MaxSaltLen, opts.SaltLen)
	}
	if opts.Rounds < 1 {
		return nil, fmt.Errorf("%w: fshp rounds must be ≥ 1, got %d", ErrInvalidOption, opts.Rounds)
	}
	if opts.MaxRounds < 0 || (opts.MaxRounds > 0 && opts.MaxRounds < opts.Rounds) {
		return nil, fmt.Errorf("%w: fshp max_rounds must be 0 or ≥ rounds (%d), got %d", ErrInvalidOption, opts.Rounds, opts.MaxRounds)
	}
	return &FSHPHasher{opts: opts}, nil
}

// Driver returns [DriverFSHP].
func (h *FSHPHasher) Driver() DriverName { return DriverFSHP }

// Options returns the configured parameters.
func (h *FSHPHasher) Options() FSHPOptions { return h.opts }

// Make hashes password with a fresh random salt.
func (h *FSHPHasher) Make(password string) (string, error) {
	hash, err := fshp.MakeWithParams(password, h.params())
	if err != nil {
		return "", fmt.Errorf("hashing: fshp: %w", err)
	}
	return hash, nil
}

// Check verifies password against an FSHP hash.  The parameters are read
// from the hash, not from the hasher's options, except that a round count
// above MaxRounds is rejected with [ErrInvalidHash] before any hashing.
func (h *FSHPHasher) Check(password, hash string) (bool, error) {
	p, err := h.parse(hash)
	if err != nil {
		return false, err
	}
	if h.opts.MaxRounds > 0 && p.Rounds > h.opts.MaxRounds {
		return false, fmt.Errorf("%w: fshp rounds %d exceed limit %d", ErrInvalidHash, p.Rounds, h.opts.MaxRounds)
	}
	return fshp.Check(password, hash), nil
}

// NeedsRehash reports whether the variant, salt length or round count in
// hash differs from the hasher's options.
func (h *FSHPHasher) NeedsRehash(hash string) (bool, error) {
	p, err := h.parse(hash)
	if err != nil {
		return false, err
	}
	return p.Variant != h.opts.Variant ||
		p.SaltLen != h.opts.SaltLen ||
		p.Rounds != h.opts.Rounds, nil
}

// Info returns the parameters stored in an FSHP hash.
func (h *FSHPHasher) Info(hash string) (HashInfo, error) {
	p, err := h.parse(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: DriverFSHP,
		Params: map[string]any{
			"variant":  int(p.Variant),
			"digest":   p.Variant.String(),
			"salt_len": p.SaltLen,
			"rounds":   p.Rounds,
		},
	}, nil
}

func (h *FSHPHasher) params() fshp.Params {
	return fshp.Params{Variant: h.opts.Variant, SaltLen: h.opts.SaltLen, Rounds: h.opts.Rounds}
}

func (h *FSHPHasher) parse(hash string) (*fshp.Hash, error) {
	if d, ok := DetectDriver(hash); !ok || d != DriverFSHP {
		return nil, fmt.Errorf("%w: hash does not appear to be fshp", ErrAlgorithmMismatch)
	}
	p, err := fshp.Parse(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	return p, nil
}
