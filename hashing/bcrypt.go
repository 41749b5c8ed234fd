package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when bcrypt is the default
// driver.
const DefaultBcryptCost = 12

// BcryptOptions configures a [BcryptHasher].
type BcryptOptions struct {
	// Cost is the logarithmic work factor, in [bcrypt.MinCost, bcrypt.MaxCost].
	Cost int
}

// DefaultBcryptOptions returns BcryptOptions with [DefaultBcryptCost].
func DefaultBcryptOptions() BcryptOptions {
	return BcryptOptions{Cost: DefaultBcryptCost}
}

// BcryptHasher verifies and produces bcrypt hashes.  With FSHP as the
// default driver it mostly serves hashes imported from other systems until
// NeedsRehash moves them over.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns [ErrInvalidOption] if Cost is out of range.
func NewBcryptHasher(opts BcryptOptions) (*BcryptHasher, error) {
	if opts.Cost < bcrypt.MinCost || opts.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, opts.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: opts.Cost}, nil
}

// Driver returns [DriverBcrypt].
func (h *BcryptHasher) Driver() DriverName { return DriverBcrypt }

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Make hashes password with bcrypt.  Passwords longer than 72 bytes are
// rejected by bcrypt and surface as an error.
func (h *BcryptHasher) Make(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: %w", err)
	}
	return string(hash), nil
}

// Check verifies password against a bcrypt hash.
func (h *BcryptHasher) Check(password, hash string) (bool, error) {
	if err := h.expect(hash); err != nil {
		return false, err
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

// NeedsRehash reports whether the stored cost differs from the configured one.
func (h *BcryptHasher) NeedsRehash(hash string) (bool, error) {
	cost, err := h.costOf(hash)
	if err != nil {
		return false, err
	}
	return cost != h.cost, nil
}

// Info returns the cost stored in a bcrypt hash.
func (h *BcryptHasher) Info(hash string) (HashInfo, error) {
	cost, err := h.costOf(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{Driver: DriverBcrypt, Params: map[string]any{"cost": cost}}, nil
}

func (h *BcryptHasher) costOf(hash string) (int, error) {
	if err := h.expect(hash); err != nil {
		return 0, err
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return cost, nil
}

func (h *BcryptHasher) expect(hash string) error {
	if d, ok := DetectDriver(hash); !ok || d != DriverBcrypt {
		return fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	return nil
}
