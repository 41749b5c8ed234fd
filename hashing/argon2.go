package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2idOptions configures an [Argon2idHasher].  All values are written
// into the PHC string, so verification never depends on them.
type Argon2idOptions struct {
	// Memory is the memory cost in KiB.  Minimum 8 × Threads.
	Memory uint32
	// Time is the number of passes.  Minimum 1.
	Time uint32
	// Threads is the degree of parallelism.  Minimum 1.
	Threads uint8
	// KeyLen is the derived key length in bytes.  Minimum 4.
	KeyLen uint32
	// SaltLen is the random salt length in bytes.  Minimum 8.
	SaltLen uint32
	// MaxMemory caps the memory cost in KiB that Check accepts from a stored
	// hash.  Zero means no limit.  When set it must be at least Memory.
	MaxMemory uint32
}

// DefaultArgon2idOptions returns m=64 MiB, t=3, p=2, a 32-byte key, a
// 16-byte salt and a 1 GiB ceiling for stored hashes.
func DefaultArgon2idOptions() Argon2idOptions {
	return Argon2idOptions{
		Memory:    64 * 1024,
		Time:      3,
		Threads:   2,
		KeyLen:    32,
		SaltLen:   16,
		MaxMemory: 1024 * 1024,
	}
}

// Argon2idHasher hashes passwords with Argon2id and stores them as
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
//
// using unpadded standard base64.  It is safe for concurrent use.
type Argon2idHasher struct {
	opts Argon2idOptions
}

// NewArgon2idHasher returns [ErrInvalidOption] for out-of-range options.
func NewArgon2idHasher(opts Argon2idOptions) (*Argon2idHasher, error) {
	switch {
	case opts.Time < 1:
		return nil, fmt.Errorf("%w: argon2id time must be ≥ 1, got %d", ErrInvalidOption, opts.Time)
	case opts.Threads < 1:
		return nil, fmt.Errorf("%w: argon2id threads must be ≥ 1, got %d", ErrInvalidOption, opts.Threads)
	case opts.Memory < 8*uint32(opts.Threads):
		return nil, fmt.Errorf("%w: argon2id memory %d KiB must be ≥ 8×threads", ErrInvalidOption, opts.Memory)
	case opts.KeyLen < 4:
		return nil, fmt.Errorf("%w: argon2id key_len must be ≥ 4, got %d", ErrInvalidOption, opts.KeyLen)
	case opts.SaltLen < 8:
		return nil, fmt.Errorf("%w: argon2id salt_len must be ≥ 8, got %d", ErrInvalidOption, opts.SaltLen)
	case opts.MaxMemory != 0 && opts.MaxMemory < opts.Memory:
		return nil, fmt.Errorf("%w: argon2id max_memory %d KiB must be 0 or ≥ memory", ErrInvalidOption, opts.MaxMemory)
	}
	return &Argon2idHasher{opts: opts}, nil
}

// Driver returns [DriverArgon2id].
func (h *Argon2idHasher) Driver() DriverName { return DriverArgon2id }

// Options returns the configured parameters.
func (h *Argon2idHasher) Options() Argon2idOptions { return h.opts }

// Make hashes password with a fresh random salt.
func (h *Argon2idHasher) Make(password string) (string, error) {
	salt := make([]byte, h.opts.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("hashing: argon2id: failed to generate salt: %w", err)
	}
	o := h.opts
	key := argon2.IDKey([]byte(password), salt, o.Time, o.Memory, o.Threads, o.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, o.Memory, o.Time, o.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Check verifies password against an Argon2id hash in constant time.  A
// memory cost above MaxMemory is rejected with [ErrInvalidHash].
func (h *Argon2idHasher) Check(password, hash string) (bool, error) {
	p, err := decodeArgon2id(hash)
	if err != nil {
		return false, err
	}
	if h.opts.MaxMemory != 0 && p.memory > h.opts.MaxMemory {
		return false, fmt.Errorf("%w: argon2id memory %d KiB exceeds limit %d", ErrInvalidHash, p.memory, h.opts.MaxMemory)
	}
	key := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(key, p.key) == 1, nil
}

// NeedsRehash reports whether any cost parameter in hash differs from the
// configured options.
func (h *Argon2idHasher) NeedsRehash(hash string) (bool, error) {
	p, err := decodeArgon2id(hash)
	if err != nil {
		return false, err
	}
	return p.memory != h.opts.Memory ||
		p.time != h.opts.Time ||
		p.threads != h.opts.Threads ||
		uint32(len(p.key)) != h.opts.KeyLen, nil
}

// Info returns the parameters stored in an Argon2id hash.
func (h *Argon2idHasher) Info(hash string) (HashInfo, error) {
	p, err := decodeArgon2id(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: DriverArgon2id,
		Params: map[string]any{
			"version": p.version,
			"memory":  p.memory,
			"time":    p.time,
			"threads": p.threads,
			"key_len": uint32(len(p.key)),
		},
	}, nil
}

type argon2idParams struct {
	version int
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func decodeArgon2id(encoded string) (*argon2idParams, error) {
	if d, ok := DetectDriver(encoded); !ok || d != DriverArgon2id {
		return nil, fmt.Errorf("%w: hash does not appear to be argon2id", ErrAlgorithmMismatch)
	}
	// "$argon2id$v=19$m=…,t=…,p=…$salt$key" splits into 6 parts, the first empty.
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 5 PHC segments, got %d", ErrInvalidHash, len(parts)-1)
	}

	// Sscanf stops at the last verb, so each segment must also round-trip
	// to reject trailing input and non-canonical numbers.
	var p argon2idParams
	if _, err := fmt.Sscanf(parts[2], "v=%d", &p.version); err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrInvalidHash, err)
	}
	if fmt.Sprintf("v=%d", p.version) != parts[2] {
		return nil, fmt.Errorf("%w: version %q", ErrInvalidHash, parts[2])
	}
	if p.version != argon2.Version {
		return nil, fmt.Errorf("%w: argon2 version %d is not supported", ErrInvalidHash, p.version)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, fmt.Errorf("%w: parameters %q: %v", ErrInvalidHash, parts[3], err)
	}
	if fmt.Sprintf("m=%d,t=%d,p=%d", p.memory, p.time, p.threads) != parts[3] {
		return nil, fmt.Errorf("%w: parameters %q", ErrInvalidHash, parts[3])
	}
	if p.time < 1 || p.threads < 1 {
		return nil, fmt.Errorf("%w: parameters %q out of range", ErrInvalidHash, parts[3])
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}
	if len(p.key) < 4 {
		return nil, fmt.Errorf("%w: key is %d bytes", ErrInvalidHash, len(p.key))
	}
	return &p, nil
}
