package hashing

import "strings"

// DriverName identifies a hashing driver.
type DriverName string

const (
	// DriverFSHP selects the FSHP driver.  It is the default.
	DriverFSHP DriverName = "fshp"
	// DriverBcrypt selects the bcrypt driver.
	DriverBcrypt DriverName = "bcrypt"
	// DriverArgon2id selects the Argon2id driver.
	DriverArgon2id DriverName = "argon2id"
)

// Hasher is implemented by every password hashing driver.
//
// Implementations must be safe for concurrent use.
type Hasher interface {
	// Make hashes a plaintext password with a fresh random salt.
	Make(password string) (string, error)

	// Check verifies password against hash.  It returns (true, nil) on match,
	// (false, nil) on mismatch and (false, err) when the hash is unusable.
	Check(password, hash string) (bool, error)

	// NeedsRehash reports whether hash was produced with parameters other
	// than the hasher's current configuration.
	NeedsRehash(hash string) (bool, error)

	// Info extracts the parameters embedded in hash without verifying it.
	Info(hash string) (HashInfo, error)

	// Driver returns the name this hasher is registered under by default.
	Driver() DriverName
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Driver is the algorithm that produced the hash.
	Driver DriverName

	// Params holds driver-specific parameters.
	//
	// FSHP:
	//   "variant"  → int    (0–3)
	//   "digest"   → string ("SHA-256", ...)
	//   "salt_len" → int    (bytes)
	//   "rounds"   → int
	//
	// bcrypt:
	//   "cost" → int
	//
	// Argon2id:
	//   "version" → int
	//   "memory"  → uint32 (KiB)
	//   "time"    → uint32
	//   "threads" → uint8
	//   "key_len" → uint32
	Params map[string]any
}

// DetectDriver inspects the prefix of hash and returns the driver that
// produced it.  The hash itself is not validated.
//
// The second return value is false when the prefix is not recognised.
func DetectDriver(hash string) (DriverName, bool) {
	switch {
	case strings.HasPrefix(hash, "{FSHP"):
		return DriverFSHP, true
	case strings.HasPrefix(hash, "$argon2id$"):
		return DriverArgon2id, true
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return DriverBcrypt, true
	default:
		return "", false
	}
}
