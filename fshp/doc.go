// Package fshp implements FSHP (Fairly Secure Hashed Password), a salted,
// iteratively hashed password scheme in the spirit of PBKDF1 (RFC 2898).
//
// # Hash format
//
// Every hash carries its own parameters, so no external configuration is
// needed to verify it later:
//
//	{FSHP<variant>|<saltlen>|<rounds>}<base64(salt ‖ digest)>
//
// The payload uses standard base64 with padding.  The variant selects the
// digest function:
//
//   - 0: SHA-1 (deprecated; kept so existing hashes still verify)
//   - 1: SHA-256 (default)
//   - 2: SHA-384
//   - 3: SHA-512
//
// # Algorithm
//
// The first round hashes salt ‖ password.  Every further round hashes only
// the previous digest.  A hash with rounds=N therefore performs exactly N
// digest computations.
//
// # Quick start
//
//	hash, err := fshp.Make("OrpheanBeholderScryDoubt")
//	// {FSHP1|8|4096}GVSUFDAjdh0vBosn1GUhzGLHP7BmkbCZVH/3TQqGIjADXpc+6NCg3g==
//
//	ok := fshp.Check("OrpheanBeholderScryDoubt", hash) // true
//
// # Verification never fails loudly
//
// [Verify] and [Check] return false for any malformed, truncated or
// unsupported hash string.  Use [Parse] when the reason matters.
//
// The final comparison is done in constant time.
package fshp
