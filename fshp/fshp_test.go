package fshp_test

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/hasbyte1/go-fshp/fshp"
)

// vectors are the published FSHP test vectors shared by every
// implementation of the scheme.
var vectors = []struct {
	password string
	salt     string
	rounds   int
	variant  fshp.Variant
	hash     string
}{
	{"test", "", 1, fshp.SHA1, "{FSHP0|0|1}qUqP5cyxm6YcTAhz05Hph5gvu9M="},
	{"test", "12345678", 4096, fshp.SHA256, "{FSHP1|8|4096}MTIzNDU2NzjTdHcmoXwNc0ff9+ArUHoN0CvlbPZpxFi1C6RDM/MHSA=="},
	{"test", "!@#$%^&*", 1024, fshp.SHA384, "{FSHP2|8|1024}IUAjJCVeJir9dx/jPTFM5E0FpbGp5JqZ4cO4pf257/DoZ9CNVkYmKwb+V3D4wpkcu87anZ//pPc="},
	{"test", "FSHP", 512, fshp.SHA512, "{FSHP3|4|512}RlNIUA4i9JgmY1gNlSGLsfd+sz3UwNqadVLRdbP1/sGanLcZoMBUGX4giFdbHiZGVuvs480BWye+yVKjpDlbyVTOoxA="},
}

// ──────────────────────────────────────────────────────────────────────────────
// Known-answer vectors
// ──────────────────────────────────────────────────────────────────────────────

func TestMakeWithSalt_Vectors(t *testing.T) {
	for _, v := range vectors {
		got, err := fshp.MakeWithSalt(v.password, []byte(v.salt), v.rounds, v.variant)
		if err != nil {
			t.Fatalf("variant %d: %v", v.variant, err)
		}
		if got != v.hash {
			t.Errorf("variant %d:\n got  %s\n want %s", v.variant, got, v.hash)
		}
	}
}

func TestEncode_Vectors_SaltLenIgnoredWithExplicitSalt(t *testing.T) {
	for _, v := range vectors {
		// The reference test suites pass saltlen=0 alongside the salt.
		got, err := fshp.Encode([]byte(v.password), []byte(v.salt), 0, v.rounds, v.variant)
		if err != nil {
			t.Fatalf("variant %d: %v", v.variant, err)
		}
		if got != v.hash {
			t.Errorf("variant %d: got %s, want %s", v.variant, got, v.hash)
		}
	}
}

func TestCheck_Vectors(t *testing.T) {
	for _, v := range vectors {
		if !fshp.Check(v.password, v.hash) {
			t.Errorf("variant %d: Check returned false for %s", v.variant, v.hash)
		}
	}
}

func TestCheck_DocumentedExamples(t *testing.T) {
	cases := []struct{ password, hash string }{
		{"OrpheanBeholderScryDoubt", "{FSHP1|8|4096}GVSUFDAjdh0vBosn1GUhzGLHP7BmkbCZVH/3TQqGIjADXpc+6NCg3g=="},
		{"ExecuteOrder66", "{FSHP3|16|8192}0aY7rZQ+/PR+Rd5/I9ssRM7cjguyT8ibypNaSp/U1uziNO3BVlg5qPUng+zHUDQC3ao/JbzOnIBUtAeWHEy7a2vZeZ7jAwyJJa2EqOsq4Io="},
	}
	for _, c := range cases {
		if !fshp.Check(c.password, c.hash) {
			t.Errorf("Check(%q) returned false", c.password)
		}
	}
}

func TestMakeWithSalt_ZeroSaltSingleRound(t *testing.T) {
	salt := make([]byte, 8)
	got, err := fshp.MakeWithSalt("correcthorse", salt, 1, fshp.SHA256)
	if err != nil {
		t.Fatal(err)
	}

	d := sha256.Sum256(append(append([]byte{}, salt...), "correcthorse"...))
	want := "{FSHP1|8|1}" + base64.StdEncoding.EncodeToString(append(append([]byte{}, salt...), d[:]...))
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Encode
// ──────────────────────────────────────────────────────────────────────────────

func TestEncode_RoundsIterateOnDigestOnly(t *testing.T) {
	salt := []byte("saltsalt")
	const rounds = 5

	d := sha512.Sum512(append(append([]byte{}, salt...), "pw"...))
	digest := d[:]
	for i := 1; i < rounds; i++ {
		next := sha512.Sum512(digest)
		digest = next[:]
	}

	got, err := fshp.Encode([]byte("pw"), salt, 99, rounds, fshp.SHA512)
	if err != nil {
		t.Fatal(err)
	}
	want := "{FSHP3|8|5}" + base64.StdEncoding.EncodeToString(append(append([]byte{}, salt...), digest...))
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEncode_ClampsRoundsAndSaltLen(t *testing.T) {
	got, err := fshp.Encode([]byte(""), nil, -1, -1, fshp.SHA256)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "{FSHP1|0|1}") {
		t.Errorf("expected clamped prefix {FSHP1|0|1}, got %s", got)
	}
	if !fshp.Check("", got) {
		t.Error("clamped hash does not verify")
	}

	zero, _ := fshp.Encode([]byte("x"), []byte("s"), 1, 0, fshp.SHA1)
	one, _ := fshp.Encode([]byte("x"), []byte("s"), 1, 1, fshp.SHA1)
	if zero != one {
		t.Errorf("rounds=0 should behave as rounds=1: %s vs %s", zero, one)
	}
}

func TestEncode_UnsupportedVariant(t *testing.T) {
	for _, v := range []fshp.Variant{-1, 4, 9, 255} {
		got, err := fshp.Encode([]byte("p"), nil, 8, 1, v)
		if !errors.Is(err, fshp.ErrUnsupportedVariant) {
			t.Errorf("variant %d: expected ErrUnsupportedVariant, got %v", v, err)
		}
		if got != "" {
			t.Errorf("variant %d: expected no output, got %q", v, got)
		}
	}
}

func TestEncode_RandomSaltLength(t *testing.T) {
	for _, n := range []int{0, 1, 8, 16, 33} {
		hash, err := fshp.Encode([]byte("pw"), nil, n, 2, fshp.SHA384)
		if err != nil {
			t.Fatalf("saltlen %d: %v", n, err)
		}
		h, err := fshp.Parse(hash)
		if err != nil {
			t.Fatalf("saltlen %d: Parse: %v", n, err)
		}
		if h.SaltLen != n || len(h.Salt) != n {
			t.Errorf("saltlen %d: got SaltLen=%d len(Salt)=%d", n, h.SaltLen, len(h.Salt))
		}
		if len(h.Digest) != fshp.SHA384.Size() {
			t.Errorf("saltlen %d: digest is %d bytes", n, len(h.Digest))
		}
	}
}

func TestEncode_SaltTooLong(t *testing.T) {
	for _, n := range []int{fshp.MaxSaltLen + 1, 1 << 40, math.MaxInt} {
		got, err := fshp.Encode([]byte("pw"), nil, n, 1, fshp.SHA256)
		if !errors.Is(err, fshp.ErrSaltTooLong) {
			t.Errorf("saltlen %d: expected ErrSaltTooLong, got %v", n, err)
		}
		if got != "" {
			t.Errorf("saltlen %d: expected no output, got %q", n, got)
		}
	}

	hash, err := fshp.Encode([]byte("pw"), nil, fshp.MaxSaltLen, 1, fshp.SHA256)
	if err != nil {
		t.Fatalf("saltlen %d: %v", fshp.MaxSaltLen, err)
	}
	if h, err := fshp.Parse(hash); err != nil || len(h.Salt) != fshp.MaxSaltLen {
		t.Errorf("saltlen %d: Parse err=%v", fshp.MaxSaltLen, err)
	}

	// An explicit salt carries its own length.
	long := make([]byte, fshp.MaxSaltLen+1)
	if _, err := fshp.Encode([]byte("pw"), long, math.MaxInt, 1, fshp.SHA256); err != nil {
		t.Errorf("explicit long salt: %v", err)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	a, _ := fshp.Encode([]byte("pw"), salt, 8, 100, fshp.SHA256)
	b, _ := fshp.Encode([]byte("pw"), salt, 8, 100, fshp.SHA256)
	if a != b {
		t.Errorf("same inputs produced different outputs: %s vs %s", a, b)
	}
}

func TestEncode_DoesNotRetainSalt(t *testing.T) {
	salt := []byte("abcdefgh")
	before, _ := fshp.Encode([]byte("pw"), salt, 0, 3, fshp.SHA256)
	copy(salt, "zzzzzzzz")
	if !fshp.Check("pw", before) {
		t.Error("hash should still verify after the caller mutates its salt slice")
	}
}

func TestEncode_BinaryPassword(t *testing.T) {
	pw := []byte{0x00, 0xff, 0x10, 0x80}
	hash, err := fshp.Encode(pw, nil, 8, 10, fshp.SHA512)
	if err != nil {
		t.Fatal(err)
	}
	if !fshp.Verify(pw, hash) {
		t.Error("binary password does not verify")
	}
	if fshp.Verify(bytes.TrimLeft(pw, "\x00"), hash) {
		t.Error("different binary password verified")
	}
}

func TestMake_UsesDefaults(t *testing.T) {
	hash, err := fshp.Make("fshp")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "{FSHP1|8|4096}") {
		t.Errorf("unexpected prefix: %s", hash)
	}
}

func TestMake_ProducesUniqueHashes(t *testing.T) {
	h1, _ := fshp.Make("same-password")
	h2, _ := fshp.Make("same-password")
	if h1 == h2 {
		t.Error("two Make calls must produce different hashes (different salts)")
	}
}

func TestMakeWithParams(t *testing.T) {
	hash, err := fshp.MakeWithParams("ExecuteOrder66", fshp.Params{Variant: fshp.SHA512, SaltLen: 16, Rounds: 8192})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "{FSHP3|16|8192}") {
		t.Errorf("unexpected prefix: %s", hash)
	}
	if !fshp.Check("ExecuteOrder66", hash) {
		t.Error("Check returned false")
	}
}

func TestMakeWithSalt_NilSaltMeansEmpty(t *testing.T) {
	hash, err := fshp.MakeWithSalt("test", nil, 1, fshp.SHA1)
	if err != nil {
		t.Fatal(err)
	}
	if hash != vectors[0].hash {
		t.Errorf("got %s, want %s", hash, vectors[0].hash)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Variant
// ──────────────────────────────────────────────────────────────────────────────

func TestVariant(t *testing.T) {
	cases := []struct {
		v     fshp.Variant
		valid bool
		name  string
		size  int
	}{
		{fshp.SHA1, true, "SHA-1", 20},
		{fshp.SHA256, true, "SHA-256", 32},
		{fshp.SHA384, true, "SHA-384", 48},
		{fshp.SHA512, true, "SHA-512", 64},
		{fshp.Variant(7), false, "Variant(7)", 0},
	}
	for _, c := range cases {
		if c.v.Valid() != c.valid {
			t.Errorf("%d: Valid() = %v", c.v, c.v.Valid())
		}
		if c.v.String() != c.name {
			t.Errorf("%d: String() = %q, want %q", c.v, c.v.String(), c.name)
		}
		if c.v.Size() != c.size {
			t.Errorf("%d: Size() = %d, want %d", c.v, c.v.Size(), c.size)
		}
	}
}

func TestDefaultParams(t *testing.T) {
	p := fshp.DefaultParams()
	if p.Variant != fshp.SHA256 || p.SaltLen != 8 || p.Rounds != 4096 {
		t.Errorf("unexpected defaults: %+v", p)
	}
}
