package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrInvalidHash      = errors.New("cryptox: invalid password hash")
)

// Argon2Params are the argon2id cost parameters encoded into every digest.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  int
}

// DefaultArgon2Params follow the OWASP minimum for argon2id.
var DefaultArgon2Params = Argon2Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// Hasher produces and checks password digests. New digests are argon2id PHC
// strings; bcrypt digests are accepted on verification so accounts created
// by older deployments can still log in.
type Hasher struct {
	pepper string
	params Argon2Params

	dummyOnce sync.Once
	dummy     string
}

// NewHasher returns a Hasher that mixes pepper into every argon2id digest.
// An empty pepper is allowed.
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper, params: DefaultArgon2Params}
}

// WithParams overrides the argon2id cost. Tests use this to keep hashing fast.
func (h *Hasher) WithParams(p Argon2Params) *Hasher {
	h.params = p
	return h
}

// Hash returns a PHC-format argon2id digest of password with a fresh salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: read salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify returns nil when password matches digest, ErrPasswordMismatch when
// it does not and ErrInvalidHash when digest cannot be decoded.
func (h *Hasher) Verify(password, digest string) error {
	if isBcrypt(digest) {
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return ErrPasswordMismatch
		default:
			return fmt.Errorf("%w: %w", ErrInvalidHash, err)
		}
	}

	p, salt, want, err := decodeArgon2(digest)
	if err != nil {
		return err
	}

	got := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		p.Iterations,
		p.Memory,
		p.Parallelism,
		uint32(len(want)), // #nosec G115 - digest length is bounded by the decoder
	)
	if subtle.ConstantTimeCompare(got, want) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

// NeedsRehash reports whether digest was produced by an older algorithm or
// with different cost parameters than the Hasher currently uses.
func (h *Hasher) NeedsRehash(digest string) bool {
	if isBcrypt(digest) {
		return true
	}
	p, _, want, err := decodeArgon2(digest)
	if err != nil {
		return true
	}
	return p.Memory != h.params.Memory ||
		p.Iterations != h.params.Iterations ||
		p.Parallelism != h.params.Parallelism ||
		len(want) != int(h.params.KeyLength)
}

// VerifyDummy spends roughly the same time as a real verification. Login
// calls it for unknown accounts so response time does not reveal whether an
// email is registered.
func (h *Hasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = h.Hash("dummy-password-for-timing")
	})
	_ = h.Verify(password, h.dummy)
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}

// decodeArgon2 splits $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func decodeArgon2(digest string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return p, nil, nil, fmt.Errorf("%w: wrong version", ErrInvalidHash)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("%w: parameters: %w", ErrInvalidHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, fmt.Errorf("%w: salt", ErrInvalidHash)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: key", ErrInvalidHash)
	}
	p.SaltLength = len(salt)
	p.KeyLength = uint32(len(key)) // #nosec G115 - decoded from a short string
	return p, salt, key, nil
}
