package cryptox_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/bookreview/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash_PHCFormat(t *testing.T) {
	h := cryptox.NewHasher("pepper")

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := h.Hash(tt.password)
			require.NoError(t, err)

			parts := strings.Split(digest, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])

			require.NoError(t, h.Verify(tt.password, digest))
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := cryptox.NewHasher("")

	a, err := h.Hash("samepassword")
	require.NoError(t, err)
	b, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, h.Verify("samepassword", a))
	require.NoError(t, h.Verify("samepassword", b))
}

func TestVerify_WrongPassword(t *testing.T) {
	h := cryptox.NewHasher("pepper")
	digest, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		strings.Repeat("x", 10000),
	} {
		require.ErrorIs(t, h.Verify(wrong, digest), cryptox.ErrPasswordMismatch, wrong)
	}
}

func TestVerify_PepperMatters(t *testing.T) {
	digest, err := cryptox.NewHasher("pepper-a").Hash("pw")
	require.NoError(t, err)

	require.NoError(t, cryptox.NewHasher("pepper-a").Verify("pw", digest))
	require.ErrorIs(t, cryptox.NewHasher("pepper-b").Verify("pw", digest), cryptox.ErrPasswordMismatch)
}

func TestVerify_InvalidDigest(t *testing.T) {
	h := cryptox.NewHasher("")

	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"wrong algorithm", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 key", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"truncated bcrypt", "$2b$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, h.Verify("pw", tt.digest), cryptox.ErrInvalidHash)
		})
	}
}

func TestVerify_LegacyBcrypt(t *testing.T) {
	h := cryptox.NewHasher("pepper")

	legacy, err := bcrypt.GenerateFromPassword([]byte("correct-pw"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, h.Verify("correct-pw", string(legacy)))
	require.ErrorIs(t, h.Verify("wrong-pw", string(legacy)), cryptox.ErrPasswordMismatch)
	require.True(t, h.NeedsRehash(string(legacy)))
}

func TestNeedsRehash(t *testing.T) {
	h := cryptox.NewHasher("")
	current, err := h.Hash("pw")
	require.NoError(t, err)
	require.False(t, h.NeedsRehash(current))

	cheap := cryptox.NewHasher("").WithParams(cryptox.Argon2Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})
	old, err := cheap.Hash("pw")
	require.NoError(t, err)
	require.True(t, h.NeedsRehash(old))
	require.NoError(t, h.Verify("pw", old), "parameters are read from the digest")

	require.True(t, h.NeedsRehash("garbage"))
}

func TestVerifyDummy(t *testing.T) {
	h := cryptox.NewHasher("")
	require.NotPanics(t, func() {
		h.VerifyDummy("anything")
		h.VerifyDummy("anything else")
	})
}

func TestLoadPepper(t *testing.T) {
	t.Run("empty path disables pepper", func(t *testing.T) {
		p, err := cryptox.LoadPepper("")
		require.NoError(t, err)
		require.Empty(t, p)
	})

	t.Run("generates then reloads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secrets", "pepper")

		first, err := cryptox.LoadPepper(path)
		require.NoError(t, err)
		require.NotEmpty(t, first)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		second, err := cryptox.LoadPepper(path)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}
