package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{16, TokenSize, 64} {
		a, err := GenerateToken(size)
		require.NoError(t, err)
		b, err := GenerateToken(size)
		require.NoError(t, err)

		require.NotEmpty(t, a)
		require.NotEqual(t, a, b, "tokens should be unique")
	}

	// 32 bytes of base64url without padding.
	tok, err := GenerateToken(TokenSize)
	require.NoError(t, err)
	require.Len(t, tok, 43)
	require.NotContains(t, tok, "=")
	require.NotContains(t, tok, "/")
	require.NotContains(t, tok, "+")
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		tok, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, tok)
	}
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("test-token-1")
	fp1b := FingerprintToken("test-token-1")
	fp2 := FingerprintToken("test-token-2")

	require.Equal(t, fp1a, fp1b)
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43)

	require.True(t, EqualFingerprint("test-token-1", fp1a))
	require.False(t, EqualFingerprint("test-token-2", fp1a))
}
