package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cost     int
		expected int
	}{
		{"min cost", bcrypt.MinCost, bcrypt.MinCost},
		{"default cost", DefaultCost, DefaultCost},
		{"zero falls back to default", 0, DefaultCost},
		{"too high falls back to default", bcrypt.MaxCost + 1, DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NewHasher(tt.cost).cost)
		})
	}
}

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	passwords := []string{"password123", "p", "日本語のパスワード", strings.Repeat("a", 72)}

	for _, p := range passwords {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash, "hash must not equal plaintext")
		assert.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be bcrypt encoded")

		ok, err := h.Verify(p, hash)
		require.NoError(t, err)
		assert.True(t, ok, "password should verify against its own hash")

		ok, err = h.Verify(p+"x", hash)
		require.NoError(t, err)
		assert.False(t, ok, "different password should not verify")
	}
}

func TestHasher_HashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of the same password should differ")
}

func TestHasher_UsesConfiguredCost(t *testing.T) {
	t.Parallel()

	hash, err := NewHasher(DefaultCost).Hash("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestHasher_Verify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	for _, hash := range []string{"", "not-a-hash", "$2a$10$short"} {
		ok, err := h.Verify("password123", hash)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrMalformedHash, "hash %q", hash)
	}
}

func TestHasher_Verify_RejectsInputPastLimit(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	stored := strings.Repeat("a", MaxPasswordBytes)
	hash, err := h.Hash(stored)
	require.NoError(t, err)

	tests := []struct {
		name  string
		plain string
	}{
		{"one extra byte", stored + "b"},
		{"long suffix", stored + "-anything-at-all"},
		{"same byte repeated", stored + "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, err := h.Verify(tt.plain, hash)
			require.NoError(t, err)
			assert.False(t, ok, "input longer than the stored password must not verify")

			_, err = h.Hash(tt.plain)
			assert.ErrorIs(t, err, ErrPasswordTooLong)
		})
	}
}

func TestHasher_Hash_TooLong(t *testing.T) {
	t.Parallel()

	_, err := NewHasher(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
