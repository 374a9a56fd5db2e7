package randompkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceNumber(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		reference := ReferenceNumber()

		require.Len(t, reference, len(ReferencePrefix)+10)
		require.True(t, strings.HasPrefix(reference, ReferencePrefix))

		for _, c := range reference[len(ReferencePrefix):] {
			require.True(t, (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'),
				"unexpected character %q in %q", c, reference)
		}

		seen[reference] = struct{}{}
	}

	// 36^10 possible suffixes; duplicates in 1000 draws mean broken generation.
	require.Len(t, seen, 1000)
}

func TestAccountNumber(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		number := AccountNumber()

		require.Len(t, number, len(AccountNumberPrefix)+8)
		require.True(t, strings.HasPrefix(number, AccountNumberPrefix))

		for _, c := range number[len(AccountNumberPrefix):] {
			require.True(t, c >= '0' && c <= '9',
				"unexpected character %q in %q", c, number)
		}

		seen[number] = struct{}{}
	}

	require.NotEmpty(t, seen)
}

func TestString(t *testing.T) {
	t.Parallel()

	s := String(32)
	require.Len(t, s, 32)

	for _, c := range s {
		require.True(t, c >= 'a' && c <= 'z')
	}
}

func TestFloatBetween(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		f := FloatBetween(10, 20)
		require.GreaterOrEqual(t, f, 10.0)
		require.LessOrEqual(t, f, 20.0)
	}
}
