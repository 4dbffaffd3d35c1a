package randsrc

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministicIsReproducible(t *testing.T) {
	a := make([]byte, 64)
	b := make([]byte, 64)
	_, err := io.ReadFull(Deterministic(123), a)
	require.NoError(t, err)
	_, err = io.ReadFull(Deterministic(123), b)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDeterministicDiffersByDifferentSeed(t *testing.T) {
	a := make([]byte, 64)
	b := make([]byte, 64)
	_, _ = io.ReadFull(Deterministic(1), a)
	_, _ = io.ReadFull(Deterministic(2), b)
	require.NotEqual(t, a, b)
}

func TestReplayServesInOrderThenExhausts(t *testing.T) {
	r := NewReplay([]byte{1, 2, 3, 4, 5})
	buf := make([]byte, 3)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{1, 2, 3}, buf)

	buf2 := make([]byte, 3)
	n, err = r.Read(buf2)
	require.ErrorIs(t, err, ErrReplayExhausted)
	require.Equal(t, 2, n)
}
