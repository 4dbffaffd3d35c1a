package ring

import (
	"math/rand"
	"testing"

	"github.com/latticekem/mlkem/pkg/mlkem/field"
	"github.com/stretchr/testify/require"
)

func TestZetaTableKnownEntry(t *testing.T) {
	// zeta^32 mod q, landing at index BitRev8(32) = 4.
	require.Equal(t, uint16(2580), zetaTable[4].Uint16())
}

func randomPoly(r *rand.Rand) Poly {
	var p Poly
	for i := range p {
		p[i] = field.FromU16(uint16(r.Intn(int(field.Q))))
	}
	return p
}

func TestNTTRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		p := randomPoly(r)
		got := InverseNTT(NTT(p))
		require.Equal(t, p, got)
	}
}

func TestMultiplyNTTsMatchesConvolution(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for trial := 0; trial < 20; trial++ {
		f := randomPoly(r)
		g := randomPoly(r)

		// Schoolbook negacyclic convolution in R_q as a ground truth.
		var want Poly
		for i := 0; i < N; i++ {
			for j := 0; j < N; j++ {
				prod := f[i].Mul(g[j])
				k := i + j
				if k < N {
					want[k] = want[k].Add(prod)
				} else {
					want[k-N] = want[k-N].Sub(prod)
				}
			}
		}

		got := InverseNTT(MultiplyNTTs(NTT(f), NTT(g)))
		require.Equal(t, want, got)
	}
}
