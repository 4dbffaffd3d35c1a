package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSubMulCanonicalRange(t *testing.T) {
	for a := uint32(0); a < uint32(Q); a += 37 {
		for b := uint32(0); b < uint32(Q); b += 53 {
			za, zb := FromU16(uint16(a)), FromU16(uint16(b))

			sum := za.Add(zb)
			require.Less(t, sum.Uint16(), Q)
			require.Equal(t, (a+b)%uint32(Q), uint32(sum.Uint16()))

			diff := za.Sub(zb)
			require.Less(t, diff.Uint16(), Q)
			want := (a + uint32(Q) - b) % uint32(Q)
			require.Equal(t, want, uint32(diff.Uint16()))

			prod := za.Mul(zb)
			require.Less(t, prod.Uint16(), Q)
			require.Equal(t, (a*b)%uint32(Q), uint32(prod.Uint16()))
		}
	}
}

func TestNeg(t *testing.T) {
	for a := uint32(0); a < uint32(Q); a += 11 {
		z := FromU16(uint16(a))
		n := z.Neg()
		require.True(t, z.Add(n).IsZero())
	}
}

func TestMulExhaustiveSmall(t *testing.T) {
	for a := uint32(0); a < 64; a++ {
		for b := uint32(0); b < uint32(Q); b++ {
			got := FromU16(uint16(a)).Mul(FromU16(uint16(b)))
			require.Equal(t, (a*b)%uint32(Q), uint32(got.Uint16()), "a=%d b=%d", a, b)
		}
	}
}
