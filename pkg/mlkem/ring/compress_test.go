package ring

import (
	"math/rand"
	"testing"

	"github.com/latticekem/mlkem/pkg/mlkem/field"
	"github.com/stretchr/testify/require"
)

func TestCompressOutputRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for d := uint(1); d <= 11; d++ {
		p := randomPoly(r)
		Compress(d, &p)
		bound := uint16(1) << d
		for _, c := range p {
			require.Less(t, c.Uint16(), bound)
		}
	}
}

func TestDecompressOutputRange(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	for d := uint(1); d <= 11; d++ {
		var p Poly
		bound := int(uint16(1) << d)
		for i := range p {
			p[i] = field.FromU16(uint16(r.Intn(bound)))
		}
		Decompress(d, &p)
		for _, c := range p {
			require.Less(t, c.Uint16(), field.Q)
		}
	}
}

// Compress/Decompress is lossy; the round-trip error must stay within
// the rounding tolerance of +-ceil(q/2^(d+1)).
func TestCompressDecompressBoundedError(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for d := uint(4); d <= 11; d++ {
		p := randomPoly(r)
		orig := p
		Compress(d, &p)
		Decompress(d, &p)
		tolerance := (int32(field.Q) + (int32(1) << (d + 1)) - 1) >> (d + 1)
		for i := range p {
			diff := int32(p[i].Uint16()) - int32(orig[i].Uint16())
			if diff > int32(field.Q)/2 {
				diff -= int32(field.Q)
			}
			if diff < -int32(field.Q)/2 {
				diff += int32(field.Q)
			}
			if diff < 0 {
				diff = -diff
			}
			require.LessOrEqual(t, diff, tolerance)
		}
	}
}
