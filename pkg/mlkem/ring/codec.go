package ring

import (
	"github.com/latticekem/mlkem/pkg/mlkem/field"
	"github.com/pkg/errors"
)

// ErrModulus is returned by ByteDecode when d=12 and a decoded
// coefficient is >= Q: the modulus check FIPS 203 section 6.2.2
// requires on public-key import.
var ErrModulus = errors.New("ring: decoded coefficient out of range [0, q)")

// ByteEncode packs the 256 coefficients of p, each bounded by 2^d (by
// Q when d=12), into 32*d bytes using a little-endian sliding bit
// accumulator (Algorithm 4), for 1 <= d <= 12.
func ByteEncode(d uint, p Poly) []byte {
	out := make([]byte, 32*d)
	var temp uint32
	bitIndex := uint(0)
	byteIndex := 0
	mask := uint32(1)<<d - 1
	for _, coeff := range p {
		temp |= (coeff.Uint32() & mask) << bitIndex
		bitIndex += d
		for bitIndex > 7 {
			out[byteIndex] = byte(temp)
			temp >>= 8
			byteIndex++
			bitIndex -= 8
		}
	}
	return out
}

// ByteDecode unpacks 32*d bytes into 256 d-bit integers (Algorithm 5),
// for 1 <= d <= 12. When d=12 every decoded coefficient must satisfy
// e < Q, implementing the modulus check required for public-key
// validation on import; ErrModulus is returned otherwise. For d<12 the
// bound e < 2^d holds trivially by construction.
func ByteDecode(d uint, b []byte) (Poly, error) {
	var out Poly
	var temp uint32
	bitIndex := uint(0)
	intIndex := 0
	mask := uint32(1)<<d - 1
	for _, by := range b {
		temp |= uint32(by) << bitIndex
		bitIndex += 8
		for bitIndex >= d && intIndex < N {
			out[intIndex] = field.FromU16(uint16(temp & mask))
			bitIndex -= d
			temp >>= d
			intIndex++
		}
	}

	limit := uint32(1) << d
	if d == 12 {
		limit = uint32(field.Q)
	}
	for _, c := range out {
		if c.Uint32() >= limit {
			return Poly{}, ErrModulus
		}
	}
	return out, nil
}
