package ring

import "github.com/latticekem/mlkem/pkg/mlkem/field"

// compressM is the same Barrett-style constant as field's barrettM,
// reused here for the Compress rounding division by Q.
const compressM uint64 = 20642679

// Compress maps each coefficient of p from [0, Q) to [0, 2^d) via
// round(2^d/Q * x) mod 2^d, for 0 <= d <= 11, in place.
func Compress(d uint, p *Poly) {
	for i, x := range p {
		y := (x.Uint32() << d) + uint32(field.Q)/2
		r := uint32((uint64(y) * compressM) >> 36)
		p[i] = field.FromU16(uint16(r & (uint32(1)<<d - 1)))
	}
}

// Decompress maps each coefficient of p from [0, 2^d) back to [0, Q)
// via round(Q/2^d * y), for 0 <= d <= 11, in place.
func Decompress(d uint, p *Poly) {
	for i, y := range p {
		qy := uint32(field.Q)*y.Uint32() + (1 << (d - 1))
		p[i] = field.FromU16(uint16(qy >> d))
	}
}
