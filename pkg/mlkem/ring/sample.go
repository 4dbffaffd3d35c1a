package ring

import (
	"golang.org/x/crypto/sha3"

	"github.com/latticekem/mlkem/pkg/mlkem/field"
)

// SampleNTT performs rejection sampling (Algorithm 6) over a byte
// stream to produce a uniformly random element of T_q. It reads from
// xof 3 bytes at a time and keeps the same XOF state alive across
// draws. This function's running time depends on the stream content,
// which is only ever derived from the public seed rho, so unlike
// every other sampling/arithmetic routine in this package it is
// deliberately NOT constant-time.
func SampleNTT(xof sha3.ShakeHash) NTTPoly {
	var a NTTPoly
	var buf [3]byte
	j := 0
	for j < N {
		xof.Read(buf[:])
		d1 := uint32(buf[0]) + 256*(uint32(buf[1])&0x0F)
		d2 := uint32(buf[1])>>4 + 16*uint32(buf[2])

		if d1 < uint32(field.Q) {
			a[j] = field.FromU16(uint16(d1))
			j++
		}
		if d2 < uint32(field.Q) && j < N {
			a[j] = field.FromU16(uint16(d2))
			j++
		}
	}
	return a
}

// SamplePolyCBD samples a polynomial from the centered binomial
// distribution D_eta(R_q) (Algorithm 7, optimized form) given 64*eta
// bytes of input. It is constant-time in b: the popcount is computed
// via the classic bit-parallel SWAR sequence, with no table lookups or
// data-dependent branches.
func SamplePolyCBD(eta uint, b []byte) Poly {
	var f Poly
	var temp uint32
	bitIndex := uint(0)
	intIndex := 0
	span := 2 * eta
	for _, by := range b {
		temp |= uint32(by) << bitIndex
		bitIndex += 8
		for bitIndex >= span && intIndex < N {
			xMask := temp & (uint32(1)<<eta - 1)
			x := popcount(xMask)
			yMask := (temp >> eta) & (uint32(1)<<eta - 1)
			y := popcount(yMask)
			f[intIndex] = field.FromU16(x).Sub(field.FromU16(y))
			bitIndex -= span
			temp >>= span
			intIndex++
		}
	}
	return f
}

// popcount counts set bits in the low bits of x using the SWAR
// sequence: no branches, no tables.
func popcount(x uint32) uint16 {
	x = (x & 0x55555555) + ((x >> 1) & 0x55555555)
	x = (x & 0x33333333) + ((x >> 2) & 0x33333333)
	x = (x & 0x0F0F0F0F) + ((x >> 4) & 0x0F0F0F0F)
	return uint16(x)
}
