// Package field implements arithmetic in Z_q for the ML-KEM modulus
// q = 3329. All operations are branch- and table-lookup-free on the
// value, so that code operating on secret field elements does not leak
// timing or memory-access information through the coefficient value.
package field

// Q is the ML-KEM prime modulus.
const Q uint16 = 3329

// barrettM is the Barrett reduction constant ceil(2^36 / Q), chosen so
// that a single multiply-shift-subtract reduces any product of two
// elements of [0, Q) into [0, Q) with no final conditional correction.
//
//	M = floor((1<<36 + Q - 1) / Q) = 20642679
const barrettM uint64 = 20642679

// Z is a residue modulo Q, always held in the canonical range [0, Q).
// The zero value is the additive identity. Z is constructed via
// FromU16 by callers that have already reduced their input (e.g. after
// a mod-Q reduction, or because the input is known small); it performs
// no range check itself, matching the "explicit setter accepts u16
// without range check" contract.
type Z struct {
	v uint16
}

// FromU16 builds a Z from a value already known to be in [0, Q). The
// caller is responsible for the invariant; this function does not
// range-check, mirroring the original reference's set_u16.
func FromU16(v uint16) Z {
	return Z{v: v}
}

// Uint16 returns the canonical representative in [0, Q).
func (z Z) Uint16() uint16 {
	return z.v
}

// Uint32 returns the canonical representative widened to uint32, for
// callers doing further arithmetic in wider temporaries.
func (z Z) Uint32() uint32 {
	return uint32(z.v)
}

// Add returns z+other mod Q.
func (z Z) Add(other Z) Z {
	res := uint32(z.v) + uint32(other.v)
	res -= uint32(Q)
	// If res underflowed, its top bit is set across the full 32-bit
	// width; shifting it down and masking with Q adds Q back exactly
	// when the subtraction went negative, with no branch.
	res += (res >> 16) & uint32(Q)
	return Z{v: uint16(res)}
}

// Sub returns z-other mod Q.
func (z Z) Sub(other Z) Z {
	res := uint32(z.v) - uint32(other.v)
	res += (res >> 16) & uint32(Q)
	return Z{v: uint16(res)}
}

// Mul returns z*other mod Q via Barrett reduction.
func (z Z) Mul(other Z) Z {
	prod := uint32(z.v) * uint32(other.v)
	quot := uint32((uint64(prod) * barrettM) >> 36)
	rem := prod - quot*uint32(Q)
	return Z{v: uint16(rem)}
}

// Neg returns -z mod Q.
func (z Z) Neg() Z {
	return Z{}.Sub(z)
}

// IsZero reports whether z is the additive identity.
func (z Z) IsZero() bool {
	return z.v == 0
}
