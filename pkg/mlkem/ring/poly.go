// Package ring implements the polynomial ring R_q = Z_q[X]/(X^256+1)
// and its NTT image T_q: the byte codec, compression, the NTT and its
// inverse, rejection/CBD sampling, and the K-wide vector/matrix linear
// algebra ML-KEM builds on.
package ring

import "github.com/latticekem/mlkem/pkg/mlkem/field"

// N is the fixed polynomial degree for every ML-KEM parameter set.
const N = 256

// Poly holds 256 coefficients of an element of R_q (coefficient
// domain). Poly and NTTPoly are structurally identical but distinct
// Go types: the only way to go from one to the other is through NTT
// and InverseNTT, so code that would silently mix a coefficient-domain
// polynomial with an NTT-domain one fails to compile instead of
// producing a silently wrong answer.
type Poly [N]field.Z

// NTTPoly holds 256 coefficients representing the NTT image (T_q
// domain) of a polynomial.
type NTTPoly [N]field.Z

// Add returns p+q coefficient-wise, reduced mod Q.
func (p Poly) Add(q Poly) Poly {
	var r Poly
	for i := range r {
		r[i] = p[i].Add(q[i])
	}
	return r
}

// Sub returns p-q coefficient-wise, reduced mod Q.
func (p Poly) Sub(q Poly) Poly {
	var r Poly
	for i := range r {
		r[i] = p[i].Sub(q[i])
	}
	return r
}

// Add returns p+q coefficient-wise in T_q.
func (p NTTPoly) Add(q NTTPoly) NTTPoly {
	var r NTTPoly
	for i := range r {
		r[i] = p[i].Add(q[i])
	}
	return r
}
