package ring

import "github.com/latticekem/mlkem/pkg/mlkem/field"

// zeta is 17, a primitive 256th root of unity mod Q = 3329.
const zeta uint16 = 17

// zetaTable holds zeta^(BitRev7(k)) in a layout derived from
// BitRev8: table[BitRev8(i)] = zeta^i mod Q for i in 0..255. Reading
// table[k<<1] in the NTT butterflies and table[i^0x80] in
// MultiplyNTTs' base case both land on exactly the values Algorithms
// 8-11 specify; the single 256-entry table stores both the forward/
// inverse twiddles and the base-case multiplication gammas, a layout
// borrowed from the nccgroup/fips203 reference to avoid carrying two
// separate tables. See ntt_test.go for a derivation check.
var zetaTable [256]field.Z

func init() {
	x := uint32(1)
	for i := 0; i < 256; i++ {
		zetaTable[bitRev8(byte(i))] = field.FromU16(uint16(x))
		x = (x * uint32(zeta)) % uint32(field.Q)
	}
}

func bitRev8(x byte) byte {
	var r byte
	for i := 0; i < 8; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// layerSizes are the seven NTT stage widths, largest first.
var layerSizes = [7]int{128, 64, 32, 16, 8, 4, 2}

// NTT computes the NTT image (Algorithm 8) of f, mapping R_q -> T_q.
func NTT(f Poly) NTTPoly {
	out := NTTPoly(f)
	k := 1
	for _, length := range layerSizes {
		for start := 0; start < N; start += 2 * length {
			z := zetaTable[k<<1]
			k++
			for j := start; j < start+length; j++ {
				t := out[j+length].Mul(z)
				out[j+length] = out[j].Sub(t)
				out[j] = out[j].Add(t)
			}
		}
	}
	return out
}

// nttInvScale is 128^-1 mod Q = 3303, applied once after the seven
// Gentleman-Sande stages.
var nttInvScale = field.FromU16(3303)

// InverseNTT computes the inverse NTT (Algorithm 9), mapping T_q back
// to R_q.
func InverseNTT(f NTTPoly) Poly {
	out := Poly(f)
	k := 127
	for li := len(layerSizes) - 1; li >= 0; li-- {
		length := layerSizes[li]
		for start := 0; start < N; start += 2 * length {
			z := zetaTable[k<<1]
			k--
			for j := start; j < start+length; j++ {
				t := out[j]
				out[j] = t.Add(out[j+length])
				out[j+length] = z.Mul(out[j+length].Sub(t))
			}
		}
	}
	for i := range out {
		out[i] = out[i].Mul(nttInvScale)
	}
	return out
}

// baseCaseMultiply computes the product of a0+a1*X and b0+b1*X modulo
// X^2-gamma (Algorithm 11).
func baseCaseMultiply(a0, a1, b0, b1, gamma field.Z) (c0, c1 field.Z) {
	c0 = a0.Mul(b0).Add(a1.Mul(b1).Mul(gamma))
	c1 = a0.Mul(b1).Add(a1.Mul(b0))
	return c0, c1
}

// MultiplyNTTs computes the pointwise product of two NTT-domain
// polynomials (Algorithm 10).
func MultiplyNTTs(f, g NTTPoly) NTTPoly {
	var h NTTPoly
	for i := 0; i < N/2; i++ {
		gamma := zetaTable[i^0x80]
		c0, c1 := baseCaseMultiply(f[2*i], f[2*i+1], g[2*i], g[2*i+1], gamma)
		h[2*i] = c0
		h[2*i+1] = c1
	}
	return h
}
