// Package kdf wraps the SHA3 family functions ML-KEM needs (PRF, XOF,
// G, H, J) around golang.org/x/crypto/sha3, the one hash dependency
// the core consumes.
package kdf

import (
	"golang.org/x/crypto/sha3"
)

// PRF is PRF_eta(s, b): SHAKE256 over (s || b), squeezed to 64*eta
// bytes.
func PRF(eta int, s *[32]byte, b byte) []byte {
	h := sha3.NewShake256()
	h.Write(s[:])
	h.Write([]byte{b})
	out := make([]byte, 64*eta)
	h.Read(out)
	return out
}

// NewXOF returns a live SHAKE128 state absorbed with rho || i || j,
// per the FIPS 203 IPD errata byte order: callers populating matrix
// position Â[row][col] must invoke NewXOF(rho, col, row) — see
// kpke.expandMatrix.
//
// The returned ShakeHash is read incrementally, 3 bytes at a time, by
// ring.SampleNTT; it must not be reinitialized between draws.
func NewXOF(rho *[32]byte, i, j byte) sha3.ShakeHash {
	h := sha3.NewShake128()
	h.Write(rho[:])
	h.Write([]byte{i, j})
	return h
}

// G is SHA3-512(x), split into two 32-byte halves. bs is concatenated
// in order without an intermediate buffer.
func G(bs ...[]byte) (a, b [32]byte) {
	h := sha3.New512()
	for _, chunk := range bs {
		h.Write(chunk)
	}
	digest := h.Sum(nil)
	copy(a[:], digest[:32])
	copy(b[:], digest[32:64])
	return a, b
}

// H is SHA3-256(x).
func H(bs ...[]byte) [32]byte {
	h := sha3.New256()
	for _, chunk := range bs {
		h.Write(chunk)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// J is SHAKE256(z || c), squeezed to 32 bytes, used for implicit
// rejection.
func J(z *[32]byte, c []byte) [32]byte {
	h := sha3.NewShake256()
	h.Write(z[:])
	h.Write(c)
	var out [32]byte
	h.Read(out[:])
	return out
}
