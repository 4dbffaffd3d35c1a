// Package kpke implements K-PKE, the IND-CPA public-key encryption
// primitive underlying ML-KEM (FIPS 203 Algorithms 12-14). It is not
// IND-CCA secure on its own; callers needing CCA security use the
// root mlkem package's Fujisaki-Okamoto wrapper instead.
package kpke

import (
	"io"

	"github.com/pkg/errors"

	"github.com/latticekem/mlkem/pkg/mlkem/kdf"
	"github.com/latticekem/mlkem/pkg/mlkem/params"
	"github.com/latticekem/mlkem/pkg/mlkem/ring"
)

// ErrRNGFailure is returned when the supplied randomness source fails
// to fill a buffer.
var ErrRNGFailure = errors.New("kpke: random number generator failed")

// KeyGen runs Algorithm 12, K-PKE.KeyGen, producing an encryption key
// and decryption key pair for the given parameter set.
func KeyGen(p params.ParameterSet, rng io.Reader) (ekPKE, dkPKE []byte, err error) {
	var d [32]byte
	if _, err := io.ReadFull(rng, d[:]); err != nil {
		return nil, nil, errors.Wrap(ErrRNGFailure, err.Error())
	}

	rho, sigma := kdf.G(d[:])
	n := byte(0)

	aHat := expandMatrix(p.K, &rho)

	s := make(ring.Vector, p.K)
	for i := range s {
		s[i] = ring.SamplePolyCBD(p.Eta1, kdf.PRF(int(p.Eta1), &sigma, n))
		n++
	}

	e := make(ring.Vector, p.K)
	for i := range e {
		e[i] = ring.SamplePolyCBD(p.Eta1, kdf.PRF(int(p.Eta1), &sigma, n))
		n++
	}

	sHat := s.NTT()
	eHat := e.NTT()

	tHat := ring.AddVecs(ring.MulMatVec(aHat, sHat), eHat)

	ekPKE = make([]byte, p.EncapsulationKeyLen())
	for i := 0; i < p.K; i++ {
		copy(ekPKE[i*384:(i+1)*384], ring.ByteEncode(12, ring.Poly(tHat[i])))
	}
	copy(ekPKE[p.K*384:], rho[:])

	dkPKE = make([]byte, 384*p.K)
	for i := 0; i < p.K; i++ {
		copy(dkPKE[i*384:(i+1)*384], ring.ByteEncode(12, ring.Poly(sHat[i])))
	}

	return ekPKE, dkPKE, nil
}

// expandMatrix regenerates Â from its seed rho (Algorithm 12/13 steps
// 4-8). It is called independently by KeyGen and Encrypt: per Design
// Note 9.2 the matrix is never cached or transmitted, only its seed.
func expandMatrix(k int, rho *[32]byte) ring.Matrix {
	a := ring.NewMatrix(k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			// NIST's errata swaps the XOF byte order relative to the
			// matrix indices: position (row=i, col=j) is sampled from
			// XOF(rho, j, i).
			a[i][j] = ring.SampleNTT(kdf.NewXOF(rho, byte(j), byte(i)))
		}
	}
	return a
}

// Encrypt runs Algorithm 13, K-PKE.Encrypt, encrypting the 32-byte
// message m under ekPKE using the supplied encryption randomness r.
func Encrypt(p params.ParameterSet, ekPKE []byte, m []byte, r *[32]byte) ([]byte, error) {
	if len(ekPKE) != p.EncapsulationKeyLen() {
		return nil, errors.New("kpke: encryption key has wrong length")
	}
	if len(m) != 32 {
		return nil, errors.New("kpke: message must be 32 bytes")
	}

	n := byte(0)

	tHat := make(ring.NTTVector, p.K)
	for i := 0; i < p.K; i++ {
		poly, err := ring.ByteDecode(12, ekPKE[384*i:384*(i+1)])
		if err != nil {
			return nil, errors.Wrap(err, "kpke: decoding t_hat")
		}
		tHat[i] = ring.NTTPoly(poly)
	}

	var rho [32]byte
	copy(rho[:], ekPKE[384*p.K:384*p.K+32])

	aHat := expandMatrix(p.K, &rho)

	rVec := make(ring.Vector, p.K)
	for i := range rVec {
		rVec[i] = ring.SamplePolyCBD(p.Eta1, kdf.PRF(int(p.Eta1), r, n))
		n++
	}

	e1 := make(ring.Vector, p.K)
	for i := range e1 {
		e1[i] = ring.SamplePolyCBD(p.Eta2, kdf.PRF(int(p.Eta2), r, n))
		n++
	}

	e2 := ring.SamplePolyCBD(p.Eta2, kdf.PRF(int(p.Eta2), r, n))

	rHat := rVec.NTT()

	uHatVec := ring.MulMatTVec(aHat, rHat)
	uVec := uHatVec.InverseNTT()
	for i := range uVec {
		uVec[i] = uVec[i].Add(e1[i])
	}

	muEncoded, err := ring.ByteDecode(1, m)
	if err != nil {
		return nil, errors.Wrap(err, "kpke: decoding message")
	}
	ring.Decompress(1, &muEncoded)

	v := ring.InverseNTT(ring.DotTProd(tHat, rHat))
	v = v.Add(e2).Add(muEncoded)

	ct := make([]byte, p.CiphertextLen())
	step := 32 * int(p.Du)
	for i := 0; i < p.K; i++ {
		ring.Compress(p.Du, &uVec[i])
		copy(ct[i*step:(i+1)*step], ring.ByteEncode(p.Du, uVec[i]))
	}
	ring.Compress(p.Dv, &v)
	copy(ct[p.K*step:p.K*step+32*int(p.Dv)], ring.ByteEncode(p.Dv, v))

	return ct, nil
}

// Decrypt runs Algorithm 14, K-PKE.Decrypt, recovering the 32-byte
// message encoded in ct under dkPKE. It never returns an error for
// malformed ciphertext content that still has the right length; the
// caller's FO-transform re-encryption check is what rejects invalid
// ciphertexts.
func Decrypt(p params.ParameterSet, dkPKE []byte, ct []byte) ([]byte, error) {
	if len(dkPKE) != 384*p.K {
		return nil, errors.New("kpke: decryption key has wrong length")
	}
	if len(ct) != p.CiphertextLen() {
		return nil, errors.New("kpke: ciphertext has wrong length")
	}

	step := 32 * int(p.Du)
	c1 := ct[:step*p.K]
	c2 := ct[step*p.K:]

	uVec := make(ring.Vector, p.K)
	for i := 0; i < p.K; i++ {
		poly, err := ring.ByteDecode(p.Du, c1[i*step:(i+1)*step])
		if err != nil {
			return nil, errors.Wrap(err, "kpke: decoding u")
		}
		ring.Decompress(p.Du, &poly)
		uVec[i] = poly
	}

	v, err := ring.ByteDecode(p.Dv, c2)
	if err != nil {
		return nil, errors.Wrap(err, "kpke: decoding v")
	}
	ring.Decompress(p.Dv, &v)

	sHat := make(ring.NTTVector, p.K)
	for i := 0; i < p.K; i++ {
		poly, err := ring.ByteDecode(12, dkPKE[384*i:384*(i+1)])
		if err != nil {
			return nil, errors.Wrap(err, "kpke: decoding s_hat")
		}
		sHat[i] = ring.NTTPoly(poly)
	}

	nttU := uVec.NTT()
	w := v.Sub(ring.InverseNTT(ring.DotTProd(sHat, nttU)))

	ring.Compress(1, &w)
	return ring.ByteEncode(1, w), nil
}
