package mlkem

import (
	"io"

	"github.com/pkg/errors"

	"github.com/latticekem/mlkem/pkg/mlkem/kdf"
	"github.com/latticekem/mlkem/pkg/mlkem/kpke"
	"github.com/latticekem/mlkem/pkg/mlkem/params"
)

// mlKemKeyGen runs Algorithm 15, ML-KEM.KeyGen, producing a
// serialized encapsulation key and decapsulation key.
func mlKemKeyGen(p params.ParameterSet, rng io.Reader) (ek, dk []byte, err error) {
	var z [32]byte
	if _, err := io.ReadFull(rng, z[:]); err != nil {
		return nil, nil, errors.Wrap(ErrRNGFailure, err.Error())
	}

	ekPKE, dkPKE, err := kpke.KeyGen(p, rng)
	if err != nil {
		return nil, nil, err
	}

	ek = ekPKE
	hEK := kdf.H(ek)

	dk = make([]byte, p.DecapsulationKeyLen())
	off := 0
	copy(dk[off:], dkPKE)
	off += len(dkPKE)
	copy(dk[off:], ek)
	off += len(ek)
	copy(dk[off:], hEK[:])
	off += len(hEK)
	copy(dk[off:], z[:])

	return ek, dk, nil
}

// mlKemEncaps runs Algorithm 16, ML-KEM.Encaps, producing a shared
// secret and ciphertext for the given encapsulation key.
func mlKemEncaps(p params.ParameterSet, ek []byte, rng io.Reader) (sharedSecret [32]byte, ct []byte, err error) {
	var m [32]byte
	if _, err := io.ReadFull(rng, m[:]); err != nil {
		return sharedSecret, nil, errors.Wrap(ErrRNGFailure, err.Error())
	}

	hEK := kdf.H(ek)
	k, r := kdf.G(m[:], hEK[:])

	ct, err = kpke.Encrypt(p, ek, m[:], &r)
	if err != nil {
		return sharedSecret, nil, err
	}

	return k, ct, nil
}

// mlKemDecaps runs Algorithm 17, ML-KEM.Decaps, recovering the shared
// secret associated with ct under dk. It never returns an error on
// malformed ciphertext content: implicit rejection (Fujisaki-Okamoto)
// substitutes a ciphertext-derived pseudorandom value instead, so the
// caller cannot distinguish a rejected ciphertext from a valid one by
// the returned error alone.
func mlKemDecaps(p params.ParameterSet, dk []byte, ct []byte) ([32]byte, error) {
	dkPKE := dk[0 : 384*p.K]
	ekPKE := dk[384*p.K : 768*p.K+32]
	h := dk[768*p.K+32 : 768*p.K+64]
	var z [32]byte
	copy(z[:], dk[768*p.K+64:768*p.K+96])

	mPrime, err := kpke.Decrypt(p, dkPKE, ct)
	if err != nil {
		return [32]byte{}, err
	}

	kPrime, rPrime := kdf.G(mPrime, h)
	kBar := kdf.J(&z, ct)

	cPrime, err := kpke.Encrypt(p, ekPKE, mPrime, &rPrime)
	if err != nil {
		return [32]byte{}, err
	}

	selectOnMismatch(kPrime[:], kBar[:], ct, cPrime)
	return kPrime, nil
}

// selectOnMismatch overwrites dst with fallback, in place, if and only
// if a and b differ, without branching on the comparison result: every
// byte of both the comparison and the selection is touched regardless
// of where a and b first diverge. diff accumulates the bitwise OR of
// all byte differences; mask is then either all-zero or all-one bits
// derived from diff via the same "spread the high bit" technique used
// by field's add/sub reduction, so the final copy is a constant-time
// per-byte blend rather than a branch.
func selectOnMismatch(dst, fallback, a, b []byte) {
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	diff |= diff >> 4
	diff |= diff >> 2
	diff |= diff >> 1
	mask := -(diff & 1)

	for i := range dst {
		dst[i] = (dst[i] &^ mask) | (fallback[i] & mask)
	}
}
