// Package mlkem implements ML-KEM (FIPS 203), the IND-CCA2-secure
// module-lattice key-encapsulation mechanism, across its three
// standardized parameter sets. It wraps pkg/mlkem/kpke's IND-CPA
// primitive with the Fujisaki-Okamoto transform (implicit rejection)
// to reach CCA security.
package mlkem

import (
	"io"

	"github.com/pkg/errors"

	"github.com/latticekem/mlkem/pkg/mlkem/kdf"
	"github.com/latticekem/mlkem/pkg/mlkem/params"
	"github.com/latticekem/mlkem/pkg/mlkem/ring"
)

// EncapsulationKey is the public key used to produce a ciphertext and
// shared secret via Encapsulate.
type EncapsulationKey struct {
	params params.ParameterSet
	bytes  []byte
}

// DecapsulationKey is the private key used to recover the shared
// secret from a ciphertext via Decapsulate. It embeds the
// corresponding encapsulation key and an implicit-rejection value.
type DecapsulationKey struct {
	params params.ParameterSet
	bytes  []byte
}

// Ciphertext is the encapsulation output carried from sender to
// receiver.
type Ciphertext struct {
	params params.ParameterSet
	bytes  []byte
}

// SharedSecret is the 32-byte symmetric key agreed by both parties.
// Its contents are secret: compare instances with Equal, never == or
// bytes.Equal, and call Zero once the secret is no longer needed.
type SharedSecret [params.SharedSecretLen]byte

// Equal reports whether s and other hold the same bytes, in
// data-independent time: every byte pair is compared regardless of
// where the two secrets first diverge, using the same accumulate-
// then-compare pattern as bytesEqual.
func (s *SharedSecret) Equal(other *SharedSecret) bool {
	var diff byte
	for i := range s {
		diff |= s[i] ^ other[i]
	}
	return diff == 0
}

// Zero overwrites s with zeros. Callers holding a SharedSecret past
// its useful lifetime must call Zero so the key material does not
// linger in memory.
func (s *SharedSecret) Zero() {
	for i := range s {
		s[i] = 0
	}
}

// Params reports the parameter set this key was generated under.
func (ek *EncapsulationKey) Params() params.ParameterSet { return ek.params }

// Params reports the parameter set this key was generated under.
func (dk *DecapsulationKey) Params() params.ParameterSet { return dk.params }

// Params reports the parameter set this ciphertext was produced under.
func (ct *Ciphertext) Params() params.ParameterSet { return ct.params }

// Bytes returns the serialized encapsulation key.
func (ek *EncapsulationKey) Bytes() []byte { return append([]byte(nil), ek.bytes...) }

// Bytes returns the serialized decapsulation key.
func (dk *DecapsulationKey) Bytes() []byte { return append([]byte(nil), dk.bytes...) }

// Zero overwrites dk's backing bytes with zeros in place. Callers
// holding a DecapsulationKey past its useful lifetime must call Zero
// so the private key material (s_hat, the embedded implicit-rejection
// value z) does not linger in memory; dk must not be used afterward.
func (dk *DecapsulationKey) Zero() {
	for i := range dk.bytes {
		dk.bytes[i] = 0
	}
}

// Bytes returns the serialized ciphertext.
func (ct *Ciphertext) Bytes() []byte { return append([]byte(nil), ct.bytes...) }

// GenerateKeyPair runs ML-KEM.KeyGen for the given parameter set,
// drawing randomness from rng.
func GenerateKeyPair(p params.ParameterSet, rng io.Reader) (*EncapsulationKey, *DecapsulationKey, error) {
	ekBytes, dkBytes, err := mlKemKeyGen(p, rng)
	if err != nil {
		return nil, nil, err
	}
	return &EncapsulationKey{params: p, bytes: ekBytes}, &DecapsulationKey{params: p, bytes: dkBytes}, nil
}

// Encapsulate runs ML-KEM.Encaps against ek, drawing randomness from
// rng, and returns the shared secret and its associated ciphertext.
func (ek *EncapsulationKey) Encapsulate(rng io.Reader) (*SharedSecret, *Ciphertext, error) {
	k, ctBytes, err := mlKemEncaps(ek.params, ek.bytes, rng)
	if err != nil {
		return nil, nil, err
	}
	ss := SharedSecret(k)
	return &ss, &Ciphertext{params: ek.params, bytes: ctBytes}, nil
}

// Decapsulate runs ML-KEM.Decaps against ct and returns the shared
// secret. It never fails on malformed ciphertext content of the
// correct length: implicit rejection guarantees a deterministic,
// ciphertext-derived (but useless to an attacker) output instead of an
// error, so timing and error behavior cannot be used to distinguish a
// rejected decapsulation from a successful one.
func (dk *DecapsulationKey) Decapsulate(ct *Ciphertext) (*SharedSecret, error) {
	if ct.params != dk.params {
		return nil, errors.Wrap(ErrLengthMismatch, "ciphertext parameter set does not match decapsulation key")
	}
	k, err := mlKemDecaps(dk.params, dk.bytes, ct.bytes)
	if err != nil {
		return nil, err
	}
	ss := SharedSecret(k)
	return &ss, nil
}

// EncapsulationKeyFromBytes deserializes an encapsulation key,
// rejecting it with ErrModulusCheck if any encoded coefficient is out
// of canonical range (the ByteEncode(ByteDecode(ek)) == ek check from
// FIPS 203 §7.2).
func EncapsulationKeyFromBytes(p params.ParameterSet, b []byte) (*EncapsulationKey, error) {
	if len(b) != p.EncapsulationKeyLen() {
		return nil, ErrLengthMismatch
	}
	if err := checkEKModulus(p, b); err != nil {
		return nil, err
	}
	return &EncapsulationKey{params: p, bytes: append([]byte(nil), b...)}, nil
}

// DecapsulationKeyFromBytes deserializes a decapsulation key. It
// delegates the embedded encapsulation key to
// EncapsulationKeyFromBytes, so a decapsulation key whose embedded ek
// fails the modulus check is rejected with ErrModulusCheck exactly as
// it would be on direct EncapsulationKey import (FIPS 203 §9: this
// check "must not be skipped, including in the Decaps path"), and
// rejects with ErrIntegrityCheck if the embedded H(ek) does not match
// the hash of its embedded encapsulation key (FIPS 203 §7.3).
func DecapsulationKeyFromBytes(p params.ParameterSet, b []byte) (*DecapsulationKey, error) {
	if len(b) != p.DecapsulationKeyLen() {
		return nil, ErrLengthMismatch
	}
	ek := b[384*p.K : 768*p.K+32]
	hEK := b[768*p.K+32 : 768*p.K+64]
	if _, err := EncapsulationKeyFromBytes(p, ek); err != nil {
		return nil, err
	}
	computed := kdf.H(ek)
	if !bytesEqual(computed[:], hEK) {
		return nil, ErrIntegrityCheck
	}
	return &DecapsulationKey{params: p, bytes: append([]byte(nil), b...)}, nil
}

// CiphertextFromBytes wraps a raw byte slice as a Ciphertext for the
// given parameter set, checking only its length: ciphertext content is
// never independently validated, by design (see Decapsulate).
func CiphertextFromBytes(p params.ParameterSet, b []byte) (*Ciphertext, error) {
	if len(b) != p.CiphertextLen() {
		return nil, ErrLengthMismatch
	}
	return &Ciphertext{params: p, bytes: append([]byte(nil), b...)}, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// checkEKModulus verifies ByteEncode12(ByteDecode12(t_hat)) reproduces
// the input bytes exactly, for every K polynomial in ek. A mismatch
// means some coefficient was encoded outside [0, q).
func checkEKModulus(p params.ParameterSet, ek []byte) error {
	for i := 0; i < p.K; i++ {
		chunk := ek[384*i : 384*(i+1)]
		poly, err := ring.ByteDecode(12, chunk)
		if err != nil {
			return errors.Wrap(ErrModulusCheck, err.Error())
		}
		if !bytesEqual(ring.ByteEncode(12, poly), chunk) {
			return ErrModulusCheck
		}
	}
	return nil
}
