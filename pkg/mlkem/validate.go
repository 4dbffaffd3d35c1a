package mlkem

import (
	"github.com/latticekem/mlkem/pkg/mlkem/kdf"
	"github.com/latticekem/mlkem/pkg/mlkem/params"
)

// a5Reader is a dummy randomness source that fills every read with the
// byte 0xA5. It exists solely so ValidateKeypairVartime can drive a
// throwaway Encapsulate/Decapsulate dry run without touching a real
// entropy source; its output must never be treated as a shared secret.
type a5Reader struct{}

func (a5Reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0xa5
	}
	return len(p), nil
}

// ValidateKeypairVartime checks that ekBytes and dkBytes form a
// consistent ML-KEM key pair under parameter set p: that dk embeds ek
// and H(ek), that both deserialize successfully, and that a throwaway
// encapsulation against ek decapsulates to the same shared secret
// under dk. Its running time depends on the key contents, so it must
// only ever be called on a party's own keys, never on keys received
// from a remote party as part of a timing-sensitive protocol step.
func ValidateKeypairVartime(p params.ParameterSet, ekBytes, dkBytes []byte) bool {
	if len(ekBytes) != p.EncapsulationKeyLen() || len(dkBytes) != p.DecapsulationKeyLen() {
		return false
	}

	lenEKPKE := 384*p.K + 32
	lenDKPKE := 384 * p.K

	if !bytesEqual(ekBytes, dkBytes[lenDKPKE:lenDKPKE+lenEKPKE]) {
		return false
	}
	hEK := kdf.H(ekBytes)
	if !bytesEqual(hEK[:], dkBytes[lenDKPKE+lenEKPKE:lenDKPKE+lenEKPKE+32]) {
		return false
	}

	ek, err := EncapsulationKeyFromBytes(p, ekBytes)
	if err != nil {
		return false
	}
	dk, err := DecapsulationKeyFromBytes(p, dkBytes)
	if err != nil {
		return false
	}

	ssk1, ct, err := ek.Encapsulate(a5Reader{})
	if err != nil {
		return false
	}
	ssk2, err := dk.Decapsulate(ct)
	if err != nil {
		return false
	}

	return bytesEqual(ssk1[:], ssk2[:])
}
