// Package params defines the three ML-KEM parameter sets and the
// derived byte lengths used throughout the mlkem tree.
package params

// ParameterSet fixes the module rank and noise/compression parameters
// for one of the three standardized ML-KEM variants.
type ParameterSet struct {
	Name string

	// K is the module rank (number of polynomials per vector).
	K int

	// Eta1 parameterizes the CBD sampling used for the secret and
	// error vectors during key generation and encryption's first
	// noise term.
	Eta1 uint

	// Eta2 parameterizes the CBD sampling used for encryption's
	// remaining noise terms.
	Eta2 uint

	// Du, Dv are the ciphertext compression widths for the u and v
	// components respectively.
	Du, Dv uint
}

// EncapsulationKeyLen is the byte length of a serialized encapsulation
// key: K 12-bit-encoded polynomials plus the 32-byte seed rho.
func (p ParameterSet) EncapsulationKeyLen() int {
	return 384*p.K + 32
}

// DecapsulationKeyLen is the byte length of a serialized decapsulation
// key: the K-PKE decryption key, the encapsulation key, H(ek), and the
// 32-byte implicit-rejection value z.
func (p ParameterSet) DecapsulationKeyLen() int {
	return 384*p.K + p.EncapsulationKeyLen() + 32 + 32
}

// CiphertextLen is the byte length of a ciphertext: the compressed u
// vector followed by the compressed v polynomial.
func (p ParameterSet) CiphertextLen() int {
	return int(32 * (p.Du*uint(p.K) + p.Dv))
}

// SharedSecretLen is the byte length of the shared secret produced by
// encapsulation and decapsulation. It is fixed across all parameter
// sets.
const SharedSecretLen = 32

// MLKEM512 is the lowest-security parameter set (NIST category 1).
var MLKEM512 = ParameterSet{
	Name: "ML-KEM-512",
	K:    2,
	Eta1: 3,
	Eta2: 2,
	Du:   10,
	Dv:   4,
}

// MLKEM768 is the recommended default parameter set (NIST category 3).
var MLKEM768 = ParameterSet{
	Name: "ML-KEM-768",
	K:    3,
	Eta1: 2,
	Eta2: 2,
	Du:   10,
	Dv:   4,
}

// MLKEM1024 is the highest-security parameter set (NIST category 5).
var MLKEM1024 = ParameterSet{
	Name: "ML-KEM-1024",
	K:    4,
	Eta1: 2,
	Eta2: 2,
	Du:   11,
	Dv:   5,
}

// ByName resolves one of "ML-KEM-512", "ML-KEM-768", "ML-KEM-1024" to
// its ParameterSet. The second return value is false for any other
// input.
func ByName(name string) (ParameterSet, bool) {
	switch name {
	case MLKEM512.Name:
		return MLKEM512, true
	case MLKEM768.Name:
		return MLKEM768, true
	case MLKEM1024.Name:
		return MLKEM1024, true
	default:
		return ParameterSet{}, false
	}
}
