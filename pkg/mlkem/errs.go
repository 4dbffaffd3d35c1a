package mlkem

import "github.com/pkg/errors"

// Sentinel errors returned by the public API. Each is wrapped with
// github.com/pkg/errors at its point of origin so callers retain a
// stack trace while errors.Is against the sentinel still succeeds.
var (
	// ErrRNGFailure indicates the supplied randomness source could not
	// fill a required buffer.
	ErrRNGFailure = errors.New("mlkem: random number generator failed")

	// ErrModulusCheck indicates a deserialized encapsulation key fails
	// the round-trip ByteEncode(ByteDecode(ek)) == ek check.
	ErrModulusCheck = errors.New("mlkem: encapsulation key fails modulus check")

	// ErrIntegrityCheck indicates a deserialized decapsulation key's
	// embedded H(ek) does not match the hash of its embedded ek.
	ErrIntegrityCheck = errors.New("mlkem: decapsulation key fails integrity check")

	// ErrLengthMismatch indicates a byte slice passed to a
	// deserialization function has the wrong length for the requested
	// parameter set.
	ErrLengthMismatch = errors.New("mlkem: input has wrong length for parameter set")
)
