// Package randsrc provides the randomness sources consumed by key
// generation and encapsulation: the system CSPRNG for production use,
// a seeded deterministic stream for reproducible testing, and a replay
// source for feeding fixed byte strings into conformance-style tests.
package randsrc

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20"
)

// ErrReplayExhausted is returned once a Replay source has no more
// bytes left to serve.
var ErrReplayExhausted = errors.New("randsrc: replay source exhausted")

// Default returns the system CSPRNG (crypto/rand.Reader).
func Default() io.Reader {
	return rand.Reader
}

// Deterministic returns an io.Reader backed by a ChaCha20 keystream
// seeded from seed, suitable for reproducible round-trip tests that
// need the same "random" bytes across runs. It must never be used to
// generate real key material.
//
// golang.org/x/crypto/chacha20 implements the standard 20-round
// cipher; it has no 8-round variant, so this stands in for the
// original reference's ChaCha8 test RNG rather than reproducing it
// bit-for-bit. A conformance fixture that replays a known ChaCha8
// keystream would need a dedicated 8-round implementation instead of
// this reader.
func Deterministic(seed uint64) io.Reader {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Only fails for a malformed key/nonce length, which the
		// fixed-size arrays above make impossible.
		panic(err)
	}
	return &chachaReader{cipher: c}
}

type chachaReader struct {
	cipher *chacha20.Cipher
}

func (r *chachaReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}

// Replay serves a fixed sequence of bytes in draw order, recorded
// ahead of time, for conformance-style tests where a known sequence of
// "random" draws must reproduce a known-answer result.
type Replay struct {
	data []byte
	pos  int
}

// NewReplay returns a Replay source that serves data, in order, to
// successive Read calls.
func NewReplay(data []byte) *Replay {
	return &Replay{data: data}
}

func (r *Replay) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, ErrReplayExhausted
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	if n < len(p) {
		return n, ErrReplayExhausted
	}
	return n, nil
}
