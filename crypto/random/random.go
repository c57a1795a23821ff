package random

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/safing/portcrypt/registry"
)

// Int returns a uniform random value in [0, max).
func Int(randSrc io.Reader, max *big.Int) (n *big.Int, err error) {
	return rand.Int(randSrc, max)
}

// Prime returns a number of the given bit length that is prime with high
// probability.
func Prime(randSrc io.Reader, bits int) (p *big.Int, err error) {
	return rand.Prime(randSrc, bits)
}

// Reader adapts a generator to io.Reader.
type Reader struct {
	Generator registry.Generator
}

// Read fills b completely or fails.
func (r Reader) Read(b []byte) (n int, err error) {
	if len(b) == 0 {
		return 0, nil
	}
	if r.Generator.Read(b) != len(b) {
		return 0, ErrReadFailed
	}
	return len(b), nil
}

// Bytes allocates a new byte slice of given length and fills it with random
// data from the reader.
func Bytes(randSrc io.Reader, n int) ([]byte, error) {
	r := make([]byte, n)
	if _, err := io.ReadFull(randSrc, r); err != nil {
		return nil, fmt.Errorf("failed to get random data: %w", err)
	}
	return r, nil
}

// Number returns a random number from 0 to (incl.) max.
func Number(randSrc io.Reader, max uint64) (uint64, error) {
	if max == 0 {
		return 0, nil
	}
	span := max + 1 // wraps to 0 if max is MaxUint64

	// reject candidates above the largest multiple of span
	var secureLimit uint64 = math.MaxUint64
	if span != 0 {
		secureLimit -= (math.MaxUint64%span + 1) % span
	}

	randomBytes := make([]byte, 8)
	for {
		if _, err := io.ReadFull(randSrc, randomBytes); err != nil {
			return 0, fmt.Errorf("failed to get random data: %w", err)
		}

		candidate := binary.LittleEndian.Uint64(randomBytes)
		if candidate <= secureLimit {
			if span == 0 {
				return candidate, nil
			}
			return candidate % span, nil
		}
	}
}

// testGenerator exercises the lifecycle of a generator.
func testGenerator(d registry.PRNG) error {
	gen, err := d.Start()
	if err != nil {
		return err
	}
	if err := gen.AddEntropy([]byte("self test entropy for " + d.Name())); err != nil {
		return err
	}
	if err := gen.Ready(); err != nil {
		return err
	}

	a := make([]byte, 32)
	b := make([]byte, 32)
	if gen.Read(a) != len(a) || gen.Read(b) != len(b) {
		return fmt.Errorf("%w: %s: short read", ErrSelfTestFailed, d.Name())
	}
	if bytes.Equal(a, b) {
		return fmt.Errorf("%w: %s: repeated output", ErrSelfTestFailed, d.Name())
	}

	seed, err := gen.Export()
	if err != nil {
		return err
	}
	if len(seed) != d.ExportSize() {
		return fmt.Errorf("%w: %s: export has %d bytes", ErrSelfTestFailed, d.Name(), len(seed))
	}
	return gen.Done()
}
