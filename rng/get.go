package rng

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/safing/portcrypt/crypto/random"
	"github.com/safing/portcrypt/log"
)

var (
	// Reader provides a global instance to read from the RNG.
	Reader io.Reader = reader{}

	rngBytesRead int64
	rngLastFeed  = time.Now()

	// ErrReadFailed is returned when the generator produced no output.
	ErrReadFailed = errors.New("rng: failed to read random data")
)

// reader provides an io.Reader interface
type reader struct{}

// resetEntropyCheck must be called with rngLock held.
func resetEntropyCheck() {
	rngBytesRead = 0
	rngLastFeed = time.Now()
}

// checkEntropy forces a reseed from the feeders if too much data was read or
// too much time passed since the last one. It must be called with rngLock held.
func checkEntropy() (err error) {
	if !rngReady.IsSet() || rng == nil {
		return ErrNotReady
	}
	if rngBytesRead > reseedAfterBytes() ||
		int64(time.Since(rngLastFeed).Seconds()) > reseedAfterSeconds() {
		select {
		case f := <-rngFeeder:
			if err := rng.UpdateSeed(f.data); err != nil {
				return fmt.Errorf("failed to update seed: %w", err)
			}
			entropyBytes(f.source).Add(len(f.data))
			forcedReseeds.Inc()
			log.Tracef("rng: reseeded from %s feed", sourceName(f.source))
			resetEntropyCheck()
		case <-time.After(1 * time.Second):
			return errors.New("failed to get new entropy")
		}
	}
	return nil
}

// Read reads random bytes into the supplied byte slice.
func Read(b []byte) (n int, err error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		readFailures.Inc()
		return 0, err
	}

	if rng.Read(b) != len(b) {
		readFailures.Inc()
		return 0, ErrReadFailed
	}
	rngBytesRead += int64(len(b))
	bytesRead.Add(len(b))
	return len(b), nil
}

// Read implements the io.Reader interface
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Bytes allocates a new byte slice of given length and fills it with random data.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Number returns a random number from 0 to (incl.) max.
func Number(max uint64) (uint64, error) {
	return random.Number(Reader, max)
}

// AddEntropy adds externally gathered entropy to the pools.
func AddEntropy(data []byte) error {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady.IsSet() || rng == nil {
		return ErrNotReady
	}
	if err := rng.AddEntropy(data); err != nil {
		return err
	}
	entropyBytes(SourceExternal).Add(len(data))
	return nil
}
