package fortuna

import (
	"fmt"

	"github.com/safing/portcrypt/log"
)

// reseed derives a new key from the current key and the pools due in this
// round. It must be called with the lock held.
func (f *Fortuna) reseed() error {
	if !f.limiter.allow() {
		return nil
	}

	digest := newSecret(f.hash.Size())
	defer digest.wipe()
	next := newSecret(f.hash.Size())
	defer next.wipe()

	r := f.resetCnt + 1

	md := f.hash.New()
	_, _ = md.Write(f.key[:])
	used := 0
	for x, p := range f.pools {
		// pool x takes part in every 2^x-th reseed
		if x != 0 && (r>>(x-1))&1 != 0 {
			break
		}
		sum, err := p.finalize(digest[:0])
		if err != nil {
			return fmt.Errorf("fortuna: failed to finalize pool %d: %w", x, err)
		}
		_, _ = md.Write(sum)
		p.reset()
		used++
	}
	copy(f.key[:], md.Sum(next[:0]))

	if err := f.rekey(); err != nil {
		return err
	}
	f.incrementCounter()

	f.pool0Len = 0
	f.limiter.reseeded()
	f.resetCnt = r

	log.Tracef("fortuna: reseed #%d from %d pools", r, used)
	return nil
}

// rekey rebuilds the cipher schedule from the current key.
func (f *Fortuna) rekey() error {
	schedule, err := f.cipher.New(f.key[:])
	if err != nil {
		return fmt.Errorf("fortuna: failed to rekey %s: %w", f.cipher.Name(), err)
	}
	f.schedule = schedule
	return nil
}

// incrementCounter increments the little endian block counter.
func (f *Fortuna) incrementCounter() {
	for i := range f.counter {
		f.counter[i]++
		if f.counter[i] != 0 {
			return
		}
	}
}
