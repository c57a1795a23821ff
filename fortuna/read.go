package fortuna

import (
	"github.com/safing/portcrypt/log"
)

// Read fills p with random data and returns the number of bytes written,
// which is either len(p) or 0. It returns 0 if the generator is not ready,
// has not been reseeded yet, or a due reseed fails.
func (f *Fortuna) Read(p []byte) int {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.status != statusReady {
		return 0
	}

	if f.pool0Len >= MinPool0Len {
		if err := f.reseed(); err != nil {
			log.Warningf("fortuna: %s", err)
			return 0
		}
	}
	if f.resetCnt == 0 {
		return 0
	}

	block := newSecret(BlockSize)
	defer block.wipe()

	out := p
	for len(out) >= BlockSize {
		f.schedule.Encrypt(out[:BlockSize], f.counter[:])
		out = out[BlockSize:]
		f.incrementCounter()
	}
	if len(out) > 0 {
		f.schedule.Encrypt(block, f.counter[:])
		copy(out, block)
		f.incrementCounter()
	}

	if err := f.ratchet(); err != nil {
		log.Warningf("fortuna: %s", err)
		return 0
	}
	return len(p)
}

// ratchet replaces the key with two fresh output blocks.
func (f *Fortuna) ratchet() error {
	f.schedule.Encrypt(f.key[:BlockSize], f.counter[:])
	f.incrementCounter()
	f.schedule.Encrypt(f.key[BlockSize:], f.counter[:])
	f.incrementCounter()
	return f.rekey()
}
