package fortuna

import (
	"crypto/cipher"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/safing/portcrypt/log"
	"github.com/safing/portcrypt/registry"
)

type status uint8

const (
	statusUninitialized status = iota
	statusStarted
	statusReady
	statusTerminated
)

// Fortuna is a Fortuna generator instance.
type Fortuna struct {
	cfg    Config
	hash   registry.Hash
	cipher registry.Cipher

	lock sync.Mutex

	status   status
	pools    []*pool
	poolIdx  int
	pool0Len int
	resetCnt uint64
	limiter  rateLimiter

	key      [KeySize]byte
	counter  [BlockSize]byte
	schedule cipher.Block
}

// New returns a generator for the given config. The hash and cipher are
// looked up in the configured registry and kept for the lifetime of the
// generator. Call Start before use.
func New(cfg Config) (*Fortuna, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	h, err := cfg.Registry.Hash(cfg.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsuitableHash, cfg.Hash, err)
	}
	if h.Size() != KeySize {
		return nil, fmt.Errorf("%w: %s has a %d byte digest, need %d", ErrUnsuitableHash, cfg.Hash, h.Size(), KeySize)
	}

	c, err := cfg.Registry.Cipher(cfg.Cipher)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsuitableCipher, cfg.Cipher, err)
	}
	if c.BlockSize() != BlockSize {
		return nil, fmt.Errorf("%w: %s has a %d byte block, need %d", ErrUnsuitableCipher, cfg.Cipher, c.BlockSize(), BlockSize)
	}
	if size, err := c.KeySize(KeySize); err != nil || size != KeySize {
		return nil, fmt.Errorf("%w: %s does not support %d byte keys", ErrUnsuitableCipher, cfg.Cipher, KeySize)
	}

	return &Fortuna{
		cfg:     cfg,
		hash:    h,
		cipher:  c,
		limiter: newRateLimiter(cfg),
	}, nil
}

// Start (re)initializes the generator with empty pools and a zero key.
func (f *Fortuna) Start() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.start()
}

func (f *Fortuna) start() error {
	pools := make([]*pool, 0, f.cfg.Pools)
	for i := 0; i < f.cfg.Pools; i++ {
		p, err := newPool(f.hash)
		if err != nil {
			teardown(pools)
			return err
		}
		pools = append(pools, p)
	}

	clear(f.key[:])
	schedule, err := f.cipher.New(f.key[:])
	if err != nil {
		teardown(pools)
		return fmt.Errorf("fortuna: failed to set up %s: %w", f.cipher.Name(), err)
	}

	f.pools = pools
	f.schedule = schedule
	clear(f.counter[:])
	f.poolIdx = 0
	f.pool0Len = 0
	f.resetCnt = 0
	f.limiter.reset()
	f.status = statusStarted

	log.Debugf("fortuna: started with %d pools, %s and %s", f.cfg.Pools, f.hash.Name(), f.cipher.Name())
	return nil
}

func teardown(pools []*pool) {
	for _, p := range pools {
		_, _ = p.finalize(nil)
	}
}

func (f *Fortuna) started() bool {
	return f.status == statusStarted || f.status == statusReady
}

// AddEntropy adds an event to the next pool in turn.
func (f *Fortuna) AddEntropy(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyEvent
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if !f.started() {
		return ErrNotStarted
	}
	if err := f.addEvent(0, f.poolIdx, data); err != nil {
		return err
	}
	f.poolIdx = (f.poolIdx + 1) % len(f.pools)
	return nil
}

// AddRandomEvent adds an event from the given source to the given pool.
func (f *Fortuna) AddRandomEvent(source byte, pool int, data []byte) error {
	switch {
	case pool < 0 || pool >= f.cfg.Pools:
		return fmt.Errorf("%w: %d", ErrInvalidPool, pool)
	case len(data) == 0:
		return ErrEmptyEvent
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if !f.started() {
		return ErrNotStarted
	}
	return f.addEvent(source, pool, data)
}

func (f *Fortuna) addEvent(source byte, pool int, data []byte) error {
	if len(data) > MaxEventSize {
		data = data[:MaxEventSize]
	}

	err := f.pools[pool].write([]byte{source, byte(len(data))}, data)
	if err != nil {
		return fmt.Errorf("fortuna: failed to add event to pool %d: %w", pool, err)
	}
	if pool == 0 {
		f.pool0Len += len(data)
	}
	return nil
}

// Ready forces a reseed and makes the generator produce output. It fails if
// the generator was not started.
func (f *Fortuna) Ready() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if !f.started() {
		return ErrNotStarted
	}

	f.limiter.prime()
	if err := f.reseed(); err != nil {
		f.status = statusStarted
		return err
	}
	f.status = statusReady
	return nil
}

// IsReady reports whether the generator produces output.
func (f *Fortuna) IsReady() bool {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.status == statusReady
}

// ReseedCount returns the number of reseeds since the last start.
func (f *Fortuna) ReseedCount() uint64 {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.resetCnt
}

// Pools returns the number of entropy pools.
func (f *Fortuna) Pools() int {
	return f.cfg.Pools
}

// Done terminates the generator. All pools are finalized and the key is
// wiped. Calling Done again fails with ErrFinalized.
func (f *Fortuna) Done() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.status == statusUninitialized {
		return ErrNotStarted
	}
	f.status = statusTerminated

	var result *multierror.Error
	for i, p := range f.pools {
		if _, err := p.finalize(nil); err != nil {
			result = multierror.Append(result, fmt.Errorf("pool %d: %w", i, err))
		}
	}

	clear(f.key[:])
	clear(f.counter[:])
	f.schedule = nil

	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	log.Debugf("fortuna: terminated after %d reseeds", f.resetCnt)
	return nil
}
