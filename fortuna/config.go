package fortuna

import (
	"fmt"
	"strings"
	"time"

	"github.com/safing/portcrypt/registry"
)

// Generator parameters.
const (
	KeySize   = 32
	BlockSize = 16

	MinPools     = 4
	MaxPools     = 32
	DefaultPools = 32

	// MinPool0Len is the amount of event data pool 0 must have collected
	// before a read triggers a reseed.
	MinPool0Len = 64

	// MaxEventSize is the maximum amount of event data mixed into a pool per
	// event. Longer events are truncated.
	MaxEventSize = 32

	DefaultReseedEvery   = 10
	DefaultReseedQuantum = 100 * time.Millisecond

	DefaultHash   = "SHA2-256"
	DefaultCipher = "aes"
)

// RateLimit selects how reseeds are rate limited.
type RateLimit uint8

// Rate limiting strategies.
const (
	// RateLimitCounter only lets every n-th reseed attempt through.
	RateLimitCounter RateLimit = iota
	// RateLimitTimed allows at most one reseed per time quantum.
	RateLimitTimed
)

func (rl RateLimit) String() string {
	switch rl {
	case RateLimitCounter:
		return "counter"
	case RateLimitTimed:
		return "timed"
	default:
		return fmt.Sprintf("RateLimit(%d)", uint8(rl))
	}
}

// ParseRateLimit returns the rate limiting strategy with the given name.
func ParseRateLimit(name string) (RateLimit, error) {
	switch strings.ToLower(name) {
	case "counter", "":
		return RateLimitCounter, nil
	case "timed":
		return RateLimitTimed, nil
	default:
		return 0, fmt.Errorf("%w: unknown rate limit %q", ErrInvalidConfig, name)
	}
}

// Clock supplies the current time for timed rate limiting.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Config configures a generator. The zero value is a valid config.
// Config is comparable, so descriptors holding equal configs are equal.
type Config struct {
	// Pools is the number of entropy pools, between MinPools and MaxPools.
	Pools int

	// Hash and Cipher name the registered algorithms to use. The hash must
	// have a 32 byte digest, the cipher a 16 byte block and support 32 byte
	// keys.
	Hash   string
	Cipher string

	RateLimit RateLimit
	// ReseedEvery is the reseed attempt interval for RateLimitCounter.
	ReseedEvery int
	// ReseedQuantum is the time slot length for RateLimitTimed.
	ReseedQuantum time.Duration
	Clock         Clock

	// Registry to resolve Hash and Cipher from. Defaults to registry.Default.
	Registry *registry.Registry
}

func (cfg Config) withDefaults() Config {
	if cfg.Pools == 0 {
		cfg.Pools = DefaultPools
	}
	if cfg.Hash == "" {
		cfg.Hash = DefaultHash
	}
	if cfg.Cipher == "" {
		cfg.Cipher = DefaultCipher
	}
	if cfg.ReseedEvery == 0 {
		cfg.ReseedEvery = DefaultReseedEvery
	}
	if cfg.ReseedQuantum == 0 {
		cfg.ReseedQuantum = DefaultReseedQuantum
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	if cfg.Registry == nil {
		cfg.Registry = registry.Default
	}
	return cfg
}

func (cfg Config) validate() error {
	switch {
	case cfg.Pools < MinPools || cfg.Pools > MaxPools:
		return fmt.Errorf("%w: pool count must be between %d and %d, got %d", ErrInvalidConfig, MinPools, MaxPools, cfg.Pools)
	case cfg.ReseedEvery < 0:
		return fmt.Errorf("%w: negative reseed interval", ErrInvalidConfig)
	case cfg.ReseedQuantum < 0:
		return fmt.Errorf("%w: negative reseed quantum", ErrInvalidConfig)
	case cfg.RateLimit != RateLimitCounter && cfg.RateLimit != RateLimitTimed:
		return fmt.Errorf("%w: unknown rate limit %s", ErrInvalidConfig, cfg.RateLimit)
	}
	return nil
}
