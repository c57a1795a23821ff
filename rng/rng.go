package rng

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"

	"github.com/safing/portcrypt/config"
	"github.com/safing/portcrypt/crypto/ciphers"
	"github.com/safing/portcrypt/crypto/hash"
	"github.com/safing/portcrypt/crypto/random"
	"github.com/safing/portcrypt/fortuna"
	"github.com/safing/portcrypt/log"
	"github.com/safing/portcrypt/modules"
	"github.com/safing/portcrypt/registry"
)

var (
	module *modules.Module

	rng      *fortuna.Fortuna
	rngLock  sync.Mutex
	rngReady = abool.New()

	// activeConfig is the config rng was built with.
	activeConfig fortuna.Config

	// ErrNotReady is returned when reading before the module started.
	ErrNotReady = errors.New("rng: not ready")
)

func init() {
	module = modules.Register("random", prep, start, stop, "config")
}

func prep() error {
	if err := registerConfig(); err != nil {
		return err
	}

	return module.RegisterEventHook(
		"config",
		config.ChangeEvent,
		"check rng config",
		func(_ context.Context, _ interface{}) error {
			checkConfigChange()
			return nil
		},
	)
}

// RegisterAlgorithms registers all built-in ciphers, hashes and PRNGs with reg.
// Registering twice is harmless.
func RegisterAlgorithms(reg *registry.Registry) error {
	var result *multierror.Error
	if err := hash.RegisterAll(reg); err != nil {
		result = multierror.Append(result, err)
	}
	if err := ciphers.RegisterAll(reg); err != nil {
		result = multierror.Append(result, err)
	}
	if err := random.RegisterAll(reg); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := fortuna.Register(reg, fortuna.Config{Registry: reg}); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// fortunaConfig builds the generator config from the current options.
func fortunaConfig() (fortuna.Config, error) {
	rateLimit, err := fortuna.ParseRateLimit(rngRateLimitOption())
	if err != nil {
		return fortuna.Config{}, err
	}
	return fortuna.Config{
		Pools:     int(rngPoolsOption()),
		Hash:      rngHashOption(),
		Cipher:    rngCipherOption(),
		RateLimit: rateLimit,
		Registry:  registry.Default,
	}, nil
}

func start() error {
	err := RegisterAlgorithms(registry.Default)
	if err != nil {
		return fmt.Errorf("failed to register algorithms: %w", err)
	}

	cfg, err := fortunaConfig()
	if err != nil {
		return err
	}
	f, err := fortuna.New(cfg)
	if err != nil {
		return err
	}
	if err := f.Test(); err != nil {
		return fmt.Errorf("self test of %s/%s failed: %w", cfg.Cipher, cfg.Hash, err)
	}
	if err := f.Start(); err != nil {
		return err
	}
	if err := seed(f); err != nil {
		_ = f.Done()
		return fmt.Errorf("failed to seed rng: %w", err)
	}

	rngLock.Lock()
	rng = f
	activeConfig = cfg
	resetEntropyCheck()
	rngReady.Set()
	rngLock.Unlock()
	log.Infof("rng: fortuna ready with %s, %s and %d pools", cfg.Cipher, cfg.Hash, f.Pools())

	// replace the seed file right away, so a crash never reuses it
	if err := saveSeedFile(); err != nil {
		log.Warningf("rng: failed to update seed file: %s", err)
		module.Warning("seed-file", "Seed File", err.Error())
	}

	// random source: OS
	module.StartServiceWorker("os feeder", 0, osFeeder)

	// random source: goroutine ticks
	module.StartServiceWorker("tick feeder", 0, tickFeeder)

	// random source: host statistics
	module.StartServiceWorker("host feeder", 0, hostFeeder)

	// full feeder
	module.StartServiceWorker("full feeder", 0, fullFeeder)

	return nil
}

func stop() error {
	rngReady.UnSet()

	var result *multierror.Error
	if err := saveSeedFile(); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to save seed file: %w", err))
	}

	rngLock.Lock()
	defer rngLock.Unlock()

	if rng != nil {
		if err := rng.Done(); err != nil {
			result = multierror.Append(result, err)
		}
		rng = nil
	}
	return result.ErrorOrNil()
}

func checkConfigChange() {
	cfg, err := fortunaConfig()
	if err != nil {
		log.Warningf("rng: invalid config: %s", err)
		return
	}

	rngLock.Lock()
	active := activeConfig
	rngLock.Unlock()

	if cfg.Cipher != active.Cipher || cfg.Hash != active.Hash ||
		cfg.Pools != active.Pools || cfg.RateLimit != active.RateLimit {
		log.Warningf(
			"rng: config changed to %s/%s with %d pools (%s), takes effect after restart",
			cfg.Cipher, cfg.Hash, cfg.Pools, cfg.RateLimit,
		)
	}
}
