package rng

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/safing/portcrypt/fortuna"
	"github.com/safing/portcrypt/log"
	"github.com/safing/portcrypt/utils"
)

// seed brings a started generator to the ready state. The seed file is
// imported if configured, and every pool receives one event of OS entropy.
func seed(f *fortuna.Fortuna) error {
	if err := loadSeedFile(f); err != nil {
		// a broken seed file must not prevent startup
		log.Warningf("rng: ignoring seed file: %s", err)
		module.Warning("seed-file", "Seed File", err.Error())
	}

	event := make([]byte, fortuna.MaxEventSize)
	defer clear(event)
	for i := 0; i < f.Pools(); i++ {
		if _, err := io.ReadFull(rand.Reader, event); err != nil {
			return fmt.Errorf("could not read entropy from os: %w", err)
		}
		if err := f.AddRandomEvent(SourceOS, i, event); err != nil {
			return err
		}
	}
	entropyBytes(SourceOS).Add(f.Pools() * len(event))

	return f.Ready()
}

func loadSeedFile(f *fortuna.Fortuna) error {
	path := seedFileOption()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Infof("rng: seed file %s does not exist yet", path)
			return nil
		}
		return err
	}
	defer clear(data)

	if err := f.Import(data); err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	log.Debugf("rng: imported seed file %s", path)
	return nil
}

// saveSeedFile exports a fresh seed to the seed file.
func saveSeedFile() error {
	path := seedFileOption()
	if path == "" {
		return nil
	}

	rngLock.Lock()
	if rng == nil {
		rngLock.Unlock()
		return ErrNotReady
	}
	data, err := rng.Export()
	rngLock.Unlock()
	if err != nil {
		return err
	}
	defer clear(data)

	if err := utils.WriteFileAtomic(path, data, 0o0600, 0o0700); err != nil {
		return err
	}

	module.Resolve("seed-file")
	log.Debugf("rng: saved seed file %s", path)
	return nil
}
