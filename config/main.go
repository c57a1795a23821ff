package config

import (
	"errors"
	"flag"
	"io/fs"

	"github.com/safing/portcrypt/modules"
)

// ChangeEvent is triggered by the config module whenever a value changes.
const ChangeEvent = "config change"

var (
	module *modules.Module

	configFileFlag string
)

func init() {
	module = modules.Register("config", prep, start, nil)
	module.RegisterEvent(ChangeEvent)

	flag.StringVar(&configFileFlag, "config", "", "load and save the user config from/to this json or yaml file")

	if err := registerExpertiseLevelOption(); err != nil {
		panic(err)
	}
	if err := registerReleaseLevelOption(); err != nil {
		panic(err)
	}
}

func prep() error {
	if configFileFlag != "" {
		SetFilePath(configFileFlag)
	}
	return nil
}

func start() error {
	err := loadConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
