package config

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"
)

var (
	validityFlag     = abool.NewBool(true)
	validityFlagLock sync.RWMutex
)

// getValidityFlag returns a flag that signifies if the configuration has been changed. This flag must not be changed, only read.
func getValidityFlag() *abool.AtomicBool {
	validityFlagLock.RLock()
	defer validityFlagLock.RUnlock()
	return validityFlag
}

// signalChanges marks the configs validtityFlag as dirty and eventually
// triggers a config change event.
func signalChanges() {
	// reset validity flag
	validityFlagLock.Lock()
	validityFlag.SetTo(false)
	validityFlag = abool.NewBool(true)
	validityFlagLock.Unlock()

	module.TriggerEvent(ChangeEvent, nil)
}

// SetConfig sets the (prioritized) user defined config. Options missing from
// newValues are reset. Invalid values are skipped and reported together.
func SetConfig(newValues map[string]interface{}) error {
	err := setConfig(newValues)
	if err != nil {
		return err
	}
	return saveConfig()
}

func setConfig(newValues map[string]interface{}) error {
	var errs *multierror.Error

	// RLock the options because we are not adding or removing
	// options from the registration but rather only update the
	// options value which is guarded by the option's lock itself
	optionsLock.RLock()
	for key, option := range options {
		newValue, ok := newValues[key]

		option.Lock()
		option.activeValue = nil
		if ok {
			valueCache, err := validateValue(option, newValue)
			if err == nil {
				option.activeValue = valueCache
			} else {
				errs = multierror.Append(errs, err)
			}
		}
		handleOptionUpdate(option)
		option.Unlock()
	}
	optionsLock.RUnlock()

	signalChanges()

	return errs.ErrorOrNil()
}

// SetDefaultConfig sets the (fallback) default config.
func SetDefaultConfig(newValues map[string]interface{}) error {
	var errs *multierror.Error

	optionsLock.RLock()
	for key, option := range options {
		newValue, ok := newValues[key]

		option.Lock()
		option.activeDefaultValue = nil
		if ok {
			valueCache, err := validateValue(option, newValue)
			if err == nil {
				option.activeDefaultValue = valueCache
			} else {
				errs = multierror.Append(errs, err)
			}
		}
		handleOptionUpdate(option)
		option.Unlock()
	}
	optionsLock.RUnlock()

	signalChanges()

	return errs.ErrorOrNil()
}

// SetConfigOption sets a single value in the (prioritized) user defined config.
// A nil value resets the option.
func SetConfigOption(key string, value interface{}) error {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	option.Lock()
	if value == nil {
		option.activeValue = nil
	} else {
		var valueCache *valueCache
		valueCache, err = validateValue(option, value)
		if err == nil {
			option.activeValue = valueCache
		}
	}
	handleOptionUpdate(option)
	option.Unlock()

	if err != nil {
		return err
	}

	// finalize change, activate triggers
	signalChanges()

	return saveConfig()
}

// SetDefaultConfigOption sets a single value in the (fallback) default config.
func SetDefaultConfigOption(key string, value interface{}) error {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	option.Lock()
	if value == nil {
		option.activeDefaultValue = nil
	} else {
		var valueCache *valueCache
		valueCache, err = validateValue(option, value)
		if err == nil {
			option.activeDefaultValue = valueCache
		}
	}
	handleOptionUpdate(option)
	option.Unlock()

	if err != nil {
		return err
	}

	// finalize change, activate triggers
	signalChanges()

	// Do not save the configuration, as it only saves the active values, not the
	// active default value.
	return nil
}

// handleOptionUpdate must be called with the option lock held.
func handleOptionUpdate(option *Option) {
	switch option.Key {
	case expertiseLevelKey:
		updateExpertiseLevel(option)
	case releaseLevelKey:
		updateReleaseLevel(option)
	}
}
