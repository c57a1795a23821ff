package config

import (
	"github.com/safing/portcrypt/log"
)

type (
	// StringOption defines the returned function by GetAsString.
	StringOption func() string
	// StringArrayOption defines the returned function by GetAsStringArray.
	StringArrayOption func() []string
	// IntOption defines the returned function by GetAsInt.
	IntOption func() int64
	// BoolOption defines the returned function by GetAsBool.
	BoolOption func() bool
)

// GetAsString returns a function that returns the wanted string with high performance.
func GetAsString(name string, fallback string) StringOption {
	return getter(name, fallback)
}

// GetAsStringArray returns a function that returns the wanted string array with high performance.
func GetAsStringArray(name string, fallback []string) StringArrayOption {
	return getter(name, fallback)
}

// GetAsInt returns a function that returns the wanted int with high performance.
func GetAsInt(name string, fallback int64) IntOption {
	return getter(name, fallback)
}

// GetAsBool returns a function that returns the wanted bool with high performance.
func GetAsBool(name string, fallback bool) BoolOption {
	return getter(name, fallback)
}

// getter caches the value until the next config change invalidates the
// validity flag. The returned function must not be called concurrently.
func getter[T any](key string, fallback T) func() T {
	valid := getValidityFlag()
	value := findTypedValue(key, fallback)
	return func() T {
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findTypedValue(key, fallback)
		}
		return value
	}
}

func findTypedValue[T any](key string, fallback T) T {
	if v, ok := findValue(key).(T); ok {
		return v
	}
	return fallback
}

// findValue finds the active value of the option with the given key.
func findValue(key string) interface{} {
	optionsLock.RLock()
	option, ok := options[key]
	optionsLock.RUnlock()
	if !ok {
		log.Errorf("config: request for unregistered option: %s", key)
		return nil
	}

	option.Lock()
	defer option.Unlock()

	// user values of options above the current release level are ignored
	if option.activeValue != nil && option.ReleaseLevel <= GetReleaseLevel() {
		return option.activeValue.getData(option)
	}
	if option.activeDefaultValue != nil {
		return option.activeDefaultValue.getData(option)
	}
	return option.activeFallbackValue.getData(option)
}
