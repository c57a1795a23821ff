package config

import "sync"

type safe struct{}

// Concurrent makes concurrency safe get methods available.
var Concurrent = &safe{}

// GetAsString is the concurrency safe version of GetAsString.
func (cs *safe) GetAsString(name string, fallback string) StringOption {
	return lockedGetter(name, fallback)
}

// GetAsStringArray is the concurrency safe version of GetAsStringArray.
func (cs *safe) GetAsStringArray(name string, fallback []string) StringArrayOption {
	return lockedGetter(name, fallback)
}

// GetAsInt is the concurrency safe version of GetAsInt.
func (cs *safe) GetAsInt(name string, fallback int64) IntOption {
	return lockedGetter(name, fallback)
}

// GetAsBool is the concurrency safe version of GetAsBool.
func (cs *safe) GetAsBool(name string, fallback bool) BoolOption {
	return lockedGetter(name, fallback)
}

func lockedGetter[T any](key string, fallback T) func() T {
	get := getter(key, fallback)
	var lock sync.Mutex
	return func() T {
		lock.Lock()
		defer lock.Unlock()
		return get()
	}
}
