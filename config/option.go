package config

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/tidwall/sjson"
)

// Variable Type IDs for frontend Identification. Use ExternalOptType for extended types in the frontend.
const (
	OptTypeString      uint8 = 1
	OptTypeStringArray uint8 = 2
	OptTypeInt         uint8 = 3
	OptTypeBool        uint8 = 4
)

func getTypeName(t uint8) string {
	switch t {
	case OptTypeString:
		return "string"
	case OptTypeStringArray:
		return "[]string"
	case OptTypeInt:
		return "int"
	case OptTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Option describes a configuration option.
type Option struct {
	sync.Mutex `json:"-"`

	Name        string
	Key         string // in path format: category/sub/key
	Description string

	OptType        uint8
	ExpertiseLevel uint8
	ReleaseLevel   uint8

	RequiresRestart bool
	DefaultValue    interface{}

	ExternalOptType string
	ValidationRegex string

	activeValue         *valueCache // runtime value (loaded from config file or set by user)
	activeDefaultValue  *valueCache // runtime default value (set by application)
	activeFallbackValue *valueCache // default value from option registration
	compiledRegex       *regexp.Regexp
}

// Export exports an option to a JSON object, including the active values.
func (option *Option) Export() ([]byte, error) {
	option.Lock()
	defer option.Unlock()

	return option.export()
}

func (option *Option) export() ([]byte, error) {
	data, err := json.Marshal(option)
	if err != nil {
		return nil, err
	}
	data, err = sjson.SetBytes(data, "TypeName", getTypeName(option.OptType))
	if err != nil {
		return nil, err
	}

	if option.activeValue != nil {
		data, err = sjson.SetBytes(data, "Value", option.activeValue.getData(option))
		if err != nil {
			return nil, err
		}
	}

	if option.activeDefaultValue != nil {
		data, err = sjson.SetBytes(data, "DefaultValue", option.activeDefaultValue.getData(option))
		if err != nil {
			return nil, err
		}
	}

	return data, nil
}

// ExportOptions exports all options as a JSON array, sorted by key.
func ExportOptions() ([]byte, error) {
	optionsLock.RLock()
	sorted := make(sortableOptions, 0, len(options))
	for _, option := range options {
		sorted = append(sorted, option)
	}
	optionsLock.RUnlock()
	sort.Sort(sorted)

	data := []byte("[]")
	for _, option := range sorted {
		exported, err := option.Export()
		if err != nil {
			return nil, fmt.Errorf("config: failed to export %s: %w", option.Key, err)
		}
		data, err = sjson.SetRawBytes(data, "-1", exported)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

type sortableOptions []*Option

// Len is the number of elements in the collection.
func (opts sortableOptions) Len() int {
	return len(opts)
}

// Less reports whether the element with
// index i should sort before the element with index j.
func (opts sortableOptions) Less(i, j int) bool {
	return opts[i].Key < opts[j].Key
}

// Swap swaps the elements with indexes i and j.
func (opts sortableOptions) Swap(i, j int) {
	opts[i], opts[j] = opts[j], opts[i]
}
