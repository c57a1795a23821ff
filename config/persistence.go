package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/safing/portcrypt/log"
	"github.com/safing/portcrypt/utils"
)

var (
	configFilePath string

	pathEscaper = strings.NewReplacer(
		".", `\.`,
		"*", `\*`,
		"?", `\?`,
	)
)

// SetFilePath sets the file the user config is loaded from and saved to.
// Files ending in .yaml or .yml are read and written as YAML.
func SetFilePath(path string) {
	configFilePath = path
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func loadConfig() error {
	// check if persistence is configured
	if configFilePath == "" {
		return nil
	}

	// read config file
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return err
	}
	if isYAML(configFilePath) {
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
	}

	// convert to map
	newValues, err := JSONToMap(data)
	if err != nil {
		return err
	}

	// apply
	return setConfig(newValues)
}

func saveConfig() error {
	// check if persistence is configured
	if configFilePath == "" {
		return nil
	}

	// extract values
	activeValues := make(map[string]interface{})
	optionsLock.RLock()
	for key, option := range options {
		option.Lock()
		if option.activeValue != nil {
			activeValues[key] = option.activeValue.getData(option)
		}
		option.Unlock()
	}
	optionsLock.RUnlock()

	// convert to JSON
	data, err := MapToJSON(activeValues)
	if err != nil {
		log.Errorf("config: failed to save config: %s", err)
		return err
	}
	if isYAML(configFilePath) {
		data, err = yaml.JSONToYAML(data)
		if err != nil {
			log.Errorf("config: failed to save config: %s", err)
			return err
		}
	}

	// write file
	return utils.WriteFileAtomic(configFilePath, data, 0o0600, 0o0700)
}

// JSONToMap parses and flattens a hierarchical json object. Nested keys are
// joined with a slash.
func JSONToMap(jsonData []byte) (map[string]interface{}, error) {
	if !gjson.ValidBytes(jsonData) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidData)
	}
	parsed := gjson.ParseBytes(jsonData)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: expected json object", ErrInvalidData)
	}

	flattened := make(map[string]interface{})
	flatten(flattened, parsed, "")
	return flattened, nil
}

func flatten(rootMap map[string]interface{}, subMap gjson.Result, subKey string) {
	subMap.ForEach(func(key, value gjson.Result) bool {
		// get next level key
		subbedKey := key.String()
		if subKey != "" {
			subbedKey = subKey + "/" + subbedKey
		}

		// check for next subMap
		if value.IsObject() {
			flatten(rootMap, value, subbedKey)
		} else {
			rootMap[subbedKey] = value.Value()
		}
		return true
	})
}

// MapToJSON expands a flattened map and returns it as indented json.
func MapToJSON(values map[string]interface{}) ([]byte, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	data := []byte("{}")
	for _, key := range keys {
		var err error
		data, err = sjson.SetBytes(data, toJSONPath(key), values[key])
		if err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return []byte(gjson.GetBytes(data, "@pretty").Raw), nil
}

func toJSONPath(key string) string {
	parts := strings.Split(key, "/")
	for i, part := range parts {
		parts[i] = pathEscaper.Replace(part)
	}
	return strings.Join(parts, ".")
}
