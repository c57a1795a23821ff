package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var jsonData = `{
  "a": "b",
  "c": {
    "d": "e",
    "f": "g",
    "h": {
      "i": "j",
      "k": "l",
      "m": {
        "n": "o"
      }
    }
  },
  "p": "q"
}`

func TestJSONMapConversion(t *testing.T) {
	t.Parallel()

	m, err := JSONToMap([]byte(jsonData))
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 7 {
		t.Errorf("expected 7 flattened keys, got %d: %v", len(m), m)
	}
	if m["c/h/m/n"] != "o" {
		t.Errorf("c/h/m/n should be o, is %v", m["c/h/m/n"])
	}

	j, err := MapToJSON(m)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(j, []byte("\n  \"c\": {")) {
		t.Errorf("json is not indented:\n%s", j)
	}
	m2, err := JSONToMap(j)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m, m2) {
		t.Errorf("json does not match, got:\n%s", j)
	}

	if _, err := JSONToMap([]byte(`{"a": `)); err == nil {
		t.Error("malformed json should fail")
	}
	if _, err := JSONToMap([]byte(`[1, 2]`)); err == nil {
		t.Error("json array should fail")
	}
}

func TestKeyEscaping(t *testing.T) {
	t.Parallel()

	j, err := MapToJSON(map[string]interface{}{
		"a.b/c": 1.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	m, err := JSONToMap(j)
	if err != nil {
		t.Fatal(err)
	}
	if m["a.b/c"] != 1.0 {
		t.Errorf("dotted key did not survive, got %v", m)
	}
}

func TestSaveAndLoad(t *testing.T) { //nolint:paralleltest // Uses the global option registry.
	if err := Register(&Option{
		Name:         "Persisted",
		Key:          "persistence/value",
		Description:  "d",
		OptType:      OptTypeString,
		DefaultValue: "default",
	}); err != nil {
		t.Fatal(err)
	}
	defer SetFilePath("")

	for _, name := range []string{"config.json", "config.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		SetFilePath(path)

		if err := SetConfigOption("persistence/value", "saved"); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(data, []byte("saved")) {
			t.Errorf("%s: value not written:\n%s", name, data)
		}

		// clear without saving, then load from disk
		if err := setConfig(map[string]interface{}{}); err != nil {
			t.Fatal(err)
		}
		value := GetAsString("persistence/value", "none")
		if value() != "default" {
			t.Fatalf("%s: expected default after reset, got %s", name, value())
		}
		if err := loadConfig(); err != nil {
			t.Fatal(err)
		}
		if value() != "saved" {
			t.Errorf("%s: expected loaded value, got %s", name, value())
		}
	}
	_ = setConfig(map[string]interface{}{})
}
