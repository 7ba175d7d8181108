package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"reflect"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

func createConfigDir(configDirPath string) error {
	if _, err := os.Stat(configDirPath); os.IsNotExist(err) {
		if err := os.MkdirAll(configDirPath, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config dotdir: %w", err)
		}
		ancli.PrintOK(fmt.Sprintf("created tutor config directory at: '%v'\n", configDirPath))
	}
	return nil
}

func createDefaultConfigFile[T any](configDirPath, configFileName string, dflt *T) error {
	configFilePath := filepath.Join(configDirPath, configFileName)
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		if misc.Truthy(os.Getenv("DEBUG")) {
			ancli.PrintOK(fmt.Sprintf("attempting to create file: '%v'\n", configFilePath))
		}
		err := CreateFile(configFilePath, dflt)
		if err != nil {
			return fmt.Errorf("failed to write config: '%v', error: %w", configFileName, err)
		}
	}
	return nil
}

// LoadConfigFromFile loads configFileName from configDirPath. The directory
// and file are created with dflt when missing, and zero valued fields of the
// loaded config are back-filled from dflt.
func LoadConfigFromFile[T any](
	configDirPath,
	configFileName string,
	dflt *T,
) (T, error) {
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("attempting to load file: %v\n", path.Join(configDirPath, configFileName)))
	}

	err := createConfigDir(configDirPath)
	if err != nil {
		var nilVal T
		return nilVal, err
	}

	err = createDefaultConfigFile(configDirPath, configFileName, dflt)
	if err != nil {
		var nilVal T
		return nilVal, err
	}

	configPath := path.Join(configDirPath, configFileName)
	var conf T
	err = ReadAndUnmarshal(configPath, &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to unmarshal config '%v', error: %w", configFileName, err)
	}

	// Append any new fields from default config, in case of config extension
	hasChanged := setNonZeroValueFields(&conf, dflt)
	if hasChanged {
		err = CreateFile(configPath, &conf)
		if err != nil {
			return conf, fmt.Errorf("failed to write config '%v' post zero-field appendage, error: %w", configFileName, err)
		}
		if misc.Truthy(os.Getenv("DEBUG")) {
			ancli.PrintOK(fmt.Sprintf("appended new fields and updated config file: %v\n", configPath))
		}
	}

	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("found config: %+v\n", conf))
	}
	return conf, nil
}

// setNonZeroValueFields on a using b as template
func setNonZeroValueFields[T any](a, b *T) bool {
	hasChanged := false
	t := reflect.TypeOf(*a)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		aVal := reflect.ValueOf(a).Elem().FieldByName(f.Name)
		bVal := reflect.ValueOf(b).Elem().FieldByName(f.Name)
		if f.IsExported() && aVal.IsZero() && !bVal.IsZero() {
			hasChanged = true
			aVal.Set(bVal)
		}
	}
	return hasChanged
}

// ReturnNonDefault returns whichever of a and b differs from defaultVal.
// Both differing is an error, since the values are mutually exclusive.
func ReturnNonDefault[T comparable](a, b, defaultVal T) (T, error) {
	if a != defaultVal && b != defaultVal {
		return defaultVal, fmt.Errorf("values are mutually exclusive")
	}
	if a != defaultVal {
		return a, nil
	}
	if b != defaultVal {
		return b, nil
	}
	return defaultVal, nil
}
