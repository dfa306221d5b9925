// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// Type is the loaded configuration. Source is the file it came from and
// Namespace the service group whose keys are preferred on lookup.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]any
}

// Config holds the process-wide configuration.
var Config Type

// init attempts to load configuration at process start. Errors are ignored so
// the application can still run without a config file.
func init() {
	_, _ = Load()
}

// GetInt returns the integer at key. YAML may decode numbers as int, int64
// or float64; floats are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	return lookup(key, defaultValue, func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return 0, false
	})
}

// GetBool returns the boolean at key.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	return lookup(key, defaultValue, func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	})
}

// GetString returns the string at key.
func GetString(key string, defaultValue ...string) (string, error) {
	return lookup(key, defaultValue, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// GetStringSlice returns the list of strings at key. Every element must be a
// string.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return lookup(key, defaultValue, func(v any) ([]string, bool) {
		switch list := v.(type) {
		case []string:
			return list, true
		case []any:
			out := make([]string, len(list))
			for i, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, false
				}
				out[i] = s
			}
			return out, true
		}
		return nil, false
	})
}

// lookup finds key in Config and converts it. A missing key returns the
// single default when one is given; a value of the wrong type is an error.
func lookup[T any](key string, defaultValue []T, convert func(any) (T, bool)) (T, error) {
	var zero T

	if len(Config.Data) == 0 {
		_, _ = Load(Config.Source)
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return zero, err
	}

	out, ok := convert(val)
	if !ok {
		return zero, fmt.Errorf("config key %s: value %v is not a %T", key, val, zero)
	}
	return out, nil
}

// Load reads the YAML configuration file and populates the global Config.
// An explicit non-empty path wins over AWSCTL_CFG_FILE and the user config
// directory.
func Load(cfgFilePath ...string) (Type, error) {
	path := ""
	if len(cfgFilePath) > 0 {
		path = cfgFilePath[0]
	}
	if path == "" {
		var err error
		if path, err = getConfigFile(); err != nil {
			return Type{}, err
		}
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]any
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
	}

	return Config, nil
}

// get walks the dotted key through Data. With a Namespace set,
// <namespace>.<key> is tried before the bare key.
func (cfg *Type) get(kspec string) (any, error) {
	candidates := []string{kspec}
	if cfg.Namespace != "" && !strings.HasPrefix(kspec, cfg.Namespace+".") {
		candidates = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidates {
		if v, ok := walk(cfg.Data, strings.Split(key, ".")); ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

func walk(node any, keys []string) (any, bool) {
	for _, k := range keys {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = m[k]; !ok {
			return nil, false
		}
	}
	return node, true
}

// getConfigFile returns the path of the YAML config file: AWSCTL_CFG_FILE
// when set, otherwise awsctl.yaml in os.UserConfigDir. The file must exist
// and not be a directory.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv("AWSCTL_CFG_FILE"); cfgPath != "" {
		info, err := os.Stat(cfgPath)
		if err != nil {
			return "", fmt.Errorf("config file not found at AWSCTL_CFG_FILE path: %s", cfgPath)
		}
		if info.IsDir() {
			return "", fmt.Errorf("AWSCTL_CFG_FILE points to a directory: %s", cfgPath)
		}
		log.Debugf("using config file from AWSCTL_CFG_FILE: %s", cfgPath)
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, "awsctl.yaml")
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}

	return "", fmt.Errorf("no config file found in standard locations")
}
