// Package config encapsulates irysname configuration options & details.
// configuration is generally stored as a .yaml file, overridden by
// environment variables, or provided at CLI runtime via command line arguments
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"reflect"
	"strconv"
	"strings"

	"github.com/qri-io/jsonschema"
	"gopkg.in/yaml.v2"
)

// Config encapsulates all configuration details for irysname
type Config struct {
	API      *API
	Registry *Registry
	Uploader *Uploader
	Tracing  *Tracing
	Logging  *Logging
}

// DefaultConfig gives a new default irysname configuration
func DefaultConfig() *Config {
	return &Config{
		API:      DefaultAPI(),
		Registry: DefaultRegistry(),
		Uploader: DefaultUploader(),
		Tracing:  DefaultTracing(),
		Logging:  DefaultLogging(),
	}
}

// SummaryString creates a pretty string summarizing the
// configuration, useful for log output
func (cfg Config) SummaryString() (summary string) {
	summary = "\n"
	if cfg.API != nil && cfg.API.Enabled {
		summary += fmt.Sprintf("API port:\t%d\n", cfg.API.Port)
	}
	if cfg.Registry != nil {
		summary += fmt.Sprintf("backend:\t%s\n", cfg.Registry.Backend)
		if cfg.Registry.Backend == BackendGateway {
			summary += fmt.Sprintf("graphql:\t%s\nuploader:\t%s\n", cfg.Registry.GraphQLURL, cfg.Registry.UploaderURL)
		}
	}
	if cfg.Uploader != nil {
		if addr, err := cfg.Uploader.Address(); err == nil {
			summary += fmt.Sprintf("identity:\t%s\n", addr)
		}
	}
	return summary
}

// ReadFromFile reads a YAML configuration file from path
func ReadFromFile(path string) (cfg *Config, err error) {
	var data []byte

	data, err = ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	cfg = DefaultConfig()
	err = yaml.Unmarshal(data, cfg)
	return
}

// WriteToFile encodes a configration to YAML and writes it to path
func (cfg Config) WriteToFile(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(path, data, 0600)
}

// Get a config value with case.insensitive.dot.separated.paths
func (cfg Config) Get(path string) (interface{}, error) {
	v, err := cfg.path(path)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Set a config value with case.insensitive.dot.separated.paths
func (cfg *Config) Set(path string, value interface{}) error {
	v, err := cfg.path(path)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != v.Kind() {
		return fmt.Errorf("invalid type for config path %s, expected: %s, got: %s", path, v.Kind().String(), rv.Kind().String())
	}

	if !v.CanSet() {
		return fmt.Errorf("config path %s cannot be set", path)
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(rv.String())
	case reflect.Bool:
		v.SetBool(rv.Bool())
	case reflect.Int:
		v.SetInt(rv.Int())
	default:
		return fmt.Errorf("config path %s holds a %s, which cannot be set", path, v.Kind())
	}

	return nil
}

func (cfg *Config) path(path string) (elem reflect.Value, err error) {
	elem = reflect.ValueOf(cfg)

	for _, sel := range strings.Split(path, ".") {
		sel = strings.ToLower(sel)

		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}

		switch elem.Kind() {
		case reflect.Struct:
			elem = elem.FieldByNameFunc(func(str string) bool {
				return strings.ToLower(str) == sel
			})
		case reflect.Slice:
			index, err := strconv.Atoi(sel)
			if err != nil {
				return elem, fmt.Errorf("invalid index value: %s", sel)
			}
			if index < 0 || index >= elem.Len() {
				return elem, fmt.Errorf("index out of range: %d", index)
			}
			elem = elem.Index(index)
		case reflect.Map:
			set := false
			for _, key := range elem.MapKeys() {
				// we only support strings as values
				if strings.ToLower(key.String()) == sel {
					elem = elem.MapIndex(key)
					set = true
					break
				}
			}
			if !set {
				return elem, fmt.Errorf("invalid config path: %s", path)
			}
		}

		if elem.Kind() == reflect.Invalid {
			return elem, fmt.Errorf("invalid config path: %s", path)
		}
	}

	return elem, nil
}

// validate is a helper function that wraps json.Marshal an ValidateBytes
// it is used by each struct that is in a Config field (eg API, Registry, etc)
func validate(rs *jsonschema.RootSchema, s interface{}) error {
	strct, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("error marshaling config section to json: %s", err)
	}
	if errors, err := rs.ValidateBytes(strct); len(errors) > 0 {
		return fmt.Errorf("%s", errors[0])
	} else if err != nil {
		return err
	}
	return nil
}

type validator interface {
	Validate() error
}

// Validate validates each section of the config struct,
// returning the first error
func (cfg Config) Validate() error {
	sections := map[string]validator{}
	if cfg.API != nil {
		sections["api"] = cfg.API
	}
	if cfg.Registry != nil {
		sections["registry"] = cfg.Registry
	}
	if cfg.Uploader != nil {
		sections["uploader"] = cfg.Uploader
	}
	if cfg.Tracing != nil {
		sections["tracing"] = cfg.Tracing
	}
	if cfg.Logging != nil {
		sections["logging"] = cfg.Logging
	}

	for _, name := range []string{"api", "registry", "uploader", "tracing", "logging"} {
		if s, ok := sections[name]; ok {
			if err := s.Validate(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		} else {
			return fmt.Errorf("%s: section is required", name)
		}
	}
	return nil
}

// Copy returns a deep copy of the Config struct
func (cfg *Config) Copy() *Config {
	res := &Config{}
	if cfg.API != nil {
		res.API = cfg.API.Copy()
	}
	if cfg.Registry != nil {
		r := *cfg.Registry
		res.Registry = &r
	}
	if cfg.Uploader != nil {
		u := *cfg.Uploader
		res.Uploader = &u
	}
	if cfg.Tracing != nil {
		t := *cfg.Tracing
		res.Tracing = &t
	}
	if cfg.Logging != nil {
		res.Logging = cfg.Logging.Copy()
	}
	return res
}

// WithoutPrivateValues returns a deep copy of the configuration with the
// upload identity's private key removed
func (cfg *Config) WithoutPrivateValues() *Config {
	res := cfg.Copy()
	if res.Uploader != nil {
		res.Uploader.PrivateKey = ""
	}
	return res
}
