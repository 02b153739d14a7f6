package lib

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

// ConfigMethods encapsulates changes to an instance's configuration
type ConfigMethods struct {
	inst *Instance
}

// Name returns the name of this method group
func (m ConfigMethods) Name() string {
	return "config"
}

// ConfigMethods returns methods for reading & changing configuration
func (inst *Instance) ConfigMethods() *ConfigMethods {
	return &ConfigMethods{inst: inst}
}

// GetConfigParams are the params needed to format/specify the fields in bytes
// returned from the GetConfig function
type GetConfigParams struct {
	// Field is a dot-separated path, empty returns the whole config
	Field          string
	WithPrivateKey bool
	// Format is one of "yaml" or "json"
	Format  string
	Concise bool
}

// GetConfig returns the Config, or one of the specified fields of the Config,
// as a slice of bytes the bytes can be formatted as json, concise json, or yaml
func (m ConfigMethods) GetConfig(ctx context.Context, p *GetConfigParams) ([]byte, error) {
	var (
		cfg    = m.inst.cfg
		encode interface{}
		err    error
	)

	if !p.WithPrivateKey {
		cfg = cfg.WithoutPrivateValues()
	} else {
		cfg = cfg.Copy()
	}

	encode = cfg

	if p.Field != "" {
		encode, err = cfg.Get(p.Field)
		if err != nil {
			return nil, fmt.Errorf("error getting %s from config: %w", p.Field, err)
		}
	}

	var res []byte

	switch p.Format {
	case "json":
		if p.Concise {
			res, err = json.Marshal(encode)
		} else {
			res, err = json.MarshalIndent(encode, "", " ")
		}
	case "yaml", "":
		res, err = yaml.Marshal(encode)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrBadArgs, p.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("error getting config: %w", err)
	}

	return res, nil
}

// SetConfigParams changes a single config field
type SetConfigParams struct {
	Field string
	// Value is parsed as YAML, so "8080" sets an int & "true" a bool
	Value string
}

// SetConfig validates, updates and saves the config. Changes take effect
// on the next instance
func (m ConfigMethods) SetConfig(ctx context.Context, p *SetConfigParams) error {
	if p.Field == "" {
		return fmt.Errorf("%w: field is required", ErrBadArgs)
	}

	var value interface{}
	if err := yaml.Unmarshal([]byte(p.Value), &value); err != nil {
		return fmt.Errorf("parsing value: %w", err)
	}
	if value == nil {
		value = ""
	}

	update := m.inst.cfg.Copy()
	if err := update.Set(p.Field, value); err != nil {
		// values that look like numbers or bools may belong to string fields
		if serr := update.Set(p.Field, p.Value); serr != nil {
			return err
		}
	}
	if err := update.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	*m.inst.cfg = *update
	if m.inst.cfgPath == "" {
		log.Debug("no config path set, change will not persist")
		return nil
	}
	return m.inst.cfg.WriteToFile(m.inst.cfgPath)
}
