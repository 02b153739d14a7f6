package config

import (
	"fmt"

	"github.com/qri-io/jsonschema"
)

// DefaultAPIPort is the port the JSON API serves on by default
var DefaultAPIPort = 8001

// API holds configuration for the irysname JSON api
type API struct {
	Enabled bool `json:"enabled"`
	// Port specifies the port to listen for JSON API calls
	Port int `json:"port"`
	// read-only mode rejects registrations
	ReadOnly bool `json:"readonly"`
	// support CORS signing from a list of origins, "*" allows any
	AllowedOrigins []string `json:"allowedorigins"`
}

// Validate validates all fields of api returning all errors found.
func (a API) Validate() error {
	schema := jsonschema.Must(`{
    "$schema": "http://json-schema.org/draft-06/schema#",
    "title": "api",
    "description": "Config for the api",
    "type": "object",
    "required": ["enabled", "port", "readonly", "allowedorigins"],
    "properties": {
      "enabled": {
        "description": "When false, the api port does not listen for calls",
        "type": "boolean"
      },
      "port": {
        "description": "The port that listens for JSON API calls",
        "type": "integer",
        "minimum": 0,
        "maximum": 65535
      },
      "readonly": {
        "description": "When true, registrations are rejected",
        "type": "boolean"
      },
      "allowedorigins": {
        "description": "Support CORS signing from a list of origins",
        "type": "array",
        "items": {
          "type": "string"
        }
      }
    }
  }`)
	return validate(schema, &a)
}

// Address is the listen address for the configured port
func (a API) Address() string {
	return fmt.Sprintf(":%d", a.Port)
}

// DefaultAPI returns the default configuration details
func DefaultAPI() *API {
	return &API{
		Enabled:        true,
		Port:           DefaultAPIPort,
		AllowedOrigins: []string{"*"},
	}
}

// Copy returns a deep copy of an API struct
func (a *API) Copy() *API {
	res := *a
	if a.AllowedOrigins != nil {
		res.AllowedOrigins = append([]string{}, a.AllowedOrigins...)
	}
	return &res
}
