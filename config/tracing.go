package config

import "github.com/qri-io/jsonschema"

// Tracing configures OpenTelemetry span export
type Tracing struct {
	Enabled bool `json:"enabled"`
	// Exporter is one of "stdout" or "none"
	Exporter string `json:"exporter"`
	// ServiceName identifies this process in traces
	ServiceName string `json:"servicename"`
}

// DefaultTracing returns tracing disabled
func DefaultTracing() *Tracing {
	return &Tracing{
		Enabled:     false,
		Exporter:    "stdout",
		ServiceName: "irysname",
	}
}

// Validate validates all fields of tracing returning all errors found.
func (t Tracing) Validate() error {
	schema := jsonschema.Must(`{
    "$schema": "http://json-schema.org/draft-06/schema#",
    "title": "tracing",
    "type": "object",
    "required": ["enabled", "exporter"],
    "properties": {
      "enabled": { "type": "boolean" },
      "exporter": {
        "type": "string",
        "enum": ["stdout", "none"]
      },
      "servicename": { "type": "string" }
    }
  }`)
	return validate(schema, &t)
}
