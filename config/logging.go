package config

import "github.com/qri-io/jsonschema"

// Logging sets per-logger output levels. Keys are logger names as passed to
// golog.Logger, eg: "irysapi" or "regclient"
type Logging struct {
	Levels map[string]string `json:"levels"`
}

// DefaultLogging keeps the request path at info & everything else quieter
func DefaultLogging() *Logging {
	return &Logging{
		Levels: map[string]string{
			"irysapi":   "info",
			"lib":       "info",
			"regclient": "info",
			"irysreg":   "warn",
			"event":     "warn",
			"metrics":   "warn",
		},
	}
}

// Validate checks every level is one golog understands
func (l Logging) Validate() error {
	schema := jsonschema.Must(`{
    "$schema": "http://json-schema.org/draft-06/schema#",
    "title": "logging",
    "description": "Per-logger output levels",
    "type": "object",
    "required": ["levels"],
    "properties": {
      "levels": {
        "description": "Map of logger name to level",
        "type": "object",
        "additionalProperties": {
          "type": "string",
          "enum": ["debug", "info", "warn", "error"]
        }
      }
    }
  }`)
	return validate(schema, &l)
}

// Copy returns a deep copy
func (l *Logging) Copy() *Logging {
	res := &Logging{}
	if l.Levels == nil {
		return res
	}
	res.Levels = make(map[string]string, len(l.Levels))
	for name, lvl := range l.Levels {
		res.Levels[name] = lvl
	}
	return res
}
