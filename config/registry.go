package config

import (
	"time"

	"github.com/qri-io/jsonschema"
)

const (
	// BackendMem keeps records in process memory. Only suitable for tests &
	// local development: every process has its own, unshared log
	BackendMem = "mem"
	// BackendGateway queries the gateway's GraphQL index & uploads through
	// the delegated uploader service
	BackendGateway = "gateway"
)

// Registry configures where username records live
type Registry struct {
	// Backend is one of "mem" or "gateway"
	Backend string `json:"backend"`
	// GatewayURL is the base for explorer links
	GatewayURL string `json:"gatewayurl"`
	// GraphQLURL is the gateway's GraphQL endpoint
	GraphQLURL string `json:"graphqlurl"`
	// UploaderURL is the delegated upload service
	UploaderURL string `json:"uploaderurl"`
	// QueryTimeout in seconds for lookups
	QueryTimeout int `json:"querytimeout"`
	// AppendTimeout in seconds for uploads
	AppendTimeout int `json:"appendtimeout"`
	// NameSuffix is appended to usernames in confirmation messages
	NameSuffix string `json:"namesuffix"`
}

// DefaultRegistry returns the default configuration details
func DefaultRegistry() *Registry {
	return &Registry{
		Backend:       BackendGateway,
		GatewayURL:    "https://gateway.irys.xyz",
		GraphQLURL:    "https://devnet.irys.xyz/graphql",
		UploaderURL:   "http://localhost:3002",
		QueryTimeout:  10,
		AppendTimeout: 30,
		NameSuffix:    "irys",
	}
}

// QueryTimeoutDuration converts QueryTimeout to a duration
func (r Registry) QueryTimeoutDuration() time.Duration {
	return time.Duration(r.QueryTimeout) * time.Second
}

// AppendTimeoutDuration converts AppendTimeout to a duration
func (r Registry) AppendTimeoutDuration() time.Duration {
	return time.Duration(r.AppendTimeout) * time.Second
}

// Validate validates all fields of registry returning all errors found.
func (r Registry) Validate() error {
	schema := jsonschema.Must(`{
    "$schema": "http://json-schema.org/draft-06/schema#",
    "title": "registry",
    "description": "Config for the username record backend",
    "type": "object",
    "required": ["backend", "gatewayurl", "namesuffix", "querytimeout", "appendtimeout"],
    "properties": {
      "backend": {
        "description": "Where records are stored",
        "type": "string",
        "enum": ["mem", "gateway"]
      },
      "gatewayurl": {
        "description": "Base url for explorer links",
        "type": "string",
        "pattern": "^https?://"
      },
      "graphqlurl": {
        "description": "GraphQL endpoint used for lookups",
        "type": "string"
      },
      "uploaderurl": {
        "description": "Delegated upload service",
        "type": "string"
      },
      "querytimeout": {
        "description": "Seconds before a lookup is abandoned",
        "type": "integer",
        "minimum": 1
      },
      "appendtimeout": {
        "description": "Seconds before an upload is abandoned",
        "type": "integer",
        "minimum": 1
      },
      "namesuffix": {
        "description": "Suffix shown after usernames in confirmations",
        "type": "string"
      }
    }
  }`)
	return validate(schema, &r)
}
