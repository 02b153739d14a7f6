package config

import (
	"fmt"

	"github.com/irysname/irysname/registry"
	"github.com/qri-io/jsonschema"
)

// Uploader holds the upload identity
type Uploader struct {
	// PrivateKey is a hex-encoded secp256k1 key
	PrivateKey string `json:"privatekey"`
}

// DefaultUploader returns an empty upload identity, to be provided through
// the PRIVATE_KEY environment variable or the config file
func DefaultUploader() *Uploader {
	return &Uploader{}
}

// Validate validates all fields of uploader returning all errors found.
func (u Uploader) Validate() error {
	schema := jsonschema.Must(`{
    "$schema": "http://json-schema.org/draft-06/schema#",
    "title": "uploader",
    "description": "Upload identity",
    "type": "object",
    "properties": {
      "privatekey": {
        "description": "hex-encoded secp256k1 private key",
        "type": "string",
        "pattern": "^((0x)?[0-9a-fA-F]{64})?$"
      }
    }
  }`)
	return validate(schema, &u)
}

// Address derives the identity's address from PrivateKey
func (u Uploader) Address() (string, error) {
	if u.PrivateKey == "" {
		return "", fmt.Errorf("no upload identity configured")
	}
	key, err := registry.ParsePrivateKey(u.PrivateKey)
	if err != nil {
		return "", err
	}
	return registry.KeyAddress(key), nil
}
