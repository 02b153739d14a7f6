// Package regclient defines a Records backend that talks to an Irys-style
// network: lookups go through the gateway's GraphQL index, uploads are
// delegated to an uploader service that holds the signing identity
package regclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	golog "github.com/ipfs/go-log"
	"github.com/irysname/irysname/registry"
)

var (
	log = golog.Logger("regclient")

	// ErrNoRegistry indicates that no endpoint has been specified
	ErrNoRegistry = errors.New("registry: no registry specified")
	// ErrNoConnection indicates no path to the registry can be found
	ErrNoConnection = errors.New("registry: no connection")

	// HTTPClient is hoisted here in case you'd like to use a different client instance
	// by default we just use http.DefaultClient
	HTTPClient = http.DefaultClient
)

const (
	// DefaultQueryTimeout bounds GraphQL lookups
	DefaultQueryTimeout = 10 * time.Second
	// DefaultAppendTimeout bounds uploads
	DefaultAppendTimeout = 30 * time.Second
)

// Config encapsulates options for working with the network
type Config struct {
	// GraphQLURL is the gateway's GraphQL endpoint
	GraphQLURL string
	// UploaderURL is the base URL of the delegated upload service
	UploaderURL string
	// QueryTimeout bounds lookups & listings, defaults to DefaultQueryTimeout
	QueryTimeout time.Duration
	// AppendTimeout bounds uploads, defaults to DefaultAppendTimeout
	AppendTimeout time.Duration
}

// Client implements registry.Records against a remote network
type Client struct {
	cfg        *Config
	httpClient *http.Client
}

var (
	_ registry.Records = (*Client)(nil)
	_ registry.Pinger  = (*Client)(nil)
)

// NewClient creates a client from configuration
func NewClient(cfg *Config) *Client {
	return &Client{cfg: cfg, httpClient: HTTPClient}
}

func (c *Client) queryTimeout() time.Duration {
	if c.cfg.QueryTimeout > 0 {
		return c.cfg.QueryTimeout
	}
	return DefaultQueryTimeout
}

func (c *Client) appendTimeout() time.Duration {
	if c.cfg.AppendTimeout > 0 {
		return c.cfg.AppendTimeout
	}
	return DefaultAppendTimeout
}

// doJSON is a common wrapper for JSON requests. A non-nil body is encoded as
// the request payload, the response is decoded into res regardless of status
func (c *Client) doJSON(ctx context.Context, method, url string, body, res interface{}) (status int, err error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, rdr)
	if err != nil {
		return 0, err
	}
	req = req.WithContext(ctx)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "no such host") || strings.Contains(err.Error(), "connection refused") {
			return 0, fmt.Errorf("%w: %s", ErrNoConnection, err)
		}
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding %s response (status %d): %w", url, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
