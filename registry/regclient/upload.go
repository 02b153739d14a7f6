package regclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/irysname/irysname/registry"
)

// UploadRequest is the body sent to the uploader's /upload endpoint
type UploadRequest struct {
	Username  string                 `json:"username"`
	Owner     string                 `json:"owner"`
	Timestamp int64                  `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata"`
	Tags      []registry.Tag         `json:"tags"`
}

// UploadResponse is the uploader's reply
type UploadResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Username  string `json:"username,omitempty"`
	Owner     string `json:"owner,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Balance is the uploader identity's funding state
type Balance struct {
	Balance string `json:"balance"`
	Address string `json:"address"`
	Error   string `json:"error,omitempty"`
}

// Append uploads a new registration record
func (c *Client) Append(ctx context.Context, username, owner string, metadata map[string]interface{}) (*registry.Record, error) {
	if c == nil || c.cfg == nil || c.cfg.UploaderURL == "" {
		return nil, registry.NewUploadError("no uploader configured", ErrNoRegistry)
	}

	rec := &registry.Record{
		Username:  registry.Normalize(username),
		Owner:     registry.Normalize(owner),
		Timestamp: registry.NowMillis(),
		Metadata:  metadata,
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]interface{}{}
	}

	ctx, cancel := context.WithTimeout(ctx, c.appendTimeout())
	defer cancel()

	body := UploadRequest{
		Username:  rec.Username,
		Owner:     rec.Owner,
		Timestamp: rec.Timestamp,
		Metadata:  rec.Metadata,
		Tags:      registry.RecordTags(rec),
	}
	res := UploadResponse{}
	status, err := c.doJSON(ctx, http.MethodPost, c.endpoint("/upload"), body, &res)
	if err != nil {
		return nil, registry.NewUploadError("uploader request failed", err)
	}
	if status != http.StatusOK || !res.Success {
		detail := res.Error
		if detail == "" {
			detail = fmt.Sprintf("uploader responded with status %d", status)
		}
		return nil, registry.NewUploadError(detail, nil)
	}
	if res.ID == "" {
		return nil, registry.NewUploadError("uploader response is missing a transaction id", nil)
	}

	rec.ID = res.ID
	// uploaders may stamp records with their own clock, the stored tags
	// carry that value
	if res.Timestamp != 0 {
		rec.Timestamp = res.Timestamp
	}
	log.Infof("uploaded %q as %s", rec.Username, rec.ID)
	return rec, nil
}

// Ping checks the uploader's health endpoint
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.cfg == nil || c.cfg.UploaderURL == "" {
		return ErrNoRegistry
	}
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout())
	defer cancel()

	res := struct {
		Status string `json:"status"`
	}{}
	status, err := c.doJSON(ctx, http.MethodGet, c.endpoint("/health"), nil, &res)
	if err != nil {
		return err
	}
	if status != http.StatusOK || res.Status != "healthy" {
		return fmt.Errorf("uploader unhealthy: status %d %q", status, res.Status)
	}
	return nil
}

// Balance fetches the uploader identity's balance
func (c *Client) Balance(ctx context.Context) (*Balance, error) {
	if c == nil || c.cfg == nil || c.cfg.UploaderURL == "" {
		return nil, ErrNoRegistry
	}
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout())
	defer cancel()

	res := &Balance{}
	status, err := c.doJSON(ctx, http.MethodGet, c.endpoint("/balance"), nil, res)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("error %d: %s", status, res.Error)
	}
	return res, nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimSuffix(c.cfg.UploaderURL, "/") + path
}
