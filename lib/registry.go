package lib

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/irysname/irysname/event"
	"github.com/irysname/irysname/registry"
	"github.com/irysname/irysname/registry/regclient"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultListLimit is the number of records List returns when no limit
	// is given
	DefaultListLimit = 100
	// MaxListLimit caps the number of records a single List call returns
	MaxListLimit = 1000
)

// ErrBadArgs is returned when a method is called with incomplete or
// malformed parameters
var ErrBadArgs = errors.New("bad arguments provided")

// RegistryMethods encapsulates username registration & resolution
type RegistryMethods struct {
	inst *Instance
}

// Name returns the name of this method group
func (m RegistryMethods) Name() string {
	return "registry"
}

// RegisterParams is a registration request. Signature must be a personal
// message signature of "Register username: {Username}" by Address
type RegisterParams struct {
	Username  string                 `json:"username"`
	Address   string                 `json:"address"`
	Signature string                 `json:"signature"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Validate returns an error if input params are missing required fields.
// username format is checked by the registration pipeline itself
func (p *RegisterParams) Validate() error {
	if p.Address == "" {
		return fmt.Errorf("%w: address is required", ErrBadArgs)
	}
	if p.Signature == "" {
		return fmt.Errorf("%w: signature is required", ErrBadArgs)
	}
	return nil
}

// RegisterResult describes a committed registration
type RegisterResult struct {
	Success     bool   `json:"success"`
	Username    string `json:"username"`
	Owner       string `json:"owner"`
	TxID        string `json:"tx_id"`
	ExplorerURL string `json:"explorer_url"`
	Message     string `json:"message"`
}

// Register claims a username for an address. Steps run in order, the first
// failure short-circuits:
//  1. username format is validated
//  2. the registry is checked for an existing claim. An unreachable registry
//     does not block registration
//  3. the signature is verified against the address
//  4. the record is appended to the registry
//
// There is no lock between the availability check and the append, two
// concurrent registrations of the same name may both commit
func (m RegistryMethods) Register(ctx context.Context, p *RegisterParams) (*RegisterResult, error) {
	ctx, span := m.inst.tracer.Start(ctx, "registry.Register",
		trace.WithAttributes(attribute.String("username", p.Username)))
	defer span.End()

	if err := p.Validate(); err != nil {
		return nil, spanError(span, err)
	}

	if !registry.ValidUsername(p.Username) {
		m.failed(p.Username, "invalid_format", "")
		return nil, spanError(span, registry.ErrInvalidFormat)
	}

	if err := m.ensureAvailable(ctx, p.Username); err != nil {
		m.failed(p.Username, "already_taken", "")
		return nil, spanError(span, err)
	}

	if err := m.verify(ctx, p); err != nil {
		m.failed(p.Username, "signature_invalid", "")
		return nil, spanError(span, err)
	}

	rec, err := m.upload(ctx, p)
	if err != nil {
		detail := err.Error()
		var uerr *registry.UploadError
		if errors.As(err, &uerr) {
			detail = uerr.Detail
		}
		m.failed(p.Username, "upload_failed", detail)
		return nil, spanError(span, err)
	}

	span.SetAttributes(attribute.String("tx_id", rec.ID))
	m.inst.bus.Publish(event.ETUsernameRegistered, rec)
	log.Infof("registered %s to %s, tx %s", p.Username, p.Address, rec.ID)

	cfg := m.inst.cfg.Registry
	return &RegisterResult{
		Success:     true,
		Username:    p.Username,
		Owner:       p.Address,
		TxID:        rec.ID,
		ExplorerURL: ExplorerURL(cfg.GatewayURL, rec.ID),
		Message:     fmt.Sprintf("%s.%s registered successfully", p.Username, cfg.NameSuffix),
	}, nil
}

// ExplorerURL joins a gateway base URL & transaction id
func ExplorerURL(gatewayURL, txID string) string {
	return strings.TrimRight(gatewayURL, "/") + "/" + txID
}

// ensureAvailable returns ErrUsernameTaken if a record exists. Backend
// failures are logged and treated as available
func (m RegistryMethods) ensureAvailable(ctx context.Context, username string) error {
	ctx, span := m.inst.tracer.Start(ctx, "registry.availability")
	defer span.End()

	_, err := m.inst.records.QueryByUsername(ctx, registry.Normalize(username))
	switch {
	case err == nil:
		return registry.ErrUsernameTaken
	case errors.Is(err, registry.ErrNotFound):
		return nil
	default:
		log.Warnf("availability check for %q failed, proceeding with registration: %s", username, err)
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("fail_open", true))
		m.degraded("register", username, true, err)
		return nil
	}
}

func (m RegistryMethods) verify(ctx context.Context, p *RegisterParams) error {
	_, span := m.inst.tracer.Start(ctx, "registry.verify")
	defer span.End()

	if !registry.VerifySignature(registry.RegistrationMessage(p.Username), p.Signature, p.Address) {
		return spanError(span, registry.ErrSignatureInvalid)
	}
	return nil
}

func (m RegistryMethods) upload(ctx context.Context, p *RegisterParams) (*registry.Record, error) {
	ctx, span := m.inst.tracer.Start(ctx, "registry.upload")
	defer span.End()

	rec, err := m.inst.records.Append(ctx, p.Username, p.Address, p.Metadata)
	if err != nil {
		if !errors.Is(err, registry.ErrUploadFailed) {
			err = registry.NewUploadError(err.Error(), err)
		}
		return nil, spanError(span, err)
	}
	return rec, nil
}

// CheckAvailability reports whether a username is free to register. An
// unreachable backend reports the name as available
func (m RegistryMethods) CheckAvailability(ctx context.Context, username string) (bool, error) {
	ctx, span := m.inst.tracer.Start(ctx, "registry.CheckAvailability",
		trace.WithAttributes(attribute.String("username", username)))
	defer span.End()

	if !registry.ValidUsername(username) {
		return false, spanError(span, registry.ErrInvalidFormat)
	}

	_, err := m.inst.records.QueryByUsername(ctx, registry.Normalize(username))
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, registry.ErrNotFound):
		return true, nil
	default:
		log.Warnf("availability check for %q failed, reporting available: %s", username, err)
		span.RecordError(err)
		m.degraded("availability", username, true, err)
		return true, nil
	}
}

// Resolve fetches the most recent record for a username. Unreachable
// backends are reported as ErrNotFound
func (m RegistryMethods) Resolve(ctx context.Context, username string) (*registry.Record, error) {
	ctx, span := m.inst.tracer.Start(ctx, "registry.Resolve",
		trace.WithAttributes(attribute.String("username", username)))
	defer span.End()

	if !registry.ValidUsername(username) {
		return nil, spanError(span, registry.ErrNotFound)
	}

	rec, err := m.inst.records.QueryByUsername(ctx, registry.Normalize(username))
	if err != nil {
		if !errors.Is(err, registry.ErrNotFound) {
			log.Warnf("resolving %q failed: %s", username, err)
			m.degraded("resolve", username, false, err)
		}
		return nil, spanError(span, registry.ErrNotFound)
	}
	return rec, nil
}

// List returns registered records, newest first. limit <= 0 uses
// DefaultListLimit, limits above MaxListLimit are capped
func (m RegistryMethods) List(ctx context.Context, limit int) ([]*registry.Record, error) {
	ctx, span := m.inst.tracer.Start(ctx, "registry.List")
	defer span.End()

	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	span.SetAttributes(attribute.Int("limit", limit))

	recs, err := m.inst.records.List(ctx, limit)
	if err != nil {
		if !errors.Is(err, registry.ErrBackendUnavailable) {
			err = fmt.Errorf("%w: %s", registry.ErrBackendUnavailable, err)
		}
		return nil, spanError(span, err)
	}
	return recs, nil
}

// HealthResult summarizes instance status
type HealthResult struct {
	// Status is "ok" or "degraded"
	Status  string `json:"status"`
	Backend string `json:"backend"`
	// Uploader is the address of the upload identity, if configured
	Uploader string `json:"uploader,omitempty"`
}

// Health pings the backend if it supports pinging
func (m RegistryMethods) Health(ctx context.Context) (*HealthResult, error) {
	res := &HealthResult{
		Status:  "ok",
		Backend: m.inst.cfg.Registry.Backend,
	}
	if m.inst.cfg.Uploader != nil {
		if addr, err := m.inst.cfg.Uploader.Address(); err == nil {
			res.Uploader = addr
		}
	}
	if p, ok := m.inst.records.(registry.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			log.Warnf("backend health check failed: %s", err)
			res.Status = "degraded"
		}
	}
	return res, nil
}

// ErrNoBalance indicates the backend has no funded upload identity to report
var ErrNoBalance = errors.New("balance is only available with the gateway backend")

// Balance fetches the upload identity's balance from the uploader service
func (m RegistryMethods) Balance(ctx context.Context) (*regclient.Balance, error) {
	c, ok := m.inst.records.(*regclient.Client)
	if !ok {
		return nil, ErrNoBalance
	}
	return c.Balance(ctx)
}

func (m RegistryMethods) failed(username, kind, detail string) {
	m.inst.bus.Publish(event.ETRegistrationFailed, event.RegistrationFailure{
		Username: username,
		Kind:     kind,
		Detail:   detail,
	})
}

func (m RegistryMethods) degraded(op, username string, failOpen bool, err error) {
	m.inst.bus.Publish(event.ETBackendDegraded, event.BackendDegraded{
		Op:       op,
		Username: username,
		FailOpen: failOpen,
		Err:      err,
	})
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
