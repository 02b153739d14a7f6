// Package lib implements core irysname business logic. It exports
// canonical methods that an irysname instance can perform regardless of
// client interface. API's of any sort must use lib methods
package lib

import (
	"context"
	"fmt"

	golog "github.com/ipfs/go-log"
	"github.com/irysname/irysname/config"
	"github.com/irysname/irysname/event"
	"github.com/irysname/irysname/metrics"
	"github.com/irysname/irysname/registry"
	"github.com/irysname/irysname/registry/regclient"
	"github.com/irysname/irysname/tracing"
	"go.opentelemetry.io/otel/trace"
)

var log = golog.Logger("lib")

// VersionNumber is the current version of irysname
const VersionNumber = "0.1.0"

// InstanceOptions provides details to NewInstance.
// New will alter InstanceOptions by applying
// any provided Option functions
// to distinguish "Options" from "Config":
// * Options contains state that can only be determined at runtime
// * Config consists only of static values stored in a config file
// Options may override config in specific cases to avoid undefined state
type InstanceOptions struct {
	Records registry.Records
	Bus     event.Bus
	Tracer  trace.Tracer
	Metrics *metrics.Collector
	// ConfigPath is where config changes are written, if set
	ConfigPath string
}

// Option is a function that manipulates instance options
type Option func(o *InstanceOptions) error

// OptRecords overrides the configured registry backend
func OptRecords(rs registry.Records) Option {
	return func(o *InstanceOptions) error {
		o.Records = rs
		return nil
	}
}

// OptBus sets the event bus
func OptBus(bus event.Bus) Option {
	return func(o *InstanceOptions) error {
		o.Bus = bus
		return nil
	}
}

// OptTracer sets the tracer, skipping tracing configuration
func OptTracer(tracer trace.Tracer) Option {
	return func(o *InstanceOptions) error {
		o.Tracer = tracer
		return nil
	}
}

// OptMetrics supplies a metrics collector
func OptMetrics(c *metrics.Collector) Option {
	return func(o *InstanceOptions) error {
		o.Metrics = c
		return nil
	}
}

// OptConfigPath sets the file config changes are saved to
func OptConfigPath(path string) Option {
	return func(o *InstanceOptions) error {
		o.ConfigPath = path
		return nil
	}
}

// Instance bundles the configuration, registry backend & event bus that lib
// methods operate on. Instances hold no per-request state and are safe for
// concurrent use
type Instance struct {
	ctx      context.Context
	cfg      *config.Config
	cfgPath  string
	records  registry.Records
	bus      event.Bus
	tracer   trace.Tracer
	provider *tracing.Provider
	metrics  *metrics.Collector
}

// NewInstance creates an instance from configuration. The instance stops
// delivering events when ctx is cancelled
func NewInstance(ctx context.Context, cfg *config.Config, opts ...Option) (*Instance, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	o := &InstanceOptions{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if cfg.Logging != nil {
		for name, level := range cfg.Logging.Levels {
			if err := golog.SetLogLevel(name, level); err != nil {
				log.Debugf("setting log level for %q: %s", name, err)
			}
		}
	}

	inst := &Instance{
		ctx:     ctx,
		cfg:     cfg,
		cfgPath: o.ConfigPath,
		records: o.Records,
		bus:     o.Bus,
		tracer:  o.Tracer,
		metrics: o.Metrics,
	}

	if inst.records == nil {
		rs, err := newRecords(cfg.Registry)
		if err != nil {
			return nil, err
		}
		inst.records = rs
	}
	if inst.bus == nil {
		inst.bus = event.NewBus(ctx)
	}
	if inst.tracer == nil {
		provider, err := tracing.NewProvider(cfg.Tracing, nil)
		if err != nil {
			return nil, err
		}
		inst.provider = provider
		inst.tracer = provider.Tracer()
	}
	if inst.metrics == nil {
		inst.metrics = metrics.NewCollector()
	}
	inst.metrics.Subscribe(ctx, inst.bus)

	return inst, nil
}

func newRecords(cfg *config.Registry) (registry.Records, error) {
	switch cfg.Backend {
	case config.BackendMem:
		log.Info("using in-memory registry, records will not persist")
		return registry.NewMemRecords(), nil
	case config.BackendGateway:
		return regclient.NewClient(&regclient.Config{
			GraphQLURL:    cfg.GraphQLURL,
			UploaderURL:   cfg.UploaderURL,
			QueryTimeout:  cfg.QueryTimeoutDuration(),
			AppendTimeout: cfg.AppendTimeoutDuration(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown registry backend: %q", cfg.Backend)
	}
}

// Context returns the context the instance was created with
func (inst *Instance) Context() context.Context {
	return inst.ctx
}

// Config returns the instance configuration
func (inst *Instance) Config() *config.Config {
	return inst.cfg
}

// Bus exposes the instance event bus
func (inst *Instance) Bus() event.Bus {
	return inst.bus
}

// Records exposes the registry backend
func (inst *Instance) Records() registry.Records {
	return inst.records
}

// Metrics exposes the instance metrics collector
func (inst *Instance) Metrics() *metrics.Collector {
	return inst.metrics
}

// Registry returns methods for registering & resolving usernames
func (inst *Instance) Registry() *RegistryMethods {
	return &RegistryMethods{inst: inst}
}

// Shutdown flushes any pending trace spans
func (inst *Instance) Shutdown(ctx context.Context) error {
	if inst.provider != nil {
		return inst.provider.Shutdown(ctx)
	}
	return nil
}
