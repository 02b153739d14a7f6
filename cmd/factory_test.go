package cmd

import (
	"context"

	"github.com/irysname/irysname/config"
	testcfg "github.com/irysname/irysname/config/test"
	"github.com/irysname/irysname/event"
	"github.com/irysname/irysname/lib"
	"github.com/irysname/irysname/registry"
	"github.com/qri-io/ioes"
)

// TestFactory is an implementation of the Factory interface for testing purposes
type TestFactory struct {
	ioes.IOStreams
	// path to irysname data directory
	repoPath string

	inst    *lib.Instance
	// Configuration object
	config  *config.Config
	records *registry.MemRecords
}

var _ Factory = (*TestFactory)(nil)

// NewTestFactory creates TestFactory object with an in memory registry
func NewTestFactory(ctx context.Context) (tf TestFactory, err error) {
	cfg := testcfg.DefaultConfigForTesting().Copy()
	rs := registry.NewMemRecords()
	inst, err := lib.NewInstance(ctx, cfg, lib.OptRecords(rs), lib.OptBus(event.NewBus(ctx)))
	if err != nil {
		return
	}

	return TestFactory{
		IOStreams: ioes.NewDiscardIOStreams(),
		inst:      inst,
		config:    cfg,
		records:   rs,
	}, nil
}

// Init will initialize the internal state
func (t TestFactory) Init() error {
	return nil
}

// Instance returns the instance
func (t TestFactory) Instance() (*lib.Instance, error) {
	return t.inst, nil
}

// Config returns the internal Config
func (t TestFactory) Config() (*config.Config, error) {
	return t.config, nil
}

// RepoPath returns the path to the irysname directory
func (t TestFactory) RepoPath() string {
	return t.repoPath
}
