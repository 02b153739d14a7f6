package api

import (
	"context"
	"crypto/ecdsa"
	"testing"

	"github.com/gorilla/mux"
	"github.com/irysname/irysname/config"
	testcfg "github.com/irysname/irysname/config/test"
	"github.com/irysname/irysname/event"
	"github.com/irysname/irysname/lib"
	"github.com/irysname/irysname/registry"
)

// APITestRunner holds an instance backed by an in-memory registry seeded
// with the username "demo"
type APITestRunner struct {
	Ctx      context.Context
	Records  registry.Records
	Instance *lib.Instance
	Key      *ecdsa.PrivateKey
	Address  string
	cancel   context.CancelFunc
}

// NewAPITestRunner creates a runner over a fresh in-memory registry
func NewAPITestRunner(t *testing.T) *APITestRunner {
	return NewAPITestRunnerWithRecords(t, testcfg.DefaultConfigForTesting(), registry.NewMemRecords())
}

// NewAPITestRunnerWithRecords creates a runner over the given backend
func NewAPITestRunnerWithRecords(t *testing.T, cfg *config.Config, rs registry.Records) *APITestRunner {
	ctx, cancel := context.WithCancel(context.Background())

	key, err := registry.ParsePrivateKey(testcfg.TestPrivateKey)
	if err != nil {
		t.Fatal(err)
	}

	inst, err := lib.NewInstance(ctx, cfg, lib.OptRecords(rs), lib.OptBus(event.NewBus(ctx)))
	if err != nil {
		t.Fatal(err)
	}

	tr := &APITestRunner{
		Ctx:      ctx,
		Records:  rs,
		Instance: inst,
		Key:      key,
		Address:  registry.KeyAddress(key),
		cancel:   cancel,
	}
	if _, err := rs.Append(ctx, "demo", tr.Address, nil); err != nil {
		t.Fatal(err)
	}
	return tr
}

// Delete tears down the runner
func (tr *APITestRunner) Delete() {
	tr.cancel()
}

// Router builds the full set of server routes
func (tr *APITestRunner) Router() *mux.Router {
	return NewServerRoutes(New(tr.Instance))
}

// Sign produces a registration signature for username
func (tr *APITestRunner) Sign(t *testing.T, username string) string {
	sig, err := registry.SignMessage(registry.RegistrationMessage(username), tr.Key)
	if err != nil {
		t.Fatal(err)
	}
	return sig
}

// failingRecords is a backend where every operation fails
type failingRecords struct {
	*registry.MemRecords
	queryErr  error
	appendErr error
	listErr   error
}

func (f *failingRecords) QueryByUsername(ctx context.Context, username string) (*registry.Record, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.MemRecords.QueryByUsername(ctx, username)
}

func (f *failingRecords) Append(ctx context.Context, username, owner string, md map[string]interface{}) (*registry.Record, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	return f.MemRecords.Append(ctx, username, owner, md)
}

func (f *failingRecords) List(ctx context.Context, limit int) ([]*registry.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.MemRecords.List(ctx, limit)
}
