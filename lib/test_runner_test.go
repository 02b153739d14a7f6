package lib

import (
	"context"
	"crypto/ecdsa"
	"sync/atomic"
	"testing"
	"time"

	"github.com/irysname/irysname/config"
	testcfg "github.com/irysname/irysname/config/test"
	"github.com/irysname/irysname/event"
	"github.com/irysname/irysname/registry"
)

type testRunner struct {
	Ctx      context.Context
	Records  *registry.MemRecords
	Instance *Instance
	Key      *ecdsa.PrivateKey
	Address  string
	cancel   context.CancelFunc
}

func newTestRunner(t *testing.T, opts ...Option) *testRunner {
	return newTestRunnerWithConfig(t, testcfg.DefaultConfigForTesting(), opts...)
}

func newTestRunnerWithConfig(t *testing.T, cfg *config.Config, opts ...Option) *testRunner {
	ctx, cancel := context.WithCancel(context.Background())

	key, err := registry.ParsePrivateKey(testcfg.TestPrivateKey)
	if err != nil {
		t.Fatal(err)
	}

	rs := registry.NewMemRecords()
	opts = append([]Option{OptRecords(rs), OptBus(event.NewBus(ctx))}, opts...)
	inst, err := NewInstance(ctx, cfg, opts...)
	if err != nil {
		t.Fatal(err)
	}

	return &testRunner{
		Ctx:      ctx,
		Records:  rs,
		Instance: inst,
		Key:      key,
		Address:  registry.KeyAddress(key),
		cancel:   cancel,
	}
}

func (tr *testRunner) Delete() {
	tr.cancel()
}

// Sign produces a valid registration signature for username
func (tr *testRunner) Sign(t *testing.T, username string) string {
	sig, err := registry.SignMessage(registry.RegistrationMessage(username), tr.Key)
	if err != nil {
		t.Fatal(err)
	}
	return sig
}

// Params builds valid registration params for username
func (tr *testRunner) Params(t *testing.T, username string) *RegisterParams {
	return &RegisterParams{
		Username:  username,
		Address:   tr.Address,
		Signature: tr.Sign(t, username),
	}
}

// Seed registers usernames directly in the backend
func (tr *testRunner) Seed(t *testing.T, usernames ...string) {
	for _, u := range usernames {
		if _, err := tr.Records.Append(tr.Ctx, u, tr.Address, nil); err != nil {
			t.Fatal(err)
		}
	}
}

func waitForEvent(t *testing.T, events <-chan event.Event) event.Event {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return event.Event{}
}

// stubRecords wraps MemRecords, injecting failures
type stubRecords struct {
	*registry.MemRecords
	queryErr  error
	appendErr error
	listErr   error
	pingErr   error
	listLimit int
	// call counts
	queries int32
	appends int32
}

func newStubRecords() *stubRecords {
	return &stubRecords{MemRecords: registry.NewMemRecords()}
}

func (s *stubRecords) QueryByUsername(ctx context.Context, username string) (*registry.Record, error) {
	atomic.AddInt32(&s.queries, 1)
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.MemRecords.QueryByUsername(ctx, username)
}

func (s *stubRecords) Append(ctx context.Context, username, owner string, md map[string]interface{}) (*registry.Record, error) {
	atomic.AddInt32(&s.appends, 1)
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	return s.MemRecords.Append(ctx, username, owner, md)
}

func (s *stubRecords) List(ctx context.Context, limit int) ([]*registry.Record, error) {
	s.listLimit = limit
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.MemRecords.List(ctx, limit)
}

func (s *stubRecords) Ping(ctx context.Context) error {
	return s.pingErr
}
