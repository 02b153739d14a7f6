package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	golog "github.com/ipfs/go-log"
	testcfg "github.com/irysname/irysname/config/test"
	"github.com/irysname/irysname/registry"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

func init() {
	golog.SetLogLevel("lib", "error")
	golog.SetLogLevel("cmd", "error")
}

// hardhat development account #0
const testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func ioReset(in, out, errs *bytes.Buffer) {
	in.Reset()
	out.Reset()
	errs.Reset()
}

func executeCommand(root *cobra.Command, cmd string) error {
	root.SetArgs(strings.Split(cmd, " "))
	_, err := root.ExecuteC()
	return err
}

func newSeededFactory(t *testing.T, usernames ...string) TestFactory {
	f, err := NewTestFactory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, u := range usernames {
		if _, err := f.records.Append(context.Background(), u, testAddress, nil); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestCheck(t *testing.T) {
	streams, in, out, errs := ioes.NewTestIOStreams()
	setNoColor(true)
	f := newSeededFactory(t, "demo")

	cases := []struct {
		args      []string
		expectOut string
		expectErr string
	}{
		{[]string{"demo"}, "demo is taken\n", ""},
		{[]string{"alice_01"}, "alice_01 is available\n", ""},
		{[]string{"DEMO", "bob"}, "DEMO is taken\nbob is available\n", ""},
		{[]string{"ab"}, "", "invalid username format\n"},
	}

	for i, c := range cases {
		opt := &CheckOptions{IOStreams: streams}
		if err := opt.Complete(f, c.args); err != nil {
			t.Fatal(err)
		}
		if err := opt.Run(); err != nil {
			t.Errorf("case %d: unexpected error: %s", i, err)
		}
		if out.String() != c.expectOut {
			t.Errorf("case %d: output mismatch. expected %q, got %q", i, c.expectOut, out.String())
		}
		if errs.String() != c.expectErr {
			t.Errorf("case %d: error output mismatch. expected %q, got %q", i, c.expectErr, errs.String())
		}
		ioReset(in, out, errs)
	}
}

func TestRegisterAndResolve(t *testing.T) {
	streams, in, out, errs := ioes.NewTestIOStreams()
	setNoColor(true)
	f := newSeededFactory(t, "demo")

	opt := &RegisterOptions{
		IOStreams: streams,
		Key:       testcfg.TestPrivateKey,
		Meta:      []string{"bio=hello world"},
	}
	if err := opt.Complete(f, []string{"alice_01"}); err != nil {
		t.Fatal(err)
	}
	if opt.Address != testAddress {
		t.Errorf("expected address derived from key, got %q", opt.Address)
	}
	if err := opt.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "alice_01.irys registered successfully\n") {
		t.Errorf("unexpected register output: %q", out.String())
	}
	ioReset(in, out, errs)

	ropt := &ResolveOptions{IOStreams: streams, Format: "json"}
	if err := ropt.Complete(f, []string{"Alice_01"}); err != nil {
		t.Fatal(err)
	}
	if err := ropt.Run(); err != nil {
		t.Fatal(err)
	}
	for _, expect := range []string{`"username": "alice_01"`, `"owner": "` + strings.ToLower(testAddress) + `"`, `"bio": "hello world"`} {
		if !strings.Contains(out.String(), expect) {
			t.Errorf("resolve output missing %s:\n%s", expect, out.String())
		}
	}
	ioReset(in, out, errs)

	// registering again is rejected
	opt = &RegisterOptions{IOStreams: streams, Key: testcfg.TestPrivateKey}
	if err := opt.Complete(f, []string{"alice_01"}); err != nil {
		t.Fatal(err)
	}
	if err := opt.Run(); !errors.Is(err, registry.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got: %v", err)
	}

	ropt = &ResolveOptions{IOStreams: streams}
	if err := ropt.Complete(f, []string{"nobody"}); err != nil {
		t.Fatal(err)
	}
	if err := ropt.Run(); err == nil {
		t.Error("expected an error resolving an unregistered name")
	}
}

func TestRegisterComplete(t *testing.T) {
	streams, _, _, _ := ioes.NewTestIOStreams()
	f := newSeededFactory(t)

	sig, err := signWithTestKey("alice_01")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		opt *RegisterOptions
		err string
	}{
		{&RegisterOptions{IOStreams: streams}, "either --sign, or both --address and --signature are required"},
		{&RegisterOptions{IOStreams: streams, Address: testAddress}, "either --sign, or both --address and --signature are required"},
		{&RegisterOptions{IOStreams: streams, Key: "nope"}, "invalid private key: invalid hex character 'n' in private key"},
		{&RegisterOptions{IOStreams: streams, Address: testAddress, Signature: sig}, ""},
	}

	for i, c := range cases {
		err := c.opt.Complete(f, []string{"alice_01"})
		if (err == nil && c.err != "") || (err != nil && err.Error() != c.err) {
			t.Errorf("case %d: error mismatch. expected %q, got %v", i, c.err, err)
		}
	}
}

func signWithTestKey(username string) (string, error) {
	key, err := registry.ParsePrivateKey(testcfg.TestPrivateKey)
	if err != nil {
		return "", err
	}
	return registry.SignMessage(registry.RegistrationMessage(username), key)
}

func TestParseMeta(t *testing.T) {
	md, err := parseMeta([]string{"bio=hi", "url=https://a.b/?x=1"})
	if err != nil {
		t.Fatal(err)
	}
	if md["bio"] != "hi" || md["url"] != "https://a.b/?x=1" {
		t.Errorf("unexpected metadata: %#v", md)
	}
	if md, _ := parseMeta(nil); md != nil {
		t.Errorf("expected nil metadata for no pairs, got %#v", md)
	}
	for _, bad := range []string{"novalue", "=value"} {
		if _, err := parseMeta([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestSign(t *testing.T) {
	streams, _, out, _ := ioes.NewTestIOStreams()
	f := newSeededFactory(t)

	opt := &SignOptions{IOStreams: streams, Key: "0x" + testcfg.TestPrivateKey}
	if err := opt.Complete(f, []string{"Alice_01"}); err != nil {
		t.Fatal(err)
	}
	if err := opt.Run(); err != nil {
		t.Fatal(err)
	}

	sig, err := signWithTestKey("Alice_01")
	if err != nil {
		t.Fatal(err)
	}
	expect := "message:   Register username: Alice_01\n" +
		"address:   " + testAddress + "\n" +
		"signature: " + sig + "\n"
	if out.String() != expect {
		t.Errorf("output mismatch. expected:\n%s\ngot:\n%s", expect, out.String())
	}
	if !registry.VerifySignature("Register username: Alice_01", sig, testAddress) {
		t.Error("printed signature should verify")
	}
}

func TestList(t *testing.T) {
	streams, in, out, errs := ioes.NewTestIOStreams()
	setNoColor(true)

	prevNow := nowFunc
	defer func() { nowFunc = prevNow }()

	f := newSeededFactory(t)
	opt := &ListOptions{IOStreams: streams, Limit: 10}
	if err := opt.Complete(f, nil); err != nil {
		t.Fatal(err)
	}
	if err := opt.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "no usernames registered yet\n" {
		t.Errorf("unexpected empty output: %q", out.String())
	}
	ioReset(in, out, errs)

	rec := &registry.Record{
		Username:  "demo",
		Owner:     strings.ToLower(testAddress),
		Timestamp: 1699564800000,
	}
	rec, err := f.records.Store(rec, registry.RecordTags(rec))
	if err != nil {
		t.Fatal(err)
	}
	nowFunc = func() time.Time { return time.UnixMilli(1699564800000).Add(time.Hour) }

	if err := opt.Run(); err != nil {
		t.Fatal(err)
	}
	expect := "1   demo\n" +
		"    owner: " + strings.ToLower(testAddress) + "\n" +
		"    registered 1 hour ago\n" +
		"    " + rec.ID + "\n\n"
	if out.String() != expect {
		t.Errorf("output mismatch. expected:\n%q\ngot:\n%q", expect, out.String())
	}
}

func TestInfo(t *testing.T) {
	streams, _, out, _ := ioes.NewTestIOStreams()
	setNoColor(true)
	f := newSeededFactory(t)

	opt := &InfoOptions{IOStreams: streams}
	if err := opt.Complete(f, nil); err != nil {
		t.Fatal(err)
	}
	if err := opt.Run(); err != nil {
		t.Fatal(err)
	}
	for _, expect := range []string{"backend:\tmem", "identity:\t" + testAddress, "status:\t\tok"} {
		if !strings.Contains(out.String(), expect) {
			t.Errorf("info output missing %q:\n%s", expect, out.String())
		}
	}
	if strings.Contains(out.String(), "balance") {
		t.Errorf("mem backend should not report a balance:\n%s", out.String())
	}
}

func TestConfigGetSet(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setNoColor(true)

	t.Setenv("IRYSNAME_BACKEND", "mem")
	repoPath := t.TempDir()

	streams, _, out, _ := ioes.NewTestIOStreams()
	root := NewIrysnameCommand(ctx, repoPath, streams)
	if err := executeCommand(root, "config set api.port 9090 registry.namesuffix test"); err != nil {
		t.Fatal(err)
	}

	// a new root reads the written file
	streams, _, out, _ = ioes.NewTestIOStreams()
	root = NewIrysnameCommand(ctx, repoPath, streams)
	if err := executeCommand(root, "config get api.port --no-color"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "9090\n\n" {
		t.Errorf("expected port 9090, got %q", out.String())
	}

	streams, _, out, _ = ioes.NewTestIOStreams()
	root = NewIrysnameCommand(ctx, repoPath, streams)
	if err := executeCommand(root, "config get registry.namesuffix --format json --concise"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\"test\"\n" {
		t.Errorf("expected suffix test, got %q", out.String())
	}

	root = NewIrysnameCommand(ctx, repoPath, streams)
	if err := executeCommand(root, "config set api.port"); err == nil {
		t.Error("expected an error for an odd number of arguments")
	}
}

func TestRootCommandCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Setenv("IRYSNAME_BACKEND", "")
	streams, _, out, _ := ioes.NewTestIOStreams()
	root := NewIrysnameCommand(ctx, t.TempDir(), streams)
	if err := executeCommand(root, "check alice_01 --backend mem --no-color"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "alice_01 is available\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestVersion(t *testing.T) {
	streams, _, out, _ := ioes.NewTestIOStreams()
	root := NewIrysnameCommand(context.Background(), t.TempDir(), streams)
	if err := executeCommand(root, "version"); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("expected a version")
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err    error
		expect int
	}{
		{nil, ExitCodeOK},
		{errors.New("boom"), ExitCodeErr},
		{registry.ErrInvalidFormat, ExitCodeRejected},
		{registry.ErrUsernameTaken, ExitCodeRejected},
		{registry.ErrSignatureInvalid, ExitCodeRejected},
		{fmt.Errorf("resolving demo: %w", registry.ErrNotFound), ExitCodeNotFound},
		{registry.NewUploadError("insufficient balance", nil), ExitCodeUnavailable},
		{fmt.Errorf("%w: timeout", registry.ErrBackendUnavailable), ExitCodeUnavailable},
	}

	for i, c := range cases {
		if got := ExitCode(c.err); got != c.expect {
			t.Errorf("case %d: expected exit code %d, got %d", i, c.expect, got)
		}
	}
}
