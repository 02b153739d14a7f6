package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/irysname/irysname/config"
	"github.com/irysname/irysname/lib"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

// NewIrysnameCommand represents the base command when called without any subcommands
func NewIrysnameCommand(ctx context.Context, repoPath string, ioStreams ioes.IOStreams) *cobra.Command {
	opt := NewIrysnameOptions(ctx, repoPath, ioStreams)

	cmd := &cobra.Command{
		Use:   "irysname",
		Short: "human-readable usernames for wallet addresses",
		Long: `irysname registers usernames like alice.irys against Ethereum-style
wallet addresses. Ownership is proven with a personal-message signature and
every registration is stored as a tagged, permanent record on an Irys-style
data network.

Run ` + "`irysname serve`" + ` to start the JSON API, or use the commands
below to work with the registry directly.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setNoColor(opt.NoColor || os.Getenv("NO_COLOR") != "")
		},
	}

	cmd.PersistentFlags().BoolVarP(&opt.NoColor, "no-color", "", false, "disable colorized output")
	cmd.PersistentFlags().StringVar(&opt.repoPath, "repo", repoPath, "provide a path to load irysname from")
	cmd.PersistentFlags().StringVar(&opt.Backend, "backend", "", "override the registry backend (mem or gateway)")

	cmd.AddCommand(
		NewCheckCommand(opt, ioStreams),
		NewConfigCommand(opt, ioStreams),
		NewInfoCommand(opt, ioStreams),
		NewListCommand(opt, ioStreams),
		NewRegisterCommand(opt, ioStreams),
		NewResolveCommand(opt, ioStreams),
		NewServeCommand(opt, ioStreams),
		NewSignCommand(opt, ioStreams),
		NewVersionCommand(opt, ioStreams),
	)

	return cmd
}

// IrysnameOptions holds the Root Command State
type IrysnameOptions struct {
	ioes.IOStreams

	ctx context.Context

	// path to the irysname directory
	repoPath string
	// NoColor disables colorized output
	NoColor bool
	// Backend overrides the configured registry backend
	Backend string

	cfg         *config.Config
	inst        *lib.Instance
	initialized sync.Once
	initErr     error
}

var _ Factory = (*IrysnameOptions)(nil)

// NewIrysnameOptions creates an options object
func NewIrysnameOptions(ctx context.Context, repoPath string, ioStreams ioes.IOStreams) *IrysnameOptions {
	return &IrysnameOptions{
		IOStreams: ioStreams,
		ctx:       ctx,
		repoPath:  repoPath,
	}
}

// Init will initialize the internal state. Configuration is read from the
// repo's config file if one exists, defaults otherwise, with environment
// variables taking precedence over both
func (o *IrysnameOptions) Init() error {
	o.initialized.Do(func() {
		o.cfg, o.initErr = loadConfig(o.repoPath)
		if o.initErr != nil {
			return
		}
		if o.Backend != "" {
			o.cfg.Registry.Backend = o.Backend
		}
		o.inst, o.initErr = lib.NewInstance(o.ctx, o.cfg, lib.OptConfigPath(ConfigPath(o.repoPath)))
		log.Debugf("running cmd %q", os.Args)
	})
	return o.initErr
}

func loadConfig(repoPath string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	path := ConfigPath(repoPath)
	if _, err := os.Stat(path); err == nil {
		if cfg, err = config.ReadFromFile(path); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Instance returns the instance this options is using
func (o *IrysnameOptions) Instance() (*lib.Instance, error) {
	if err := o.Init(); err != nil {
		return nil, err
	}
	return o.inst, nil
}

// Config returns from internal state
func (o *IrysnameOptions) Config() (*config.Config, error) {
	if err := o.Init(); err != nil {
		return nil, err
	}
	return o.cfg, nil
}

// RepoPath returns the path to the irysname directory
func (o *IrysnameOptions) RepoPath() string {
	return o.repoPath
}
