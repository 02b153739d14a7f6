package cmd

import (
	"github.com/irysname/irysname/api"
	"github.com/irysname/irysname/lib"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

// NewServeCommand creates a command that runs the JSON API
func NewServeCommand(f Factory, ioStreams ioes.IOStreams) *cobra.Command {
	o := &ServeOptions{IOStreams: ioStreams}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the JSON API server",
		Long: `Serve runs the username JSON API until interrupted. Configuration comes
from the config file, environment variables (PRIVATE_KEY, IRYS_GATEWAY_URL,
IRYS_GRAPHQL_URL, IRYS_UPLOADER_URL, IRYSNAME_BACKEND, PORT) and flags, in
increasing order of precedence.`,
		Example: `  # serve on port 8080 with an in-memory registry:
  $ irysname serve --port 8080 --backend mem`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(f, args); err != nil {
				return err
			}
			return o.Run()
		},
	}

	cmd.Flags().IntVarP(&o.Port, "port", "p", 0, "port to listen on, overrides config")
	cmd.Flags().BoolVar(&o.ReadOnly, "read-only", false, "reject registrations")

	return cmd
}

// ServeOptions encapsulates state for the serve command
type ServeOptions struct {
	ioes.IOStreams

	Port     int
	ReadOnly bool

	inst *lib.Instance
}

// Complete adds any missing configuration that can only be added just before calling Run
func (o *ServeOptions) Complete(f Factory, args []string) (err error) {
	cfg, err := f.Config()
	if err != nil {
		return err
	}
	if o.Port != 0 {
		cfg.API.Port = o.Port
	}
	if o.ReadOnly {
		cfg.API.ReadOnly = true
	}
	o.inst, err = f.Instance()
	return err
}

// Run executes the serve command, blocking until the instance context is
// cancelled
func (o *ServeOptions) Run() error {
	printInfo(o.ErrOut, "irysname API listening on %s", o.inst.Config().API.Address())
	return api.New(o.inst).Serve(o.inst.Context())
}
