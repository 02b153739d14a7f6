package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/irysname/irysname/lib"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

// NewResolveCommand creates a command that looks up the owner of a username
func NewResolveCommand(f Factory, ioStreams ioes.IOStreams) *cobra.Command {
	o := &ResolveOptions{IOStreams: ioStreams}
	cmd := &cobra.Command{
		Use:   "resolve USERNAME",
		Short: "show the record for a username",
		Long: `Resolve fetches the most recent registration record for a username,
showing the owning address. Lookups are case-insensitive.`,
		Example: `  # show who owns alice_01:
  $ irysname resolve alice_01

  # print the raw record:
  $ irysname resolve alice_01 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(f, args); err != nil {
				return err
			}
			return o.Run()
		},
	}

	cmd.Flags().StringVar(&o.Format, "format", "", "output format, only json is supported")

	return cmd
}

// ResolveOptions encapsulates state for the resolve command
type ResolveOptions struct {
	ioes.IOStreams

	Username string
	Format   string

	RegistryMethods *lib.RegistryMethods
}

// Complete adds any missing configuration that can only be added just before calling Run
func (o *ResolveOptions) Complete(f Factory, args []string) error {
	inst, err := f.Instance()
	if err != nil {
		return err
	}
	o.Username = args[0]
	o.RegistryMethods = inst.Registry()
	return nil
}

// Run executes the resolve command
func (o *ResolveOptions) Run() error {
	rec, err := o.RegistryMethods.Resolve(context.TODO(), o.Username)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", o.Username, err)
	}

	switch o.Format {
	case "json":
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Out, string(data))
	case "":
		fmt.Fprint(o.Out, recordStringer(*rec).String())
	default:
		return fmt.Errorf("unknown format %q", o.Format)
	}
	return nil
}
