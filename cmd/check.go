package cmd

import (
	"context"

	"github.com/irysname/irysname/lib"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates a command that reports whether usernames are free
func NewCheckCommand(f Factory, ioStreams ioes.IOStreams) *cobra.Command {
	o := &CheckOptions{IOStreams: ioStreams}
	cmd := &cobra.Command{
		Use:   "check USERNAME [USERNAME...]",
		Short: "check if a username is available",
		Long: `Check looks each username up on the registry. Usernames are 3-20
characters long & may only contain letters, numbers and underscores. Lookups
are case-insensitive.

If the registry can't be reached, names are reported as available.`,
		Example: `  # check a single name:
  $ irysname check alice_01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(f, args); err != nil {
				return err
			}
			return o.Run()
		},
	}

	return cmd
}

// CheckOptions encapsulates state for the check command
type CheckOptions struct {
	ioes.IOStreams

	Usernames       []string
	RegistryMethods *lib.RegistryMethods
}

// Complete adds any missing configuration that can only be added just before calling Run
func (o *CheckOptions) Complete(f Factory, args []string) error {
	inst, err := f.Instance()
	if err != nil {
		return err
	}
	o.Usernames = args
	o.RegistryMethods = inst.Registry()
	return nil
}

// Run executes the check command
func (o *CheckOptions) Run() error {
	ctx := context.TODO()
	for _, name := range o.Usernames {
		available, err := o.RegistryMethods.CheckAvailability(ctx, name)
		if err != nil {
			printErr(o.ErrOut, err)
			continue
		}
		if available {
			printSuccess(o.Out, "%s is available", name)
		} else {
			printWarning(o.Out, "%s is taken", name)
		}
	}
	return nil
}
