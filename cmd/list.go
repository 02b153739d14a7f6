package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/irysname/irysname/lib"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

// NewListCommand creates a command that lists registered usernames
func NewListCommand(f Factory, ioStreams ioes.IOStreams) *cobra.Command {
	o := &ListOptions{IOStreams: ioStreams}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "show registered usernames, newest first",
		Long: `List shows registrations from the registry, newest first. The same
username may appear more than once if it was registered concurrently.`,
		Example: `  # show the last 10 registrations:
  $ irysname list --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(f, args); err != nil {
				return err
			}
			return o.Run()
		},
	}

	cmd.Flags().IntVar(&o.Limit, "limit", lib.DefaultListLimit, "maximum number of usernames to show")
	cmd.Flags().StringVar(&o.Format, "format", "", "output format, only json is supported")

	return cmd
}

// ListOptions encapsulates state for the list command
type ListOptions struct {
	ioes.IOStreams

	Limit  int
	Format string

	RegistryMethods *lib.RegistryMethods
}

// Complete adds any missing configuration that can only be added just before calling Run
func (o *ListOptions) Complete(f Factory, args []string) error {
	inst, err := f.Instance()
	if err != nil {
		return err
	}
	o.RegistryMethods = inst.Registry()
	return nil
}

// Run executes the list command
func (o *ListOptions) Run() error {
	recs, err := o.RegistryMethods.List(context.TODO(), o.Limit)
	if err != nil {
		return err
	}

	switch o.Format {
	case "json":
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Out, string(data))
		return nil
	case "":
	default:
		return fmt.Errorf("unknown format %q", o.Format)
	}

	if len(recs) == 0 {
		printInfo(o.Out, "no usernames registered yet")
		return nil
	}

	items := make([]fmt.Stringer, len(recs))
	for i, r := range recs {
		items[i] = recordStringer(*r)
	}
	return printItems(o.Out, items)
}
