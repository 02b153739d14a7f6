package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/irysname/irysname/lib"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

// NewInfoCommand creates a command that summarizes the local setup
func NewInfoCommand(f Factory, ioStreams ioes.IOStreams) *cobra.Command {
	o := &InfoOptions{IOStreams: ioStreams}
	cmd := &cobra.Command{
		Use:   "info",
		Short: "show backend status, upload identity & balance",
		Long: `Info prints the configured backend, its health, the address of the upload
identity and, for the gateway backend, the identity's balance as reported by
the uploader service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(f, args); err != nil {
				return err
			}
			return o.Run()
		},
	}

	return cmd
}

// InfoOptions encapsulates state for the info command
type InfoOptions struct {
	ioes.IOStreams

	inst            *lib.Instance
	RegistryMethods *lib.RegistryMethods
}

// Complete adds any missing configuration that can only be added just before calling Run
func (o *InfoOptions) Complete(f Factory, args []string) (err error) {
	if o.inst, err = f.Instance(); err != nil {
		return err
	}
	o.RegistryMethods = o.inst.Registry()
	return nil
}

// Run executes the info command
func (o *InfoOptions) Run() error {
	ctx := context.TODO()
	fmt.Fprint(o.Out, o.inst.Config().SummaryString())

	health, err := o.RegistryMethods.Health(ctx)
	if err != nil {
		return err
	}
	if health.Status == "ok" {
		printSuccess(o.Out, "status:\t\t%s", health.Status)
	} else {
		printWarning(o.Out, "status:\t\t%s", health.Status)
	}
	if health.Uploader == "" {
		printWarning(o.Out, "no upload identity configured, set PRIVATE_KEY or uploader.privatekey")
	}

	bal, err := o.RegistryMethods.Balance(ctx)
	if errors.Is(err, lib.ErrNoBalance) {
		return nil
	} else if err != nil {
		printWarning(o.Out, "balance unavailable: %s", err)
		return nil
	}
	fmt.Fprintf(o.Out, "balance:\t%s\n", bal.Balance)
	return nil
}
