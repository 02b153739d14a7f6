package cmd

import (
	"context"
	"fmt"

	"github.com/irysname/irysname/lib"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates a new `irysname config` cobra command
// config represents commands that read & modify configuration settings
func NewConfigCommand(f Factory, ioStreams ioes.IOStreams) *cobra.Command {
	o := ConfigOptions{IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "get and set local configuration information",
		Long: `Config encapsulates all settings that control the behaviour of irysname.
This includes the API port, where records are stored, the upload identity,
tracing & logging levels.

Configuration is stored as a .yaml file kept at $IRYSNAME_PATH, or provided at
CLI runtime via command a line argument. Environment variables take precedence
over the stored file.`,
		Example: `  # get your upload identity key:
  $ irysname config get uploader.privatekey --with-private-keys

  # use the in-memory backend:
  $ irysname config set registry.backend mem`,
	}

	get := &cobra.Command{
		Use:   "get [FIELD]",
		Short: "get configuration settings",
		Long: `Get a configuration value, or the whole config when no field is given.
Private keys are removed from output unless --with-private-keys is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(f); err != nil {
				return err
			}
			return o.Get(args)
		},
	}

	set := &cobra.Command{
		Use:   "set FIELD VALUE [FIELD VALUE ...]",
		Short: "set configuration options",
		Long: `Set one or more config values. Values are validated before the config
file is written.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("wrong number of arguments. arguments must be in the form: [path value]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(f); err != nil {
				return err
			}
			return o.Set(args)
		},
	}

	get.Flags().BoolVar(&o.WithPrivateKeys, "with-private-keys", false, "include private keys in export")
	get.Flags().BoolVarP(&o.Concise, "concise", "c", false, "print output without indentation, only applies to json format")
	get.Flags().StringVarP(&o.Format, "format", "", "yaml", "data format for export. either json or yaml")

	cmd.AddCommand(get, set)
	return cmd
}

// ConfigOptions encapsulates state for the config command
type ConfigOptions struct {
	ioes.IOStreams

	Format          string
	WithPrivateKeys bool
	Concise         bool

	ConfigMethods *lib.ConfigMethods
}

// Complete adds any missing configuration that can only be added just before calling Run
func (o *ConfigOptions) Complete(f Factory) error {
	inst, err := f.Instance()
	if err != nil {
		return err
	}
	o.ConfigMethods = inst.ConfigMethods()
	return nil
}

// Get a configuration option
func (o *ConfigOptions) Get(args []string) error {
	params := &lib.GetConfigParams{
		WithPrivateKey: o.WithPrivateKeys,
		Format:         o.Format,
		Concise:        o.Concise,
	}
	if len(args) == 1 {
		params.Field = args[0]
	}

	data, err := o.ConfigMethods.GetConfig(context.TODO(), params)
	if err != nil {
		return err
	}
	fmt.Fprintln(o.Out, string(data))
	return nil
}

// Set a configuration option
func (o *ConfigOptions) Set(args []string) error {
	for i := 0; i < len(args)-1; i = i + 2 {
		p := &lib.SetConfigParams{Field: args[i], Value: args[i+1]}
		if err := o.ConfigMethods.SetConfig(context.TODO(), p); err != nil {
			return err
		}
	}
	printSuccess(o.ErrOut, "config updated")
	return nil
}
