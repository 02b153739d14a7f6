package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/irysname/irysname/lib"
	"github.com/irysname/irysname/registry"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

// NewRegisterCommand creates a command that claims a username
func NewRegisterCommand(f Factory, ioStreams ioes.IOStreams) *cobra.Command {
	o := &RegisterOptions{IOStreams: ioStreams}
	cmd := &cobra.Command{
		Use:   "register USERNAME",
		Short: "claim a username for an address",
		Long: `Register claims USERNAME for a wallet address. Ownership is proven with
a personal-message signature of "Register username: USERNAME", which can come
from any wallet (see ` + "`irysname sign`" + `).

Provide both --address and --signature to submit a signature made elsewhere,
or --sign to sign locally with a private key read from a prompt or --key.`,
		Example: `  # register with a wallet signature:
  $ irysname register alice_01 --address 0xf39F... --signature 0x8c1d...

  # sign locally & register, attaching metadata:
  $ irysname register alice_01 --sign --meta bio="hello world"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(f, args); err != nil {
				return err
			}
			return o.Run()
		},
	}

	cmd.Flags().StringVar(&o.Address, "address", "", "owning wallet address")
	cmd.Flags().StringVar(&o.Signature, "signature", "", "hex-encoded registration signature")
	cmd.Flags().BoolVar(&o.Sign, "sign", false, "sign locally with a private key")
	cmd.Flags().StringVar(&o.Key, "key", "", "hex-encoded private key, implies --sign")
	cmd.Flags().StringSliceVar(&o.Meta, "meta", nil, "metadata as key=value pairs")

	return cmd
}

// RegisterOptions encapsulates state for the register command
type RegisterOptions struct {
	ioes.IOStreams

	Username  string
	Address   string
	Signature string
	Sign      bool
	Key       string
	Meta      []string

	RegistryMethods *lib.RegistryMethods
}

// Complete adds any missing configuration that can only be added just before calling Run
func (o *RegisterOptions) Complete(f Factory, args []string) (err error) {
	o.Username = args[0]

	if o.Sign || o.Key != "" {
		if o.Key == "" {
			if o.Key, err = promptForKey(o.IOStreams); err != nil {
				return err
			}
		}
		key, err := registry.ParsePrivateKey(o.Key)
		if err != nil {
			return err
		}
		if o.Signature, err = registry.SignMessage(registry.RegistrationMessage(o.Username), key); err != nil {
			return err
		}
		o.Address = registry.KeyAddress(key)
	}

	if o.Address == "" || o.Signature == "" {
		return fmt.Errorf("either --sign, or both --address and --signature are required")
	}

	inst, err := f.Instance()
	if err != nil {
		return err
	}
	o.RegistryMethods = inst.Registry()
	return nil
}

// Run executes the register command
func (o *RegisterOptions) Run() error {
	md, err := parseMeta(o.Meta)
	if err != nil {
		return err
	}

	res, err := o.RegistryMethods.Register(context.TODO(), &lib.RegisterParams{
		Username:  o.Username,
		Address:   o.Address,
		Signature: o.Signature,
		Metadata:  md,
	})
	if err != nil {
		return err
	}

	printSuccess(o.Out, res.Message)
	fmt.Fprintf(o.Out, "owner:    %s\n", res.Owner)
	fmt.Fprintf(o.Out, "tx:       %s\n", res.TxID)
	fmt.Fprintf(o.Out, "explorer: %s\n", res.ExplorerURL)
	return nil
}

// parseMeta turns key=value pairs into a metadata map
func parseMeta(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	md := map[string]interface{}{}
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, fmt.Errorf("invalid metadata %q, expected key=value", pair)
		}
		md[kv[0]] = kv[1]
	}
	return md, nil
}
