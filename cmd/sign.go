package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"syscall"

	"github.com/irysname/irysname/registry"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
)

// NewSignCommand creates a command that signs a registration message
func NewSignCommand(f Factory, ioStreams ioes.IOStreams) *cobra.Command {
	o := &SignOptions{IOStreams: ioStreams}
	cmd := &cobra.Command{
		Use:   "sign USERNAME",
		Short: "sign a registration message with a private key",
		Long: `Sign produces the signature a wallet would for registering USERNAME:
a personal-message signature of "Register username: USERNAME". The username
is signed exactly as given, case included.

The private key is read from a prompt unless --key is given. Keys never leave
this machine.`,
		Example: `  # sign for alice_01, prompting for a key:
  $ irysname sign alice_01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(f, args); err != nil {
				return err
			}
			return o.Run()
		},
	}

	cmd.Flags().StringVar(&o.Key, "key", "", "hex-encoded private key")

	return cmd
}

// SignOptions encapsulates state for the sign command
type SignOptions struct {
	ioes.IOStreams

	Username string
	Key      string
}

// Complete adds any missing configuration that can only be added just before calling Run
func (o *SignOptions) Complete(f Factory, args []string) (err error) {
	o.Username = args[0]
	if o.Key == "" {
		o.Key, err = promptForKey(o.IOStreams)
	}
	return err
}

// Run executes the sign command
func (o *SignOptions) Run() error {
	key, err := registry.ParsePrivateKey(o.Key)
	if err != nil {
		return err
	}
	sig, err := registry.SignMessage(registry.RegistrationMessage(o.Username), key)
	if err != nil {
		return err
	}
	fmt.Fprintf(o.Out, "message:   %s\n", registry.RegistrationMessage(o.Username))
	fmt.Fprintf(o.Out, "address:   %s\n", registry.KeyAddress(key))
	fmt.Fprintf(o.Out, "signature: %s\n", sig)
	return nil
}

// promptForKey reads a private key without echoing it to the screen
func promptForKey(streams ioes.IOStreams) (string, error) {
	io.WriteString(streams.ErrOut, "private key: ")
	keyBytes, err := terminal.ReadPassword(int(syscall.Stdin))
	io.WriteString(streams.ErrOut, "\n")
	if err != nil {
		// Reading from string buffer fails with one of these errors, depending on operating system
		// "inappropriate ioctl for device"
		// "operation not supported by device"
		if strings.Contains(err.Error(), "device") {
			keyBytes, err = ioutil.ReadAll(streams.In)
		} else {
			return "", err
		}
	}
	return strings.TrimSpace(string(keyBytes)), nil
}
