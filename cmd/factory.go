package cmd

import (
	"os"
	"path/filepath"

	"github.com/irysname/irysname/config"
	"github.com/irysname/irysname/lib"
	"github.com/mitchellh/go-homedir"
)

// Factory is an interface for providing required structures to cobra commands
// It's main implementation is IrysnameOptions
type Factory interface {
	Instance() (*lib.Instance, error)
	Config() (*config.Config, error)

	// path to irysname data directory
	RepoPath() string
	Init() error
}

// StandardRepoPath returns the irysname path based on the IRYSNAME_PATH
// environment variable falling back to the default: $HOME/.irysname
func StandardRepoPath() string {
	repoPath := os.Getenv("IRYSNAME_PATH")
	if repoPath == "" {
		home, err := homedir.Dir()
		if err != nil {
			panic(err)
		}
		repoPath = filepath.Join(home, ".irysname")
	}

	return repoPath
}

// ConfigPath is the location of the config file within a repo path
func ConfigPath(repoPath string) string {
	return filepath.Join(repoPath, "config.yaml")
}
