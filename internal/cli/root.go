// Package cli defines the cobra command tree for estatesync.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var flagEnvFile string

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "estatesync",
		Short:         "Property management data service",
		Long:          "Keeps buildings, properties, tenants, contracts, rent payments, tasks and activities in sync with a document store and serves them over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(flagEnvFile)
		},
	}

	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file to load before reading ESTATESYNC_* variables")

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
	)

	return root
}

// loadEnvFile loads path into the environment. A missing file is ignored;
// variables already set win over the file.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
