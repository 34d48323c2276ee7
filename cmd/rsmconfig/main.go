package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rsmconfig/internal/config"
	"rsmconfig/internal/container"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "rsmconfig",
		Short:         "Validate and normalize scoring experiment configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("context", "c", "", "Tool context (rsmtool, rsmeval, rsmcompare, rsmsummarize, rsmpredict, rsmxval, rsmexplain)")

	rootCmd.AddCommand(
		newValidateCmd(),
		newShowCmd(),
		newGenerateCmd(),
		newObjectivesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads settings and wires the container for a command
func setup() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return container.New(cfg)
}
