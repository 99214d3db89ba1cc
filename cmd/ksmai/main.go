package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kickstartmyai/kickstartmyai/internal/config"
	"github.com/kickstartmyai/kickstartmyai/internal/harness"
	"github.com/kickstartmyai/kickstartmyai/internal/logger"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ksmai",
	Short: "KickStartMyAI - FastAPI project generator and template validator",
	Long: `KickStartMyAI scaffolds FastAPI applications pre-wired with AI provider
integrations, and validates the template tree across a matrix of
configurations before anything ships to end users.`,
	SilenceErrors: true, // We'll handle error printing ourselves
	SilenceUsage:  true, // We'll handle usage printing ourselves
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		if debugFlag {
			cfg.Debug = true
		}
		logger.Init(cfg)
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: config.yml in current directory)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

var debugFlag bool

// Exit codes: 0 all configurations pass, 1 at least one configuration
// failed validation, 2 the harness itself broke. CI uses the distinction
// to tell "the template is broken" apart from "the tool is broken".
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, harness.ErrValidationFailed) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
