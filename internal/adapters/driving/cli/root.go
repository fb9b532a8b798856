// Package cli implements the scenechat command-line interface.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scenechat/scenechat/internal/config"
	"github.com/scenechat/scenechat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagConfig  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scenechat",
	Short: "Chat with characters grounded in a reference script",
	Long: `Scenechat is a retrieval-augmented persona chat engine.

Index a reference script once, then chat with characters whose replies
are grounded in the nearest script excerpt. Serve the chat API over
HTTP or talk to a character directly in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// A .env in the working directory supplies OPENAI_API_KEY
		// during development. Missing is fine.
		_ = godotenv.Load()

		logger.SetVerbose(flagVerbose)

		var err error
		if flagConfig != "" {
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			logger.Debug("Loaded config from %s", flagConfig)
			return nil
		}

		var path string
		cfg, path, err = config.LoadDefault()
		if err != nil {
			return err
		}
		if path != "" {
			logger.Debug("Loaded config from %s", path)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
