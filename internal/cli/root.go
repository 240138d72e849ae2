// Package cli provides the command-line interface for chatkit.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/setinbound/chatkit/internal/chat"
	"github.com/setinbound/chatkit/internal/config"
	"github.com/setinbound/chatkit/internal/metrics"
	"github.com/setinbound/chatkit/internal/session"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	cfgFile    string
	backendURL string
	verbose    bool

	// Global config and logger
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chatkit",
	Short: "Terminal client for the setinbound chat widget",
	Long: `Chatkit is the terminal client for the setinbound.com conversational
widget. It keeps an in-memory transcript, talks to the chat backend over
its /proxy/chat contract and renders replies with clickable links.

Run 'chatkit chat' for the interactive widget or 'chatkit send' for a
one-shot message.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if cfgFile != "" {
			if err := cfg.ApplyFile(cfgFile); err != nil {
				return err
			}
		}
		if backendURL != "" {
			cfg.BackendURL = backendURL
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// newSession assembles a widget session from the loaded configuration.
func newSession() *chat.Session {
	ids := session.NewStore(cfg.SessionFile, logger)
	client := chat.NewClient(cfg.BackendURL, chat.Source{
		Platform: cfg.Platform,
		Contact:  cfg.Contact,
	})

	return chat.NewSession(
		chat.NewStore(),
		client,
		chat.SessionConfig{
			SessionID: ids.GetOrCreate(),
			Timeout:   cfg.RequestTimeout,
		},
		logger,
		metrics.NewCollector(),
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "chat backend URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(sessionCmd)
}
