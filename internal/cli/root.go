package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "scrambledash",
		Short: "CLI tool for the scrambledash game API",
		Long: `scrambledash is a CLI tool for interacting with the scrambledash JSON API.

It supports viewing the leaderboard, checking name availability, inspecting
game sessions, and the password-gated admin operations (reset, clear, export).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.AdminPassword)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SCRAMBLEDASH_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Admin password (env: SCRAMBLEDASH_ADMIN_PASSWORD)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newCheckNameCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
