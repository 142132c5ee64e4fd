package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Password-gated administration commands",
		Long: `Administration commands for the game. All of these require the admin
password, via --admin-password or SCRAMBLEDASH_ADMIN_PASSWORD.`,
	}

	cmd.AddCommand(newAdminPlayersCmd())
	cmd.AddCommand(newAdminResetCmd())
	cmd.AddCommand(newAdminClearCmd())
	cmd.AddCommand(newAdminExportCmd())

	return cmd
}

func newAdminPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "Show the leaderboard with aggregate stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AdminPlayers
			if err := client.Get("/api/v1/admin/players", &result); err != nil {
				return err
			}

			if cfg.Output == "json" {
				return outputJSON(result)
			}
			if err := outputPlayers(result.Players); err != nil {
				return err
			}
			fmt.Println()
			return outputStats(result.Stats)
		},
	}
}

func newAdminResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset every player's score to zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm("Reset all scores to zero?") {
				fmt.Println("Aborted.")
				return nil
			}

			body := map[string]string{"action": "reset"}
			if err := client.Put("/api/v1/players", body, nil); err != nil {
				return err
			}
			fmt.Println("All scores reset.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newAdminClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every player from the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm("Remove ALL players from the leaderboard?") {
				fmt.Println("Aborted.")
				return nil
			}

			body := map[string]string{"action": "clear"}
			if err := client.Put("/api/v1/players", body, nil); err != nil {
				return err
			}
			fmt.Println("Leaderboard cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newAdminExportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the leaderboard as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			var players []Player
			if err := client.Get("/api/v1/admin/export", &players); err != nil {
				return err
			}

			if outFile == "" {
				return outputJSON(players)
			}

			data, err := json.MarshalIndent(players, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outFile, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Printf("Exported %d players to %s\n", len(players), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Write the export to a file instead of stdout")

	return cmd
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	_, _ = fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}
