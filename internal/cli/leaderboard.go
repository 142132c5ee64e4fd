package cli

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"lb", "players"},
		Short:   "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				return showLeaderboard()
			}

			// Redraw once a second until interrupted
			for {
				fmt.Print("\033[H\033[2J")
				if err := showLeaderboard(); err != nil {
					return err
				}
				select {
				case <-cmd.Context().Done():
					return nil
				case <-time.After(time.Second):
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refresh the leaderboard every second")

	return cmd
}

func showLeaderboard() error {
	var players []Player
	if err := client.Get("/api/v1/players", &players); err != nil {
		return err
	}
	return outputPlayers(players)
}

func newCheckNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-name <name>",
		Short: "Check whether a player name is available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/players/check-username?name=" + url.QueryEscape(args[0])

			var result UsernameCheck
			if err := client.Get(path, &result); err != nil {
				return err
			}

			if cfg.Output == "json" {
				return outputJSON(result)
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}
