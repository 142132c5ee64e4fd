package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "session <device-id>",
		Short: "Show the game session for a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("deviceId", args[0])
			if userID != "" {
				q.Set("userId", userID)
			}

			var session *Session
			if err := client.Get("/api/v1/sessions?"+q.Encode(), &session); err != nil {
				return err
			}
			return outputSession(session)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Restrict to a specific user ID")

	return cmd
}
