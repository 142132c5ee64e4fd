package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

// Player is a leaderboard entry as returned by the API
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// UsernameCheck is the result of a name availability query
type UsernameCheck struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Session is a device's game session as returned by the API
type Session struct {
	DeviceID      string `json:"deviceId"`
	UserID        string `json:"userId"`
	PlayerName    string `json:"playerName"`
	GameCompleted bool   `json:"gameCompleted"`
	Score         int    `json:"score"`
	LastPlayed    string `json:"lastPlayed"`
}

// Stats summarises the leaderboard for admin views
type Stats struct {
	TotalPlayers int     `json:"totalPlayers"`
	TotalScore   int     `json:"totalScore"`
	AverageScore float64 `json:"averageScore"`
	TopScore     int     `json:"topScore"`
}

// AdminPlayers is the admin leaderboard view with stats
type AdminPlayers struct {
	Players []Player `json:"players"`
	Stats   Stats    `json:"stats"`
}

// outputJSON prints any value as indented JSON
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputPlayers prints a leaderboard table
func outputPlayers(players []Player) error {
	if cfg.Output == "json" {
		return outputJSON(players)
	}

	if len(players) == 0 {
		fmt.Println("No players yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tSCORE")
	for i, p := range players {
		fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, p.Name, p.Score)
	}
	return w.Flush()
}

// outputStats prints leaderboard statistics
func outputStats(stats Stats) error {
	if cfg.Output == "json" {
		return outputJSON(stats)
	}

	fmt.Printf("Players:       %d\n", stats.TotalPlayers)
	fmt.Printf("Total score:   %d\n", stats.TotalScore)
	fmt.Printf("Average score: %.2f\n", stats.AverageScore)
	fmt.Printf("Top score:     %d\n", stats.TopScore)
	return nil
}

// outputSession prints a session, or a placeholder when none exists
func outputSession(session *Session) error {
	if cfg.Output == "json" {
		return outputJSON(session)
	}

	if session == nil {
		fmt.Println("No session found.")
		return nil
	}

	fmt.Printf("Device:     %s\n", session.DeviceID)
	fmt.Printf("User:       %s\n", session.UserID)
	if session.PlayerName != "" {
		fmt.Printf("Player:     %s\n", session.PlayerName)
	}
	fmt.Printf("Completed:  %t\n", session.GameCompleted)
	fmt.Printf("Score:      %d\n", session.Score)
	if session.LastPlayed != "" {
		fmt.Printf("Last play:  %s\n", session.LastPlayed)
	}
	return nil
}
