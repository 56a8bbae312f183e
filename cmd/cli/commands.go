package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	sport    string
	grade    string
	unsold   bool
	dryRun   bool
	output   string
	rulesSet string
)

func init() {
	rootCmd.AddCommand(healthCmd, metricsCmd, loginCmd)
	rootCmd.AddCommand(ledgerCmd, summaryCmd, playersCmd, teamCmd, currentCmd, activityCmd, rulesCmd)
	rootCmd.AddCommand(spinCmd, searchCmd, passCmd, sellCmd, captainCmd, revertCmd)
	rootCmd.AddCommand(importCmd, exportCmd, resetCmd, standingsCmd)

	for _, cmd := range []*cobra.Command{spinCmd, playersCmd} {
		cmd.Flags().StringVar(&sport, "sport", "", "Limit to a sport (Cricket, Badminton, TT)")
		cmd.Flags().StringVar(&grade, "grade", "", "Limit to a grade (A, B, C)")
	}
	playersCmd.Flags().BoolVar(&unsold, "unsold", false, "Only list players still in the pool")
	for _, cmd := range []*cobra.Command{sellCmd, standingsCmd} {
		cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without committing or posting")
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Write the CSV to a file instead of stdout")
	rulesCmd.Flags().StringVar(&rulesSet, "set", "", "Replace the rules with this JSON file")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <passphrase>",
	Short: "Exchange the admin passphrase for a session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/admin/login", map[string]string{"passphrase": args[0]})
	},
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show every team's spend, reserve and max bid",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/ledger")
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the auction headline numbers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/summary")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if unsold {
			q.Set("unsold", "true")
			q.Set("sport", sport)
			q.Set("grade", grade)
		}
		return performGetRequest("/players?" + q.Encode())
	},
}

var teamCmd = &cobra.Command{
	Use:   "team <name>",
	Short: "Show a team's squad and purse",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/teams/" + url.PathEscape(args[0]))
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the player on the block",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/auction/current")
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the recent activity log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/activity")
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show or replace the tournament rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rulesSet == "" {
			return performGetRequest("/rules")
		}
		data, err := os.ReadFile(rulesSet)
		if err != nil {
			return fmt.Errorf("failed to read rules: %w", err)
		}
		return performRequest(http.MethodPut, "/rules", "application/json", bytes.NewReader(data))
	},
}

var spinCmd = &cobra.Command{
	Use:   "spin",
	Short: "Draw a random unsold player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/auction/spin", map[string]string{"sport": sport, "grade": grade})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Put a player on the block by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/auction/search", map[string]string{"name": args[0]})
	},
}

var passCmd = &cobra.Command{
	Use:   "pass",
	Short: "Return the player on the block to the pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/auction/pass", "", nil)
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell <player-id> <team> <price>",
	Short: "Sell a player to a team",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, price, err := parseIDAndPrice(args[0], args[2])
		if err != nil {
			return err
		}
		endpoint := "/auction/sell"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performJSONRequest(http.MethodPost, endpoint, map[string]any{"player_id": id, "team": args[1], "price": price})
	},
}

var captainCmd = &cobra.Command{
	Use:   "captain <player-id> <team> <sport> <price>",
	Short: "Assign a captain to a team outside the bidding",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, price, err := parseIDAndPrice(args[0], args[3])
		if err != nil {
			return err
		}
		return performJSONRequest(http.MethodPost, "/auction/captain", map[string]any{"player_id": id, "team": args[1], "sport": args[2], "price": price})
	},
}

var revertCmd = &cobra.Command{
	Use:   "revert <player-id>",
	Short: "Undo a sale and return the player to the pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid player id %q", args[0])
		}
		return performJSONRequest(http.MethodPost, "/auction/revert", map[string]any{"player_id": id})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Replace the player registry from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		return performRequest(http.MethodPost, "/players/import", "text/csv", f)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the auction results as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := do(http.MethodGet, "/players/export", "", nil)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("export failed with status %d", resp.StatusCode)
		}
		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		_, err = io.Copy(w, resp.Body)
		return err
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe every player and sale",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/reset", "", nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Post the current standings to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/standings/notify"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(http.MethodPost, endpoint, "", nil)
	},
}

func parseIDAndPrice(rawID, rawPrice string) (int, int, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid player id %q", rawID)
	}
	price, err := strconv.Atoi(rawPrice)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid price %q", rawPrice)
	}
	return id, price, nil
}

func do(method, endpoint, contentType string, body io.Reader) (*http.Response, error) {
	url := host + endpoint
	fmt.Fprintf(os.Stderr, "Making request to %s\n", url)

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	return resp, nil
}

func performRequest(method, endpoint, contentType string, body io.Reader) error {
	resp, err := do(method, endpoint, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(data))

	return nil
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, "", nil)
}

func performJSONRequest(method, endpoint string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return performRequest(method, endpoint, "application/json", bytes.NewReader(data))
}
