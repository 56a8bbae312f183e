package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host  string
	token string
)

var rootCmd = &cobra.Command{
	Use:   "auction-cli",
	Short: "A CLI to interact with the player auction server",
	Long: `A command-line interface for running the player auction from a terminal:
spin the wheel, record sales and inspect the ledger.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("AUCTION_TOKEN"), "Admin session token (defaults to $AUCTION_TOKEN)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
