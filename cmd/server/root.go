package main

import (
	"fmt"
	"os"

	"stackit/internal/config"
	"stackit/internal/db"
	"stackit/internal/repository"
	"stackit/internal/services"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stackit",
	Short: "StackIt Q&A forum server",
	Long: `StackIt is a small question and answer forum.

Running it without a subcommand starts the web server.`,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initDBCmd)
	rootCmd.AddCommand(makeAdminCmd)
	rootCmd.AddCommand(listUsersCmd)
}

// openUserService connects to the configured database for the admin commands.
func openUserService(cfg *config.Config) (*services.UserService, error) {
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return services.NewUserService(repository.New(conn)), nil
}
