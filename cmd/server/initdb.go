package main

import (
	"stackit/internal/config"
	"stackit/internal/db"

	"github.com/spf13/cobra"
)

var seedFile string

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create tables and seed default tags",
	Long: `Run the schema migration and insert any missing default tags.

Tags come from --tags (a YAML list of name/color pairs), TAGS_FILE, or the
built-in defaults. Running it again only adds tags that are still missing.`,
	Args: cobra.NoArgs,
	RunE: runInitDB,
}

func init() {
	initDBCmd.Flags().StringVar(&seedFile, "tags", "", "YAML file with the tags to seed")
}

func runInitDB(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	path := seedFile
	if path == "" {
		path = cfg.TagsFile
	}
	tags, err := db.LoadTagSeed(path)
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := db.Bootstrap(conn, tags); err != nil {
		return err
	}

	printSuccess(cmd.OutOrStdout(), "Database initialized (%d tags checked)", len(tags))
	return nil
}
