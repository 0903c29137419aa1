package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/projector"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and seed the built-in layouts",
	Long: `Create or update the database schema, then upsert a layout row for
each built-in layout variant. Requires CVBUILDER_DATABASE_URL (or DATABASE_URL).`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	dsn := os.Getenv("CVBUILDER_DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return fmt.Errorf("CVBUILDER_DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println("Schema migrated")

	for _, v := range projector.Variants() {
		if _, err := database.UpsertLayout(ctx, v.ID(), v.Name(), v.Description(), ""); err != nil {
			return fmt.Errorf("failed to seed layout %s: %w", v.ID(), err)
		}
		fmt.Printf("Seeded layout %s\n", v.ID())
	}

	return nil
}
