package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/repository"
	"go-inventory-qr/internal/service"
	"go-inventory-qr/pkg/config"
	"go-inventory-qr/pkg/database"
	"go-inventory-qr/pkg/jwt"
	"go-inventory-qr/pkg/logger"
)

// connectDB loads config and opens the database as it is.
func connectDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.DB, logger.Nop())
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// bootDB is connectDB followed by a schema migration.
func bootDB() (*config.Config, *gorm.DB, error) {
	cfg, db, err := connectDB()
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// inventoryctl migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootDB()
			if err != nil {
				return err
			}
			defer closeDB(db)
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}
}

// inventoryctl seed
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default categories and the first administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			boot := service.NewBootstrapService(repository.NewCategoryRepo(db), repository.NewUserRepo(db), cfg.Bootstrap, logger.Nop())
			result, err := boot.Run(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Categories created: %d\n", result.CategoriesCreated)
			if result.AdminCreated {
				fmt.Fprintf(out, "Administrator created: %s\n", cfg.Bootstrap.AdminUsername)
			} else {
				fmt.Fprintln(out, "Administrator already present.")
			}
			return nil
		},
	}
}

// inventoryctl tables
func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables found in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connectDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			tables, err := db.Migrator().GetTables()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tables) == 0 {
				fmt.Fprintln(out, "No tables found.")
				return nil
			}
			fmt.Fprintln(out, "Tables found in the database:")
			for _, t := range tables {
				fmt.Fprintln(out, t)
			}
			return nil
		},
	}
}

// inventoryctl reset-password <username> <password>
func newResetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <username> <password>",
		Short: "Set a new password for an account and end its sessions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connectDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration())
			auth := service.NewAuthService(repository.NewUserRepo(db), tokens, logger.Nop())
			if err := auth.ResetPassword(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password for %s has been reset.\n", args[0])
			return nil
		},
	}
}
