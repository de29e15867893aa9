package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	fixFlag    bool
	yesConfirm bool
	jsonFlag   bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the catalog cache",
	Long:  `Checks the catalog schema, the playlist bucket, uploaded playlists and the cached catalog rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "")
	},
}

var schemaCheckCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the catalog tables against the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "schema")
	},
}

var bucketCheckCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Check and create the playlist bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "bucket")
	},
}

var playlistsCheckCmd = &cobra.Command{
	Use:   "playlists",
	Short: "Check that uploaded playlists still exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "playlists")
	},
}

var catalogCheckCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check and repair cached catalog rows",
	Long: `Finds accounts without saved categories and channel rows whose category is gone.
With --fix the dangling channel rows are deleted after confirmation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "catalog")
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCheckCmd, bucketCheckCmd, playlistsCheckCmd, catalogCheckCmd)

	bucketCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when missing")
	catalogCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Delete dangling channel rows")
	catalogCheckCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	playlistsCheckCmd.Flags().BoolVar(&jsonFlag, "json", false, "Save missing playlists as a JSON report")
}

func runIntegrityChecks(ctx context.Context, only string) error {
	cfg, logg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logg.Sync()

	// Connect to Database (Optional, storage checks still run without it)
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	svc := integrity.NewService(newStorage(cfg, logg), cfg.Storage.Bucket, cfg.Storage.Region, db, logg)
	run := func(name string) bool { return only == "" || only == name }

	if run("schema") && db != nil {
		logg.Info("Checking catalog schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Schema is intact.")
		} else {
			for table, tbl := range report.Tables {
				if tbl.Status != "ok" {
					logg.Warn("Table does not match model",
						zap.String("table", table),
						zap.String("status", tbl.Status),
						zap.Strings("missing_columns", tbl.MissingColumns))
				}
			}
			logg.Info("Run the migrate command to create missing tables and columns.")
		}
	}

	if run("bucket") {
		logg.Info("Checking playlist bucket...")
		report, err := svc.CheckBucket(ctx)
		if err != nil {
			return fmt.Errorf("bucket check failed: %w", err)
		}
		switch {
		case report.Exists:
			logg.Info("Playlist bucket exists.", zap.String("bucket", report.Bucket))
		case only == "bucket" && fixFlag:
			if err := svc.FixBucket(ctx); err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
		default:
			logg.Warn("Playlist bucket missing", zap.String("bucket", report.Bucket))
			logg.Info("Run with --fix to create it.")
		}
	}

	if run("playlists") && db != nil {
		logg.Info("Checking uploaded playlists...")
		missing, err := svc.CheckPlaylists(ctx)
		if err != nil {
			return fmt.Errorf("playlist check failed: %w", err)
		}
		if len(missing) == 0 {
			logg.Info("Uploaded playlists are present.")
		}
		for _, m := range missing {
			logg.Warn("Playlist missing", zap.String("account", m.AccountID), zap.String("locator", m.Locator), zap.String("reason", m.Reason))
		}
		if jsonFlag && len(missing) > 0 {
			filename := fmt.Sprintf("integrity_playlists_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(missing, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename))
		}
	}

	if run("catalog") && db != nil {
		logg.Info("Checking cached catalog...")
		report, err := svc.CheckCatalog(ctx)
		if err != nil {
			return fmt.Errorf("catalog check failed: %w", err)
		}
		if len(report.EmptyAccounts) > 0 {
			logg.Warn("Accounts without categories", zap.Strings("accounts", report.EmptyAccounts))
		}
		if report.DanglingChannels == 0 {
			logg.Info("No dangling channels.")
		} else {
			logg.Warn("Dangling channels detected", zap.Int64("count", report.DanglingChannels))
			if only == "catalog" && fixFlag {
				if !confirmDestructiveAction() {
					logg.Warn("Operation cancelled by user. No changes were made.")
					return nil
				}
				if _, err := svc.FixCatalog(ctx); err != nil {
					return err
				}
			} else {
				logg.Info("Run with --fix to delete them.")
			}
		}
	}

	if db == nil && only != "bucket" {
		return fmt.Errorf("database checks skipped: no database connection")
	}
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
