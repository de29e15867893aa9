package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reload command
	reloadAccountID string
	reloadAll       bool
	reloadWorkers   int
	reloadQuiet     bool
)

// reloadCmd refreshes cached catalogs from their backends.
var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload cached catalogs from their backends",
	Long: `Fetches categories and channels from the backend of one or every account
and replaces the cached catalog. A failed reload leaves the previous cache in place.

Examples:
  # Reload one account and stream its progress
  reload --account 0b7c...

  # Reload every account on 8 workers
  reload --all --workers 8`,
	RunE: runReload,
}

func init() {
	reloadCmd.Flags().StringVar(&reloadAccountID, "account", "", "Account id to reload")
	reloadCmd.Flags().BoolVar(&reloadAll, "all", false, "Reload every account")
	reloadCmd.Flags().IntVar(&reloadWorkers, "workers", 0, "Worker pool size for --all (defaults to SYNC_WORKERS)")
	reloadCmd.Flags().BoolVar(&reloadQuiet, "quiet", false, "Do not print progress lines")
	reloadCmd.MarkFlagsMutuallyExclusive("account", "all")
	reloadCmd.MarkFlagsOneRequired("account", "all")

	RootCmd.AddCommand(reloadCmd)
}

func runReload(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, l, err := loadConfig()
	if err != nil {
		return err
	}
	defer l.Sync()

	if reloadWorkers > 0 {
		cfg.Sync.Workers = reloadWorkers
	}

	rt, err := newRuntime(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer rt.Close()

	var progress reconcile.Progress
	if !reloadQuiet {
		progress = func(line string) { fmt.Println(line) }
	}

	if reloadAccountID != "" {
		result, err := rt.service.Reload(ctx, reloadAccountID, progress)
		if result != nil {
			printReloadResult(l, result)
		}
		return err
	}

	return reloadEveryAccount(ctx, rt, l, progress)
}

func reloadEveryAccount(ctx context.Context, rt *runtime, l *zap.Logger, progress reconcile.Progress) error {
	l.Info("Reloading all accounts", zap.Int("workers", rt.cfg.Sync.Workers))

	results, err := rt.service.ReloadAll(ctx, progress)
	if err != nil {
		return err
	}

	var failed, critical, skipped int
	for _, result := range results {
		printReloadResult(l, result)
		switch {
		case result.Skipped:
			skipped++
		case result.Err != nil:
			failed++
		case result.CriticalFailure:
			critical++
		}
	}

	l.Info("Reload report",
		zap.Int("accounts", len(results)),
		zap.Int("failed", failed),
		zap.Int("critical", critical),
		zap.Int("skipped", skipped),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d reloads failed", failed, len(results))
	}
	return nil
}

// printReloadResult logs the summary of one reload.
func printReloadResult(l *zap.Logger, result *reconcile.Result) {
	fields := []zap.Field{
		zap.String("account", result.AccountName),
		zap.String("kind", string(result.Kind)),
		zap.Int("fetched_channels", result.FetchedChannels),
		zap.Duration("duration", result.Duration),
	}
	switch {
	case result.Skipped:
		l.Info("Reload skipped", fields...)
	case errors.Is(result.Err, reconcile.ErrUnknownKind):
		l.Error("Account kind not supported", append(fields, zap.Error(result.Err))...)
	case result.Err != nil:
		l.Error("Reload failed", append(fields, zap.Error(result.Err))...)
	case result.CriticalFailure:
		l.Warn("Reload finished with critical failures", fields...)
	default:
		l.Info("Reload finished", fields...)
	}
}
