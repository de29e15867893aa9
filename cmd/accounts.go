package cmd

import (
	"fmt"
	"os"

	"catalog-sync/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// accountFile is the YAML layout read by "accounts import" and written by "accounts export".
type accountFile struct {
	Accounts []accountEntry `yaml:"accounts"`
}

type accountEntry struct {
	ID           string `yaml:"id,omitempty"`
	Name         string `yaml:"name"`
	Kind         string `yaml:"kind"`
	Action       string `yaml:"action,omitempty"`
	URL          string `yaml:"url,omitempty"`
	MAC          string `yaml:"mac,omitempty"`
	Username     string `yaml:"username,omitempty"`
	Password     string `yaml:"password,omitempty"`
	PlaylistPath string `yaml:"playlist_path,omitempty"`
	PauseCaching bool   `yaml:"pause_caching,omitempty"`
}

func (e accountEntry) toModel() *models.Account {
	return &models.Account{
		ID:           e.ID,
		Name:         e.Name,
		Kind:         e.Kind,
		Action:       e.Action,
		URL:          e.URL,
		MAC:          e.MAC,
		Username:     e.Username,
		Password:     e.Password,
		PlaylistPath: e.PlaylistPath,
		PauseCaching: e.PauseCaching,
	}
}

func entryFromModel(a models.Account) accountEntry {
	return accountEntry{
		ID:           a.ID,
		Name:         a.Name,
		Kind:         a.Kind,
		Action:       a.Action,
		URL:          a.URL,
		MAC:          a.MAC,
		Username:     a.Username,
		Password:     a.Password,
		PlaylistPath: a.PlaylistPath,
		PauseCaching: a.PauseCaching,
	}
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage IPTV accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with their cached channel counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, l, err := loadConfig()
		if err != nil {
			return err
		}
		rt, err := newRuntime(ctx, cfg, l)
		if err != nil {
			return err
		}
		defer rt.Close()

		accounts, err := rt.service.ListAccounts(ctx)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			count, err := rt.service.ChannelCount(ctx, a.ID)
			if err != nil {
				return err
			}
			paused := ""
			if a.PauseCaching {
				paused = " (paused)"
			}
			fmt.Printf("%s  %-14s %-24s %d channels%s\n", a.ID, a.Kind, a.Name, count, paused)
		}
		return nil
	},
}

var accountsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Create or update accounts from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		var file accountFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		cfg, l, err := loadConfig()
		if err != nil {
			return err
		}
		rt, err := newRuntime(ctx, cfg, l)
		if err != nil {
			return err
		}
		defer rt.Close()

		for i, entry := range file.Accounts {
			account := entry.toModel()
			if err := rt.service.SaveAccount(ctx, account); err != nil {
				return fmt.Errorf("account #%d (%s): %w", i+1, entry.Name, err)
			}
			l.Info("Account saved", zap.String("id", account.ID), zap.String("name", account.Name))
		}
		return nil
	},
}

var accountsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print every account as YAML, credentials included",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, l, err := loadConfig()
		if err != nil {
			return err
		}
		rt, err := newRuntime(ctx, cfg, l)
		if err != nil {
			return err
		}
		defer rt.Close()

		accounts, err := rt.service.ListAccounts(ctx)
		if err != nil {
			return err
		}
		file := accountFile{Accounts: make([]accountEntry, 0, len(accounts))}
		for _, a := range accounts {
			file.Accounts = append(file.Accounts, entryFromModel(a))
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(file)
	},
}

func init() {
	accountsCmd.AddCommand(accountsListCmd, accountsImportCmd, accountsExportCmd)
	RootCmd.AddCommand(accountsCmd)
}
