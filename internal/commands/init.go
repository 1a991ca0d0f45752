package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mywallet-dev/mywallet/internal/activitylog"
	"github.com/mywallet-dev/mywallet/internal/categories"
	"github.com/mywallet-dev/mywallet/internal/config"
	"github.com/mywallet-dev/mywallet/internal/gitops"
	"github.com/mywallet-dev/mywallet/internal/model"
	"github.com/mywallet-dev/mywallet/internal/prefs"
	"github.com/mywallet-dev/mywallet/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new wallet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, currency)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "wallet name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")

	return cmd
}

func runInit(dir, name, currency string) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already contains a wallet", dir)
	}
	currency = strings.ToUpper(currency)
	if !validCurrency(currency) {
		return fmt.Errorf("unknown currency %q", currency)
	}

	// Create directory structure.
	cfg := config.Default(name, currency)
	dirs := []string{
		"data",
		"logs",
		cfg.Backup.Dir,
		cfg.Backup.Inbox,
		filepath.Join(cfg.Backup.Inbox, "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write mywallet.yaml.
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write default preferences.
	ps, err := prefs.Load(filepath.Join(dir, prefsFile))
	if err != nil {
		return err
	}
	if err := ps.Save(); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}

	// Seed the profile and the system categories.
	data := store.New(dir, ps)
	err = data.Write(context.Background(), model.Dataset{
		UserProfile: &model.Profile{Name: name, Currency: currency},
		Categories:  categories.WithDefaults(nil).All(),
	})
	if err != nil {
		return fmt.Errorf("writing wallet data: %w", err)
	}

	// Exports and the credential hash stay out of history.
	gitignore := cfg.Backup.Dir + "/\n" + credentialDir + "/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.Backup.Inbox, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(dir, "init: Initialize "+name, author)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	entry := activitylog.Entry{
		Timestamp:  nowUTC(),
		Action:     activitylog.ActionInit,
		Domains:    []model.Domain{model.DomainUserProfile, model.DomainCategories},
		Details:    "initialized " + name,
		CommitHash: hash,
	}
	if err := activitylog.Append(dir, entry); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write activity log: %v\n", err)
	}

	fmt.Printf("Initialized wallet %q at %s (%s)\n", name, dir, hash)
	fmt.Println("Set a PIN with: mywallet credential set --pin <6-12 digits>")
	return nil
}
