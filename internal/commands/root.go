package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mywallet-dev/mywallet/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var walletDir string

	rootCmd := &cobra.Command{
		Use:     "mywallet",
		Short:   "Personal wallet with selective encrypted backups",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&walletDir, "wallet", ".", "wallet directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCredentialCommand(&walletDir))
	rootCmd.AddCommand(newBackupCommand(&walletDir))
	rootCmd.AddCommand(newPrefsCommand(&walletDir))
	rootCmd.AddCommand(newLogCommand(&walletDir))

	return rootCmd
}
