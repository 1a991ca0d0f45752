package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mywallet-dev/mywallet/internal/activitylog"
)

func newCredentialCommand(walletDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the wallet PIN",
	}
	cmd.AddCommand(newCredentialSetCommand(walletDir))
	cmd.AddCommand(newCredentialStatusCommand(walletDir))
	cmd.AddCommand(newCredentialClearCommand(walletDir))
	return cmd
}

func newCredentialSetCommand(walletDir *string) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set or replace the wallet PIN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			p, err := w.pin(pin)
			if err != nil {
				return err
			}
			if err := w.creds.Set(p); err != nil {
				return fmt.Errorf("setting PIN: %w", err)
			}
			w.record("", activitylog.ActionCredentialSet, nil, "wallet PIN set", "")
			fmt.Println("Wallet PIN set. Backups will be encrypted with this PIN.")
			return nil
		},
	}
	cmd.Flags().StringVar(&pin, "pin", "", "new PIN (6-12 digits)")
	return cmd
}

func newCredentialStatusCommand(walletDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a wallet PIN is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			if w.creds.HasActiveCredential() {
				fmt.Println("PIN: configured")
			} else {
				fmt.Println("PIN: not configured")
			}
			return nil
		},
	}
}

func newCredentialClearCommand(walletDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the wallet PIN (blocks exports until a new one is set)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			if err := w.creds.Clear(); err != nil {
				return err
			}
			w.record("", activitylog.ActionCredentialCleared, nil, "wallet PIN cleared", "")
			fmt.Println("Wallet PIN cleared.")
			return nil
		},
	}
}
