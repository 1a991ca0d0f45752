package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mywallet-dev/mywallet/internal/activitylog"
	"github.com/mywallet-dev/mywallet/internal/gitops"
	"github.com/mywallet-dev/mywallet/internal/prefs"
)

func newPrefsCommand(walletDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show and change preferences",
	}
	cmd.AddCommand(newPrefsListCommand(walletDir))
	cmd.AddCommand(newPrefsGetCommand(walletDir))
	cmd.AddCommand(newPrefsSetCommand(walletDir))
	cmd.AddCommand(newPrefsResetCommand(walletDir))
	return cmd
}

func newPrefsListCommand(walletDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every preference with its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			for _, key := range prefs.Keys() {
				v, err := w.prefs.Get(key)
				if err != nil {
					return err
				}
				fmt.Printf("%s=%s\n", key, v)
			}
			return nil
		},
	}
}

func newPrefsGetCommand(walletDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			v, err := w.prefs.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}
}

func newPrefsSetCommand(walletDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			if err := w.prefs.Set(args[0], args[1]); err != nil {
				return err
			}
			w.prefsChanged(args[0])
			return nil
		},
	}
}

func newPrefsResetCommand(walletDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [key]",
		Short: "Restore one preference, or all of them, to the default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if err := w.prefs.ResetAll(); err != nil {
					return err
				}
				w.prefsChanged("")
				return nil
			}
			if err := w.prefs.Reset(args[0]); err != nil {
				return err
			}
			w.prefsChanged(args[0])
			return nil
		},
	}
}

func (w *wallet) prefsChanged(key string) {
	hash := w.commit(gitops.PrefsMessage(key), prefsFile, "logs")
	details := key
	if key == "" {
		details = "all"
	}
	w.record("", activitylog.ActionPrefsChanged, nil, details, hash)
}
