package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mywallet-dev/mywallet/internal/activitylog"
)

func newLogCommand(walletDir *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent wallet activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			entries, err := activitylog.Read(w.root)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			for _, e := range entries {
				line := fmt.Sprintf("%s  %-16s %s", e.Timestamp.Local().Format(time.DateTime), e.Action, e.Details)
				if len(e.Domains) > 0 {
					line += " [" + joinDomains(e.Domains) + "]"
				}
				if e.CommitHash != "" {
					line += " (" + e.CommitHash + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show (0 for all)")
	return cmd
}
