package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mywallet-dev/mywallet/internal/activitylog"
	"github.com/mywallet-dev/mywallet/internal/backup"
	"github.com/mywallet-dev/mywallet/internal/backupfile"
	"github.com/mywallet-dev/mywallet/internal/categories"
	"github.com/mywallet-dev/mywallet/internal/flow"
	"github.com/mywallet-dev/mywallet/internal/gitops"
	"github.com/mywallet-dev/mywallet/internal/model"
)

func newBackupCommand(walletDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export, import and inspect selective backups",
	}
	cmd.AddCommand(newBackupExportCommand(walletDir))
	cmd.AddCommand(newBackupImportCommand(walletDir))
	cmd.AddCommand(newBackupInspectCommand(walletDir))
	return cmd
}

func newBackupExportCommand(walletDir *string) *cobra.Command {
	var pin, only, outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an encrypted backup of the selected domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			sel, err := selectionFlag(only)
			if err != nil {
				return err
			}
			p, err := w.pin(pin)
			if err != nil {
				return err
			}
			if sel == nil {
				sel = backup.SelectEverything()
			}
			if outDir == "" {
				outDir = w.cfg.BackupDir(w.root)
			}

			ctx, cancel := w.signalContext()
			defer cancel()
			return runExport(ctx, w, sel, p, outDir)
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "active wallet PIN (default $MYWALLET_PIN)")
	cmd.Flags().StringVar(&only, "only", "", "comma-separated domains to export (default all)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default backup.dir)")
	return cmd
}

func runExport(ctx context.Context, w *wallet, sel backup.Selection, pin, outDir string) error {
	f := flow.NewExport(w.gate(), w.codec, w.data, flow.Options{Logger: w.log, Notifier: w.notifier()})

	file, err := f.Confirm(ctx, sel, pin)
	if err != nil {
		w.record(f.ID(), activitylog.ActionExportFailed, sel.Selected(), err.Error(), "")
		return fmt.Errorf("export: %w", err)
	}

	path, err := backupfile.Write(outDir, *file)
	if err != nil {
		return err
	}
	exported := f.Exported()
	w.record(f.ID(), activitylog.ActionExport, exported, filepath.Base(path), "")

	fmt.Printf("Exported %d domain(s) to %s\n", len(exported), path)
	data, err := w.data.ReadAllDomains(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: reading wallet data: %v\n", err)
		return nil
	}
	for _, d := range exported {
		fmt.Printf("  %-24s %s\n", d, describe(&data, d, w.cfg.Wallet.Currency))
	}
	return nil
}

func newBackupImportCommand(walletDir *string) *cobra.Command {
	var pin, only string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Merge selected domains from a backup file",
		Long: "Merge selected domains from a backup file. Without a file, every\n" +
			"JSON file in the import inbox is imported and moved to processed/.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			sel, err := selectionFlag(only)
			if err != nil {
				return err
			}

			ctx, cancel := w.signalContext()
			defer cancel()

			if len(args) == 1 {
				return importFile(ctx, w, args[0], pin, sel)
			}
			return importInbox(ctx, w, pin, sel)
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "PIN the backup was encrypted with (default $MYWALLET_PIN)")
	cmd.Flags().StringVar(&only, "only", "", "comma-separated domains to import (default all available)")
	return cmd
}

func importInbox(ctx context.Context, w *wallet, pin string, sel backup.Selection) error {
	inbox := w.cfg.InboxDir(w.root)
	files, err := backupfile.Scan(inbox)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No backup files in %s\n", inbox)
		return nil
	}

	var failed int
	for _, fi := range files {
		if err := importFile(ctx, w, fi.Path, pin, sel); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fi.Name, err)
			failed++
			continue
		}
		if err := backupfile.MarkProcessed(inbox, fi.Name); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to import", failed, len(files))
	}
	return nil
}

func importFile(ctx context.Context, w *wallet, path, pinFlag string, sel backup.Selection) error {
	raw, err := backupfile.Read(path)
	if err != nil {
		return err
	}
	name := filepath.Base(path)

	f := flow.NewImport(w.gate(), w.data, nil, flow.Options{Logger: w.log, Notifier: w.notifier()})
	defer f.Cancel()

	fail := func(err error) error {
		w.record(f.ID(), activitylog.ActionImportFailed, nil, name+": "+err.Error(), "")
		return fmt.Errorf("import %s: %w", name, err)
	}

	if err := openBackup(ctx, w, f, name, raw, pinFlag); err != nil {
		return fail(err)
	}
	if sel == nil {
		err = f.ImportAll(ctx)
	} else {
		err = f.ConfirmSelection(ctx, sel)
	}
	if err != nil {
		return fail(err)
	}

	imported := f.Imported()
	hash := w.commit(gitops.ImportMessage(name, imported), "data", prefsFile, "logs")
	w.record(f.ID(), activitylog.ActionImport, imported, name, hash)

	fmt.Printf("Imported %s from %s\n", joinDomains(imported), name)
	return nil
}

// openBackup selects the file and, when it is encrypted, decrypts it.
func openBackup(ctx context.Context, w *wallet, f *flow.Import, name string, raw []byte, pinFlag string) error {
	if err := f.SelectFile(ctx, name, raw); err != nil {
		return err
	}
	if f.Step() == flow.StepAwaitingPin {
		pin, err := w.pin(pinFlag)
		if err != nil {
			return err
		}
		if err := f.SubmitPin(ctx, pin); err != nil {
			return err
		}
	}
	for _, s := range f.Report().Skipped {
		fmt.Fprintf(os.Stderr, "warning: %s: skipping %s: %s\n", name, s.Domain, s.Reason)
	}
	return nil
}

func newBackupInspectCommand(walletDir *string) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the version and domains of a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet(*walletDir)
			if err != nil {
				return err
			}
			raw, err := backupfile.Read(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := w.signalContext()
			defer cancel()

			f := flow.NewImport(w.gate(), w.data, nil, flow.Options{Logger: w.log})
			defer f.Cancel()
			name := filepath.Base(args[0])
			if err := openBackup(ctx, w, f, name, raw, pin); err != nil {
				return err
			}

			rep := f.Report()
			fmt.Printf("File:        %s\n", name)
			fmt.Printf("Encrypted:   %t\n", f.Encrypted())
			fmt.Printf("Version:     %s\n", rep.Version)
			if d := f.ExportDate(); d != "" {
				fmt.Printf("Exported at: %s\n", d)
			}
			fmt.Println("Domains:")
			for _, s := range f.Summary() {
				fmt.Printf("  %-24s %d\n", s.Domain, s.Count)
			}
			if len(rep.Ignored) > 0 {
				fmt.Printf("Ignored:     %s\n", strings.Join(rep.Ignored, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pin, "pin", "", "PIN the backup was encrypted with (default $MYWALLET_PIN)")
	return cmd
}

// selectionFlag parses --only; an empty flag means "everything".
func selectionFlag(only string) (backup.Selection, error) {
	if strings.TrimSpace(only) == "" {
		return nil, nil
	}
	sel, err := backup.ParseSelection(only)
	if err != nil {
		return nil, fmt.Errorf("--only: %w", err)
	}
	return sel, nil
}

// describe summarizes one domain of the live data for display.
func describe(data *model.Dataset, d model.Domain, currency string) string {
	switch {
	case d == model.DomainEmergencyFund && data.EmergencyFund != nil:
		return formatMoney(*data.EmergencyFund, currency)
	case d == model.DomainActivePortfolioID && data.ActivePortfolioID != nil:
		if !data.ActivePortfolioID.Valid {
			return "none"
		}
		return data.ActivePortfolioID.ID
	case d == model.DomainCategories:
		user := categories.NewService(categories.UserDefined(data.Categories))
		return fmt.Sprintf("%d user-defined: %d income, %d expense", len(user.All()),
			len(user.ByType(model.CategoryIncome)), len(user.ByType(model.CategoryExpense)))
	case d.Kind() == model.KindSequence:
		return fmt.Sprintf("%d record(s)", data.Count(d))
	default:
		return "included"
	}
}

func joinDomains(domains []model.Domain) string {
	names := make([]string, len(domains))
	for i, d := range domains {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
