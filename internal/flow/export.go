package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mywallet-dev/mywallet/internal/backup"
	"github.com/mywallet-dev/mywallet/internal/backupfile"
	"github.com/mywallet-dev/mywallet/internal/credential"
	"github.com/mywallet-dev/mywallet/internal/envelope"
	"github.com/mywallet-dev/mywallet/internal/id"
	"github.com/mywallet-dev/mywallet/internal/model"
	"github.com/mywallet-dev/mywallet/internal/prefs"
)

// Export is the export dialog state machine:
//
//	composing-selection -> encrypting -> done
//
// A rejected PIN returns to composing-selection with the selection kept.
type Export struct {
	mu      sync.Mutex
	id      string
	gate    ExportGate
	codec   Encrypter
	store   DataReader
	builder *backup.Builder
	opts    Options
	log     *slog.Logger

	step     Step
	lastErr  error
	gen      uint64
	sel      backup.Selection
	result   *backupfile.File
	exported []model.Domain
}

// NewExport starts an export flow in the composing-selection step.
func NewExport(gate ExportGate, codec Encrypter, store DataReader, opts Options) *Export {
	fid := id.NewFlowID()
	return &Export{
		id:      fid,
		gate:    gate,
		codec:   codec,
		store:   store,
		builder: backup.NewBuilder(),
		opts:    opts,
		log:     opts.logger().With("flow", "export", "flow_id", fid),
		step:    StepComposingSelection,
	}
}

// SetClock replaces the time source used for exportDate and the file name.
func (f *Export) SetClock(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builder.Now = now
}

// ID identifies this flow instance in logs.
func (f *Export) ID() string { return f.id }

// Step returns the current step.
func (f *Export) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// LastError returns the error of the most recent trigger, or nil.
func (f *Export) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Selection returns a copy of the last confirmed selection.
func (f *Export) Selection() backup.Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sel.Clone()
}

// Result returns the encrypted backup once the flow is done.
func (f *Export) Result() *backupfile.File {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Exported returns the domains written to the backup once the flow is done.
func (f *Export) Exported() []model.Domain {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Domain(nil), f.exported...)
}

// Confirm checks pin against the active wallet credential, builds a backup
// of the selected domains and encrypts it. No file is produced unless the
// PIN is the active one. The lock is released during encryption; a result
// delivered after Cancel is discarded.
func (f *Export) Confirm(ctx context.Context, sel backup.Selection, pin string) (*backupfile.File, error) {
	f.mu.Lock()
	doc, gen, err := f.begin(ctx, sel, pin)
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	env, err := f.codec.Encrypt(ctx, doc, pin)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return nil, ErrCancelled
	}
	if err != nil {
		f.setStep(StepComposingSelection)
		return nil, f.fail(fmt.Errorf("encrypting backup: %w", err))
	}
	data, err := envelope.Marshal(env)
	if err != nil {
		f.setStep(StepComposingSelection)
		return nil, f.fail(err)
	}

	f.result = &backupfile.File{
		Name: id.FormatBackupName(f.builder.Now(), 0),
		Data: data,
	}
	f.exported = doc.Available()
	f.lastErr = nil
	f.log.Info("backup encrypted", "domains", len(doc.Available()), "selection", doc.BackupOptions.String())
	f.opts.notify(prefs.ActivityBackupComplete)
	f.setStep(StepDone)
	return f.result, nil
}

// begin validates the trigger and builds the document. Called with f.mu held.
func (f *Export) begin(ctx context.Context, sel backup.Selection, pin string) (*backup.Document, uint64, error) {
	if f.step != StepComposingSelection {
		return nil, 0, fmt.Errorf("%w: confirm export in %s", ErrWrongStep, f.step)
	}
	f.sel = sel.Clone()
	// settings without userProfile is dropped by the builder.
	if !sel.Normalize().Any() {
		return nil, 0, f.fail(ErrNothingSelected)
	}

	f.setStep(StepEncrypting)
	doc, err := f.compose(ctx, pin)
	if err != nil {
		f.setStep(StepComposingSelection)
		return nil, 0, f.fail(err)
	}
	return doc, f.gen, nil
}

// compose runs the credential gate and builds the document. Called with f.mu held.
func (f *Export) compose(ctx context.Context, pin string) (*backup.Document, error) {
	if err := f.gate.ValidateForExport(pin); err != nil {
		if errors.Is(err, credential.ErrInvalidCredential) {
			f.opts.notify(prefs.ActivityPINFailed)
		}
		return nil, err
	}
	data, err := f.store.ReadAllDomains(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading wallet data: %w", err)
	}
	return f.builder.Build(&data, f.sel), nil
}

// Cancel ends the flow. It has no effect once the flow is terminal.
func (f *Export) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step.Terminal() {
		return
	}
	f.gen++
	f.setStep(StepCancelled)
}

func (f *Export) setStep(s Step) {
	if f.step != s {
		f.log.Debug("step", "from", f.step, "to", s)
	}
	f.step = s
}

func (f *Export) fail(err error) error {
	f.lastErr = err
	f.log.Warn("export step failed", "step", f.step, "error", err)
	return err
}
