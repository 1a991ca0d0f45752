package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mywallet-dev/mywallet/internal/backup"
	"github.com/mywallet-dev/mywallet/internal/credential"
	"github.com/mywallet-dev/mywallet/internal/envelope"
	"github.com/mywallet-dev/mywallet/internal/id"
	"github.com/mywallet-dev/mywallet/internal/model"
	"github.com/mywallet-dev/mywallet/internal/prefs"
)

// DomainSummary describes one domain available in the selected file.
type DomainSummary struct {
	Domain model.Domain
	Count  int
}

// Import is the import dialog state machine:
//
//	file-selected -> awaiting-pin -> review-selection -> importing -> done
//
// A plain file skips awaiting-pin. Recoverable errors keep the current step
// and are available from LastError; a failed merge returns to
// review-selection with the selection intact. Cancel is accepted in any
// non-terminal step.
type Import struct {
	mu       sync.Mutex
	id       string
	gate     ImportGate
	store    DataMerger
	registry *backup.Registry
	opts     Options
	log      *slog.Logger

	step      Step
	lastErr   error
	busy      bool
	gen       uint64
	fileName  string
	encrypted bool
	env       *envelope.Envelope
	doc       *backup.Document
	report    backup.Report
	sel       backup.Selection
	imported  []model.Domain
}

// NewImport starts an import flow in the file-selected step.
func NewImport(gate ImportGate, store DataMerger, registry *backup.Registry, opts Options) *Import {
	if registry == nil {
		registry = backup.DefaultRegistry()
	}
	fid := id.NewFlowID()
	return &Import{
		id:       fid,
		gate:     gate,
		store:    store,
		registry: registry,
		opts:     opts,
		log:      opts.logger().With("flow", "import", "flow_id", fid),
		step:     StepFileSelected,
	}
}

// ID identifies this flow instance in logs.
func (f *Import) ID() string { return f.id }

// Step returns the current step.
func (f *Import) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// LastError returns the error of the most recent trigger, or nil.
func (f *Import) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// FileName returns the name passed to SelectFile.
func (f *Import) FileName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fileName
}

// Encrypted reports whether the selected file is an encrypted envelope.
func (f *Import) Encrypted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.encrypted
}

// SelectFile parses the raw contents of a chosen file. Encrypted files move
// to awaiting-pin; plain backups go straight to review-selection. Choosing
// another file before importing starts over with that file.
func (f *Import) SelectFile(ctx context.Context, name string, raw []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.busy:
		return ErrBusy
	case f.step != StepFileSelected && f.step != StepAwaitingPin && f.step != StepReviewSelection:
		return fmt.Errorf("%w: select file in %s", ErrWrongStep, f.step)
	}
	if err := ctx.Err(); err != nil {
		return f.fail(err)
	}

	f.discard()
	f.fileName = name
	f.setStep(StepFileSelected)

	if envelope.IsEnvelope(raw) {
		env, err := envelope.Parse(raw)
		if err != nil {
			return f.fail(fmt.Errorf("%w: %w", backup.ErrMalformedBackupFile, err))
		}
		f.env = env
		f.encrypted = true
		f.lastErr = nil
		f.setStep(StepAwaitingPin)
		return nil
	}

	doc, rep, err := f.registry.Decode(raw)
	if err != nil {
		return f.fail(err)
	}
	f.review(doc, rep)
	return nil
}

// SubmitPin decrypts the selected envelope. A wrong PIN keeps the flow in
// awaiting-pin so the user can retry. The lock is not held during key
// derivation; a result delivered after Cancel is discarded.
func (f *Import) SubmitPin(ctx context.Context, pin string) error {
	f.mu.Lock()
	switch {
	case f.busy:
		f.mu.Unlock()
		return ErrBusy
	case f.step != StepAwaitingPin:
		f.mu.Unlock()
		return fmt.Errorf("%w: submit PIN in %s", ErrWrongStep, f.step)
	}
	env, gen := f.env, f.gen
	f.busy = true
	f.mu.Unlock()

	plain, err := f.gate.ValidateForImportDecrypt(ctx, pin, env)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	defer clear(plain)

	if gen != f.gen {
		return ErrCancelled
	}
	if err != nil {
		if errors.Is(err, credential.ErrInvalidCredential) {
			f.opts.notify(prefs.ActivityPINFailed)
		}
		return f.fail(err)
	}
	f.opts.notify(prefs.ActivityPINSuccess)

	doc, rep, err := f.registry.Decode(plain)
	if err != nil {
		// The PIN was right but the content is unusable: another file is needed.
		f.env = nil
		f.setStep(StepFileSelected)
		return f.fail(err)
	}
	f.env = nil
	f.review(doc, rep)
	return nil
}

// review enters review-selection with every available domain preselected.
func (f *Import) review(doc *backup.Document, rep backup.Report) {
	f.doc = doc
	f.report = rep
	f.sel = backup.Select(doc.Available()...).Restrict(doc.Available())
	f.lastErr = nil
	for _, s := range rep.Skipped {
		f.log.Warn("skipping invalid domain", "domain", s.Domain, "reason", s.Reason)
	}
	f.setStep(StepReviewSelection)
}

// Available returns the domains the user may select, in canonical order.
// Nil before a document has been read.
func (f *Import) Available() []model.Domain {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doc == nil {
		return nil
	}
	return f.doc.Available()
}

// Summary returns the available domains with their record counts.
func (f *Import) Summary() []DomainSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doc == nil {
		return nil
	}
	var out []DomainSummary
	for _, d := range f.doc.Available() {
		out = append(out, DomainSummary{Domain: d, Count: f.doc.Count(d)})
	}
	return out
}

// Report describes how the selected file was decoded.
func (f *Import) Report() backup.Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.report
}

// ExportDate returns the exportDate recorded in the backup, if any.
func (f *Import) ExportDate() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doc == nil {
		return ""
	}
	return f.doc.ExportDate
}

// Selection returns a copy of the current selection. Unavailable domains
// are always false.
func (f *Import) Selection() backup.Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sel.Clone()
}

// Imported returns the domains merged by a completed import.
func (f *Import) Imported() []model.Domain {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Domain(nil), f.imported...)
}

// ImportAll confirms a selection of every available domain.
func (f *Import) ImportAll(ctx context.Context) error {
	return f.ConfirmSelection(ctx, backup.SelectEverything())
}

// ConfirmSelection reconciles the document against sel and hands the result
// to the store. Selecting a domain the file does not carry has no effect.
// Nothing reaches the store when the filtered payload is empty.
func (f *Import) ConfirmSelection(ctx context.Context, sel backup.Selection) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.busy:
		return ErrBusy
	case f.step != StepReviewSelection:
		return fmt.Errorf("%w: confirm selection in %s", ErrWrongStep, f.step)
	}

	f.sel = sel.Restrict(f.doc.Available())
	f.setStep(StepImporting)

	payload, effective, err := backup.Reconcile(f.doc, f.sel)
	if err != nil {
		f.setStep(StepReviewSelection)
		return f.fail(err)
	}
	if err := ctx.Err(); err != nil {
		f.setStep(StepReviewSelection)
		return f.fail(err)
	}

	domains := payload.Domains()
	if err := f.store.MergeSelective(ctx, payload.Dataset); err != nil {
		f.setStep(StepReviewSelection)
		return f.fail(fmt.Errorf("%w: %w", backup.ErrMerge, err))
	}

	f.log.Info("import merged", "file", f.fileName, "domains", len(domains), "selection", effective.String())
	f.imported = domains
	f.lastErr = nil
	f.doc = nil
	f.setStep(StepDone)
	return nil
}

// Cancel ends the flow and drops any envelope, document or pending result.
// It has no effect once the flow is terminal.
func (f *Import) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step.Terminal() {
		return
	}
	f.gen++
	f.discard()
	f.setStep(StepCancelled)
}

func (f *Import) discard() {
	f.env = nil
	f.encrypted = false
	f.doc = nil
	f.report = backup.Report{}
	f.sel = nil
}

func (f *Import) setStep(s Step) {
	if f.step != s {
		f.log.Debug("step", "from", f.step, "to", s)
	}
	f.step = s
}

func (f *Import) fail(err error) error {
	f.lastErr = err
	f.log.Warn("import step failed", "step", f.step, "error", err)
	return err
}
