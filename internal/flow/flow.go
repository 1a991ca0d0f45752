// Package flow drives the import and export dialogs: it sequences file
// parsing, PIN checks, selection and the store merge, and keeps the current
// step and last error for the presentation layer.
package flow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mywallet-dev/mywallet/internal/envelope"
	"github.com/mywallet-dev/mywallet/internal/model"
	"github.com/mywallet-dev/mywallet/internal/prefs"
)

// Step is a flow state, named for display.
type Step string

// Import steps.
const (
	StepFileSelected    Step = "file-selected"
	StepAwaitingPin     Step = "awaiting-pin"
	StepReviewSelection Step = "review-selection"
	StepImporting       Step = "importing"
)

// Export steps.
const (
	StepComposingSelection Step = "composing-selection"
	StepEncrypting         Step = "encrypting"
)

// Terminal steps shared by both flows.
const (
	StepDone      Step = "done"
	StepCancelled Step = "cancelled"
)

// Terminal reports whether no further trigger is accepted.
func (s Step) Terminal() bool {
	return s == StepDone || s == StepCancelled
}

func (s Step) String() string { return string(s) }

var (
	// ErrCancelled means the flow was cancelled while an operation was in flight.
	ErrCancelled = errors.New("flow cancelled")
	// ErrWrongStep means a trigger was fired in a step that does not accept it.
	ErrWrongStep = errors.New("action not allowed in current step")
	// ErrBusy means a long-running operation of this flow is still in flight.
	ErrBusy = errors.New("flow is busy")
	// ErrNothingSelected means an export was confirmed with no domain selected.
	ErrNothingSelected = errors.New("no domain selected for export")
)

// ImportGate decrypts an envelope with a user PIN.
type ImportGate interface {
	ValidateForImportDecrypt(ctx context.Context, pin string, env *envelope.Envelope) ([]byte, error)
}

// ExportGate accepts or rejects the PIN an export is encrypted with.
type ExportGate interface {
	ValidateForExport(pin string) error
}

// Encrypter seals a document under a PIN.
type Encrypter interface {
	Encrypt(ctx context.Context, v any, pin string) (*envelope.Envelope, error)
}

// DataReader is the read side of the live data store.
type DataReader interface {
	ReadAllDomains(ctx context.Context) (model.Dataset, error)
}

// DataMerger is the only mutating call a flow makes on the live store.
type DataMerger interface {
	MergeSelective(ctx context.Context, p model.Dataset) error
}

// Notifier is told about user-visible events, e.g. to play a sound.
type Notifier interface {
	Notify(kind prefs.ActivityKind)
}

// Options holds the optional collaborators of a flow.
type Options struct {
	Logger   *slog.Logger
	Notifier Notifier
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) notify(kind prefs.ActivityKind) {
	if o.Notifier != nil {
		o.Notifier.Notify(kind)
	}
}
