package backup

import (
	"fmt"

	"github.com/mywallet-dev/mywallet/internal/categories"
)

// Reconcile filters doc down to the domains that are present, selected and
// structurally valid. Domains absent from doc are forced off before
// filtering, as are domains whose parent is off. The effective selection is
// returned alongside the payload.
//
// Reconcile never touches the live store; an empty result is reported as
// ErrEmptyImport so the caller can tell the user nothing was imported.
func Reconcile(doc *Document, sel Selection) (*Payload, Selection, error) {
	effective := sel.Restrict(doc.Available()).Normalize()

	p := &Payload{}
	for _, d := range effective.Selected() {
		p.CopyDomain(&doc.Dataset, d)
	}
	p.Categories = categories.UserDefined(p.Categories)

	if p.Empty() {
		return nil, effective, fmt.Errorf("%w: no selected domain is available in the backup", ErrEmptyImport)
	}
	return p, effective, nil
}
