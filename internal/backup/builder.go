package backup

import (
	"time"

	"github.com/mywallet-dev/mywallet/internal/categories"
	"github.com/mywallet-dev/mywallet/internal/model"
)

// Builder assembles backup documents from live data.
type Builder struct {
	Now func() time.Time
}

// NewBuilder returns a Builder stamping documents with the wall clock.
func NewBuilder() *Builder {
	return &Builder{Now: time.Now}
}

// Build returns a document holding exactly the domains that are both selected
// in opts and present in data.
//
// Two rules override the mask: categories are reduced to user-defined entries,
// and a domain whose parent is deselected is dropped with it (settings cannot
// be exported without userProfile). The recorded backupOptions reflect the
// mask after those rules, with an explicit entry for every domain.
func (b *Builder) Build(data *model.Dataset, opts Selection) *Document {
	sel := opts.Normalize()

	recorded := make(Selection, len(model.AllDomains()))
	for _, d := range model.AllDomains() {
		recorded[d] = sel[d]
	}

	doc := &Document{
		ExportDate:    b.Now().UTC().Format(time.RFC3339),
		Version:       CurrentVersion,
		BackupOptions: recorded,
	}
	for _, d := range sel.Selected() {
		if data.Has(d) {
			doc.CopyDomain(data, d)
		}
	}
	doc.Categories = categories.UserDefined(doc.Categories)
	return doc
}
