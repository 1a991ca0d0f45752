package backup

import (
	"encoding/json"
	"fmt"

	"github.com/mywallet-dev/mywallet/internal/model"
)

// CurrentVersion is the schema version written by the Builder.
const CurrentVersion = model.SchemaV2

// Document is a backup: metadata plus the exported domains.
type Document struct {
	ExportDate    string    `json:"exportDate"`
	Version       string    `json:"version"`
	BackupOptions Selection `json:"backupOptions,omitempty"`
	model.Dataset
}

// Available returns the domains the document carries.
func (d *Document) Available() []model.Domain {
	return d.Domains()
}

// Marshal encodes the document as indented JSON. Field order is fixed, so
// two documents with equal contents encode identically.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling backup document: %w", err)
	}
	return data, nil
}

// Payload is a filtered, validated subset of a Document ready to merge.
type Payload struct {
	model.Dataset
}
