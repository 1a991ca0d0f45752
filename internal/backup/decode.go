package backup

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/mywallet-dev/mywallet/internal/model"
)

// SkippedDomain records a domain dropped during decoding.
type SkippedDomain struct {
	Domain model.Domain
	Reason string
}

// Report describes what decoding dropped or ignored.
type Report struct {
	Version string
	Skipped []SkippedDomain
	Ignored []string // keys not part of the version's schema
}

// Decoder turns the top-level fields of one schema version into a Document.
type Decoder interface {
	Decode(fields map[string]json.RawMessage) (*Document, Report, error)
	Version() string
}

// Registry holds decoders by schema version.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register adds a decoder. Panics on duplicate version.
func (r *Registry) Register(d Decoder) {
	if _, ok := r.decoders[d.Version()]; ok {
		panic("duplicate decoder version: " + d.Version())
	}
	r.decoders[d.Version()] = d
}

// Get returns the decoder for version, or nil.
func (r *Registry) Get(version string) Decoder {
	return r.decoders[version]
}

// Versions returns the registered versions, sorted.
func (r *Registry) Versions() []string {
	out := make([]string, 0, len(r.decoders))
	for v := range r.decoders {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// DefaultRegistry returns a registry with all built-in schema versions.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&schemaDecoder{version: model.SchemaV1})
	r.Register(&schemaDecoder{version: model.SchemaV2, readsOptions: true})
	return r
}

// Decode parses a plain backup document. Files without a version are read
// as 1.0. The returned document is normalized to the current representation
// regardless of the version it was written in.
func (r *Registry) Decode(raw []byte) (*Document, Report, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, Report{}, fmt.Errorf("%w: %w", ErrMalformedBackupFile, err)
	}
	if fields == nil {
		return nil, Report{}, fmt.Errorf("%w: not a JSON object", ErrMalformedBackupFile)
	}
	if !looksLikeBackup(fields) {
		return nil, Report{}, fmt.Errorf("%w: no backup fields found", ErrMalformedBackupFile)
	}

	version := model.SchemaV1
	if v, ok := fields["version"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return nil, Report{}, fmt.Errorf("%w: version is not a string", ErrMalformedBackupFile)
		}
	}

	dec := r.Get(version)
	if dec == nil {
		return nil, Report{}, fmt.Errorf("%w: %w %q (known: %s)",
			ErrMalformedBackupFile, ErrUnsupportedVersion, version, strings.Join(r.Versions(), ", "))
	}
	return dec.Decode(fields)
}

func looksLikeBackup(fields map[string]json.RawMessage) bool {
	if _, ok := fields["exportDate"]; ok {
		return true
	}
	if _, ok := fields["version"]; ok {
		return true
	}
	for _, d := range model.AllDomains() {
		if _, ok := fields[string(d)]; ok {
			return true
		}
	}
	return false
}

// schemaDecoder decodes one schema version. A version only knows the domains
// that existed when it was written; later keys are ignored.
type schemaDecoder struct {
	version      string
	readsOptions bool
}

func (s *schemaDecoder) Version() string { return s.version }

func (s *schemaDecoder) domains() []model.Domain {
	var out []model.Domain
	for _, d := range model.AllDomains() {
		if d.Since() <= s.version {
			out = append(out, d)
		}
	}
	return out
}

func (s *schemaDecoder) Decode(fields map[string]json.RawMessage) (*Document, Report, error) {
	doc := &Document{Version: CurrentVersion}
	rep := Report{Version: s.version}

	if v, ok := fields["exportDate"]; ok {
		if err := json.Unmarshal(v, &doc.ExportDate); err != nil {
			rep.Ignored = append(rep.Ignored, "exportDate")
		}
	}

	known := map[string]bool{"exportDate": true, "version": true}
	for _, d := range s.domains() {
		known[string(d)] = true
		raw, ok := fields[string(d)]
		if !ok {
			continue
		}
		if err := doc.DecodeDomain(d, raw); err != nil {
			rep.Skipped = append(rep.Skipped, SkippedDomain{Domain: d, Reason: err.Error()})
			continue
		}
		if errs := ValidateDomain(&doc.Dataset, d); len(errs) > 0 {
			doc.Clear(d)
			rep.Skipped = append(rep.Skipped, SkippedDomain{Domain: d, Reason: errs[0].Error()})
		}
	}

	if s.readsOptions {
		known["backupOptions"] = true
		if raw, ok := fields["backupOptions"]; ok {
			var opts Selection
			if err := json.Unmarshal(raw, &opts); err == nil {
				doc.BackupOptions = opts
			} else {
				rep.Ignored = append(rep.Ignored, "backupOptions")
			}
		}
	}
	if doc.BackupOptions == nil {
		doc.BackupOptions = Select(doc.Available()...)
	}

	for k := range fields {
		if !known[k] {
			rep.Ignored = append(rep.Ignored, k)
		}
	}
	slices.Sort(rep.Ignored)

	return doc, rep, nil
}
