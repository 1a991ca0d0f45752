// Package activitylog records import, export and credential events in a CSV
// file under the wallet root.
package activitylog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mywallet-dev/mywallet/internal/model"
)

// Action names what happened in a logged event.
type Action string

const (
	ActionInit              Action = "init"
	ActionCredentialSet     Action = "credential_set"
	ActionCredentialCleared Action = "credential_cleared"
	ActionExport            Action = "export"
	ActionExportFailed      Action = "export_failed"
	ActionImport            Action = "import"
	ActionImportFailed      Action = "import_failed"
	ActionPrefsChanged      Action = "prefs_changed"
)

// Columns is the header row of activity-log.csv, in column order.
var Columns = []string{"timestamp", "flow_id", "action", "domains", "details", "commit_hash"}

const (
	relPath   = "logs/activity-log.csv"
	domainSep = ";"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp  time.Time
	FlowID     string
	Action     Action
	Domains    []model.Domain
	Details    string
	CommitHash string
}

// Row renders e in Columns order.
func (e Entry) Row() []string {
	names := make([]string, len(e.Domains))
	for i, d := range e.Domains {
		names[i] = d.String()
	}
	return []string{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.FlowID,
		string(e.Action),
		strings.Join(names, domainSep),
		e.Details,
		e.CommitHash,
	}
}

// ParseRow is the inverse of Entry.Row.
func ParseRow(row []string) (Entry, error) {
	if len(row) != len(Columns) {
		return Entry{}, fmt.Errorf("want %d columns, got %d", len(Columns), len(row))
	}
	ts, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return Entry{}, fmt.Errorf("bad timestamp %q: %w", row[0], err)
	}

	e := Entry{
		Timestamp:  ts,
		FlowID:     row[1],
		Action:     Action(row[2]),
		Details:    row[4],
		CommitHash: row[5],
	}
	if row[3] == "" {
		return e, nil
	}
	for name := range strings.SplitSeq(row[3], domainSep) {
		d, err := model.ParseDomain(name)
		if err != nil {
			return Entry{}, fmt.Errorf("bad domain list: %w", err)
		}
		e.Domains = append(e.Domains, d)
	}
	return e, nil
}

// Path returns the log file location under root.
func Path(root string) string {
	return filepath.Join(root, relPath)
}

// Append adds entries to the log under root. An empty or missing file gets
// the header row first.
func Append(root string, entries ...Entry) error {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat activity log: %w", err)
	}

	rows := make([][]string, 0, len(entries)+1)
	if info.Size() == 0 {
		rows = append(rows, Columns)
	}
	for _, e := range entries {
		rows = append(rows, e.Row())
	}

	// WriteAll flushes.
	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing activity log: %w", err)
	}
	return f.Close()
}

// Read returns every entry in the log under root, oldest first. A missing log
// reads as empty.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(Columns)
	cr.ReuseRecord = true

	var entries []Entry
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading activity log: %w", err)
		}
		if line == 1 {
			if !slices.Equal(row, Columns) {
				return nil, fmt.Errorf("activity log line 1: unexpected header %q", strings.Join(row, ","))
			}
			continue
		}
		e, err := ParseRow(row)
		if err != nil {
			return nil, fmt.Errorf("activity log line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}
