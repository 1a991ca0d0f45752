package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mywallet-dev/mywallet/internal/logger"
	"github.com/mywallet-dev/mywallet/internal/model"
)

// dataDir holds one JSON file per domain, relative to the wallet root.
const dataDir = "data"

// SettingsProvider owns the settings domain.
type SettingsProvider interface {
	Settings() model.Settings
	ApplySettings(model.Settings) error
}

// Store is the live wallet data, kept as one file per domain.
type Store struct {
	mu       sync.Mutex
	dir      string
	settings SettingsProvider
}

// New returns a Store rooted at the wallet directory. settings may be nil,
// in which case the settings domain is never present.
func New(root string, settings SettingsProvider) *Store {
	return &Store{dir: filepath.Join(root, dataDir), settings: settings}
}

func (s *Store) domainPath(d model.Domain) string {
	return filepath.Join(s.dir, string(d)+".json")
}

// ReadAllDomains returns a snapshot of every stored domain.
func (s *Store) ReadAllDomains(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *Store) readAll() (model.Dataset, error) {
	var ds model.Dataset
	for _, d := range model.AllDomains() {
		if d == model.DomainSettings {
			if s.settings != nil {
				st := s.settings.Settings()
				ds.Settings = &st
			}
			continue
		}
		if err := s.readDomain(&ds, d); err != nil {
			return model.Dataset{}, err
		}
	}
	return ds, nil
}

func (s *Store) readDomain(ds *model.Dataset, d model.Domain) error {
	path := s.domainPath(d)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	raw, ok := fields[string(d)]
	if !ok {
		return nil
	}
	if err := ds.DecodeDomain(d, raw); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Write replaces the stored value of every domain present in data.
func (s *Store) Write(ctx context.Context, data model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(&data, data.Domains())
}

// MergeSelective merges every domain present in p into the store. Replace
// domains are overwritten; append-only domains gain the records whose IDs are
// not stored yet; system categories are always kept.
//
// All domain files are staged before any is replaced. A failure while
// staging or replacing leaves the store untouched.
func (s *Store) MergeSelective(ctx context.Context, p model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readAll()
	if err != nil {
		return fmt.Errorf("reading current data: %w", err)
	}

	next := model.Dataset{}
	domains := p.Domains()
	for _, d := range domains {
		next.CopyDomain(&current, d)
		merge := mergers[d]
		if merge == nil {
			merge = replace(d)
		}
		merge(&next, &p)
	}
	if err := s.commit(&next, domains); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("domains merged", "domains", len(domains), "dir", s.dir)
	return nil
}

// staged is a domain file written to tmp, waiting to replace path. prev is
// nil when path did not exist.
type staged struct {
	tmp, path string
	prev      []byte
}

func (s *Store) commit(next *model.Dataset, domains []model.Domain) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	var files []staged
	cleanup := func() {
		for _, f := range files {
			_ = os.Remove(f.tmp)
		}
	}

	for _, d := range domains {
		if d == model.DomainSettings {
			continue
		}
		var one model.Dataset
		one.CopyDomain(next, d)
		data, err := json.MarshalIndent(one, "", "  ")
		if err != nil {
			cleanup()
			return fmt.Errorf("marshaling %s: %w", d, err)
		}
		path := s.domainPath(d)
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			cleanup()
			return fmt.Errorf("staging %s: %w", d, err)
		}
		files = append(files, staged{tmp: tmp, path: path})
	}

	var prevSettings *model.Settings
	if next.Settings != nil && s.settings != nil {
		cur := s.settings.Settings()
		if err := s.settings.ApplySettings(*next.Settings); err != nil {
			cleanup()
			return fmt.Errorf("applying settings: %w", err)
		}
		prevSettings = &cur
	}

	for i := range files {
		if err := replaceFile(&files[i]); err != nil {
			cleanup()
			s.rollback(files[:i], prevSettings)
			return err
		}
	}
	return nil
}

// replaceFile keeps the current content of f.path in f.prev, then moves the
// staged file into place.
func replaceFile(f *staged) error {
	prev, err := os.ReadFile(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", f.path, err)
	}
	f.prev = prev
	if err := os.Rename(f.tmp, f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// rollback restores replaced domain files and settings after a failed commit.
func (s *Store) rollback(replaced []staged, settings *model.Settings) {
	for _, f := range replaced {
		if f.prev == nil {
			_ = os.Remove(f.path)
			continue
		}
		_ = os.WriteFile(f.path, f.prev, 0o644)
	}
	if settings != nil {
		_ = s.settings.ApplySettings(*settings)
	}
}
