package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mywallet-dev/mywallet/internal/model"
)

// Store holds the preferences loaded from one file. Every mutation is
// persisted before it returns.
type Store struct {
	mu    sync.Mutex
	path  string
	prefs Preferences
}

// Load reads preferences from path. A missing file yields defaults; keys
// missing from the file keep their default values.
func Load(path string) (*Store, error) {
	p := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading preferences: %w", err)
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing preferences: %w", err)
		}
	}
	// Fill in activities added after the file was written.
	if p.Sounds == nil {
		p.Sounds = make(map[ActivityKind]SoundSetting)
	}
	for _, a := range activityDefaults {
		if _, ok := p.Sounds[a.kind]; !ok {
			p.Sounds[a.kind] = SoundSetting{Enabled: a.enabled, Volume: a.volume}
		}
	}
	for k := range p.Sounds {
		if !k.Valid() {
			delete(p.Sounds, k)
		}
	}
	return &Store{path: path, prefs: p}, nil
}

// Preferences returns a copy of the current preferences.
func (s *Store) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.clone()
}

// Get returns the string value of a preference key.
func (s *Store) Get(name string) (string, error) {
	k, ok := lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown preference %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return k.get(&s.prefs), nil
}

// Set parses value into the preference key and saves.
func (s *Store) Set(name, value string) error {
	k, ok := lookup(name)
	if !ok {
		return fmt.Errorf("unknown preference %q", name)
	}
	return s.update(func(p *Preferences) error { return k.set(p, value) })
}

// Reset restores one key to its default and saves.
func (s *Store) Reset(name string) error {
	k, ok := lookup(name)
	if !ok {
		return fmt.Errorf("unknown preference %q", name)
	}
	defaults := Defaults()
	return s.update(func(p *Preferences) error { return k.set(p, k.get(&defaults)) })
}

// ResetAll restores every key to its default and saves.
func (s *Store) ResetAll() error {
	return s.update(func(p *Preferences) error {
		*p = Defaults()
		return nil
	})
}

// Settings returns the profile settings carried in backups.
func (s *Store) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Settings{ShowScrollbars: s.prefs.ShowScrollbars}
}

// ApplySettings stores profile settings restored from a backup.
func (s *Store) ApplySettings(st model.Settings) error {
	return s.update(func(p *Preferences) error {
		p.ShowScrollbars = st.ShowScrollbars
		return nil
	})
}

// update applies fn to a copy and only commits it once saved.
func (s *Store) update(fn func(*Preferences) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := save(s.path, next); err != nil {
		return err
	}
	s.prefs = next
	return nil
}

// Save writes the current preferences to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(s.path, s.prefs)
}

func save(path string, p Preferences) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating preferences dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing preferences: %w", err)
	}
	return nil
}
