package prefs

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Theme values.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Preferences is the full set of persisted user preferences.
type Preferences struct {
	Theme           string                        `yaml:"theme"`
	HighContrast    bool                          `yaml:"high_contrast"`
	LargeText       bool                          `yaml:"large_text"`
	ReduceMotion    bool                          `yaml:"reduce_motion"`
	ShowScrollbars  bool                          `yaml:"show_scrollbars"`
	SoundsEnabled   bool                          `yaml:"sounds_enabled"`
	MasterVolume    int                           `yaml:"master_volume"`
	CloudSync       bool                          `yaml:"cloud_sync"`
	BiometricUnlock bool                          `yaml:"biometric_unlock"`
	Sounds          map[ActivityKind]SoundSetting `yaml:"sounds"`
}

// Defaults returns the preferences of a fresh wallet.
func Defaults() Preferences {
	p := Preferences{
		Theme:          ThemeSystem,
		ShowScrollbars: true,
		SoundsEnabled:  true,
		MasterVolume:   80,
		Sounds:         make(map[ActivityKind]SoundSetting, len(activityDefaults)),
	}
	for _, a := range activityDefaults {
		p.Sounds[a.kind] = SoundSetting{Enabled: a.enabled, Volume: a.volume}
	}
	return p
}

func (p Preferences) clone() Preferences {
	out := p
	out.Sounds = make(map[ActivityKind]SoundSetting, len(p.Sounds))
	for k, v := range p.Sounds {
		out.Sounds[k] = v
	}
	return out
}

// Sound returns the effective sound for an activity. A disabled master
// switch silences every activity.
func (p Preferences) Sound(kind ActivityKind) SoundSetting {
	s := p.Sounds[kind]
	if !p.SoundsEnabled {
		s.Enabled = false
	}
	s.Volume = s.Volume * p.MasterVolume / 100
	return s
}

// key is one addressable preference.
type key struct {
	name string
	get  func(*Preferences) string
	set  func(*Preferences, string) error
}

func boolKey(name string, field func(*Preferences) *bool) key {
	return key{
		name: name,
		get:  func(p *Preferences) string { return strconv.FormatBool(*field(p)) },
		set: func(p *Preferences, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: expected true or false, got %q", name, v)
			}
			*field(p) = b
			return nil
		},
	}
}

func volumeKey(name string, field func(*Preferences) *int) key {
	return key{
		name: name,
		get:  func(p *Preferences) string { return strconv.Itoa(*field(p)) },
		set: func(p *Preferences, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 || n > 100 {
				return fmt.Errorf("%s: expected 0-100, got %q", name, v)
			}
			*field(p) = n
			return nil
		},
	}
}

func soundKeys(kind ActivityKind) []key {
	prefix := "sounds." + string(kind)
	return []key{
		{
			name: prefix + ".enabled",
			get:  func(p *Preferences) string { return strconv.FormatBool(p.Sounds[kind].Enabled) },
			set: func(p *Preferences, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return fmt.Errorf("%s.enabled: expected true or false, got %q", prefix, v)
				}
				s := p.Sounds[kind]
				s.Enabled = b
				p.Sounds[kind] = s
				return nil
			},
		},
		{
			name: prefix + ".volume",
			get:  func(p *Preferences) string { return strconv.Itoa(p.Sounds[kind].Volume) },
			set: func(p *Preferences, v string) error {
				n, err := strconv.Atoi(v)
				if err != nil || n < 0 || n > 100 {
					return fmt.Errorf("%s.volume: expected 0-100, got %q", prefix, v)
				}
				s := p.Sounds[kind]
				s.Volume = n
				p.Sounds[kind] = s
				return nil
			},
		},
	}
}

var keys = func() []key {
	ks := []key{
		{
			name: "theme",
			get:  func(p *Preferences) string { return p.Theme },
			set: func(p *Preferences, v string) error {
				v = strings.ToLower(v)
				if !slices.Contains([]string{ThemeLight, ThemeDark, ThemeSystem}, v) {
					return fmt.Errorf("theme: expected light, dark or system, got %q", v)
				}
				p.Theme = v
				return nil
			},
		},
		boolKey("high_contrast", func(p *Preferences) *bool { return &p.HighContrast }),
		boolKey("large_text", func(p *Preferences) *bool { return &p.LargeText }),
		boolKey("reduce_motion", func(p *Preferences) *bool { return &p.ReduceMotion }),
		boolKey("show_scrollbars", func(p *Preferences) *bool { return &p.ShowScrollbars }),
		boolKey("sounds_enabled", func(p *Preferences) *bool { return &p.SoundsEnabled }),
		volumeKey("master_volume", func(p *Preferences) *int { return &p.MasterVolume }),
		boolKey("cloud_sync", func(p *Preferences) *bool { return &p.CloudSync }),
		boolKey("biometric_unlock", func(p *Preferences) *bool { return &p.BiometricUnlock }),
	}
	for _, kind := range AllActivities() {
		ks = append(ks, soundKeys(kind)...)
	}
	return ks
}()

func lookup(name string) (key, bool) {
	for _, k := range keys {
		if k.name == name {
			return k, true
		}
	}
	return key{}, false
}

// Keys returns every preference key in display order.
func Keys() []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.name
	}
	return out
}
