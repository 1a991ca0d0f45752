package backup

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mywallet-dev/mywallet/internal/model"
)

// Selection maps domains to whether they are selected. Missing keys are false.
type Selection map[model.Domain]bool

// SelectEverything returns a Selection with every known domain set.
func SelectEverything() Selection {
	return Select(model.AllDomains()...)
}

// Select returns a Selection with exactly the given domains set.
func Select(domains ...model.Domain) Selection {
	s := make(Selection, len(domains))
	for _, d := range domains {
		s[d] = true
	}
	return s
}

// ParseSelection parses a comma-separated domain list such as
// "transactions,goals".
func ParseSelection(list string) (Selection, error) {
	s := make(Selection)
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		d, err := model.ParseDomain(name)
		if err != nil {
			return nil, err
		}
		s[d] = true
	}
	return s, nil
}

// Clone returns an independent copy of s.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for d, v := range s {
		out[d] = v
	}
	return out
}

// Restrict returns a copy of s where every domain not in available is forced
// to false. Every known domain gets an explicit entry.
func (s Selection) Restrict(available []model.Domain) Selection {
	avail := make(map[model.Domain]bool, len(available))
	for _, d := range available {
		avail[d] = true
	}
	out := make(Selection, len(model.AllDomains()))
	for _, d := range model.AllDomains() {
		out[d] = avail[d] && s[d]
	}
	return out
}

// Normalize returns a copy of s where a domain whose parent is not selected
// is deselected.
func (s Selection) Normalize() Selection {
	out := s.Clone()
	for _, d := range model.AllDomains() {
		if p := d.Parent(); p != "" && !out[p] && out[d] {
			out[d] = false
		}
	}
	return out
}

// Selected returns the selected domains in canonical order.
func (s Selection) Selected() []model.Domain {
	var out []model.Domain
	for _, d := range model.AllDomains() {
		if s[d] {
			out = append(out, d)
		}
	}
	return out
}

// Any reports whether at least one domain is selected.
func (s Selection) Any() bool {
	return len(s.Selected()) > 0
}

func (s Selection) String() string {
	names := make([]string, 0, len(s))
	for _, d := range s.Selected() {
		names = append(names, string(d))
	}
	return strings.Join(names, ",")
}

// UnmarshalJSON ignores unknown domain names so that newer files stay readable.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding backup options: %w", err)
	}
	out := make(Selection, len(raw))
	for k, v := range raw {
		d := model.Domain(k)
		if d.Valid() {
			out[d] = v
		}
	}
	*s = out
	return nil
}
