package backup

import (
	"fmt"

	"github.com/mywallet-dev/mywallet/internal/model"
)

// ValidationError describes one problem with a decoded domain. Index is the
// offending record's position, or -1 for scalar domains.
type ValidationError struct {
	Domain      model.Domain
	Index       int
	Description string
}

func (e ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Domain, e.Description)
	}
	return fmt.Sprintf("%s[%d]: %s", e.Domain, e.Index, e.Description)
}

// ValidateDomain checks the decoded value of domain d. Sequence records need
// a unique, non-empty ID; the emergency fund may not be negative; a set
// active portfolio reference must name a portfolio.
func ValidateDomain(ds *model.Dataset, d model.Domain) []ValidationError {
	if !ds.Has(d) {
		return nil
	}
	var errs []ValidationError

	if d.Kind() == model.KindSequence {
		seen := make(map[string]int)
		for i, recID := range ds.IDs(d) {
			if recID == "" {
				errs = append(errs, ValidationError{Domain: d, Index: i, Description: "missing id"})
				continue
			}
			if first, dup := seen[recID]; dup {
				errs = append(errs, ValidationError{
					Domain:      d,
					Index:       i,
					Description: fmt.Sprintf("duplicate id %q (first at %d)", recID, first),
				})
				continue
			}
			seen[recID] = i
		}
		return errs
	}

	switch d {
	case model.DomainEmergencyFund:
		if ds.EmergencyFund.IsNegative() {
			errs = append(errs, ValidationError{
				Domain:      d,
				Index:       -1,
				Description: fmt.Sprintf("negative amount %s", ds.EmergencyFund.String()),
			})
		}
	case model.DomainActivePortfolioID:
		if ref := ds.ActivePortfolioID; ref.Valid && ref.ID == "" {
			errs = append(errs, ValidationError{Domain: d, Index: -1, Description: "empty portfolio id"})
		}
	}
	return errs
}
