package model

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Portfolio is a named group of holdings.
type Portfolio struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// Holding is one position in a portfolio.
type Holding struct {
	ID          string          `json:"id"`
	PortfolioID string          `json:"portfolioId,omitempty"`
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"averageCost"`
}

// NullID is a nullable reference to another record.
// It encodes as a JSON string, or null when not Valid.
type NullID struct {
	ID    string
	Valid bool
}

// SomeID returns a valid reference to id.
func SomeID(id string) *NullID { return &NullID{ID: id, Valid: true} }

// NoID returns a present-but-null reference.
func NoID() *NullID { return &NullID{} }

func (n NullID) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.ID)
}

func (n *NullID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = NullID{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = NullID{ID: s, Valid: true}
	return nil
}
