package model

import "time"

// Profile describes the wallet owner.
type Profile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Currency  string    `json:"currency"` // ISO 4217 code
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings holds profile-scoped display settings carried in backups.
type Settings struct {
	ShowScrollbars bool `json:"showScrollbars"`
}
