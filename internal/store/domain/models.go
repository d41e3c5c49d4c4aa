package domain

import "time"

// Store is an installed merchant shop. The platform domain is the
// natural key; one row per install.
type Store struct {
	Name        string `gorm:"primaryKey" json:"name"`
	AccessToken string `gorm:"not null" json:"-"`
	// LastAbandonedCheckoutSync is the lower bound cursor for the next
	// abandoned-checkout sweep. NULL until the first sweep runs.
	LastAbandonedCheckoutSync *time.Time `json:"last_abandoned_checkout_sync,omitempty"`
	CreatedAt                 time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt                 time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
