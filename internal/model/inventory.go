package model

import "time"

// InventoryItem is one thing the household has on hand.
// It is owned by the inventory collaborator; the engine only reads it.
type InventoryItem struct {
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	CanonicalID *string    `json:"canonical_id,omitempty" yaml:"canonical_id,omitempty"`
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Unit        string     `json:"unit" yaml:"unit"`
	Category    string     `json:"category" yaml:"category"`
	Location    string     `json:"location" yaml:"location"`
	Quantity    float64    `json:"quantity" yaml:"quantity"`
}

// ExpiresWithin reports whether the item expires at or before now+window.
// Items that already expired count as expiring.
func (i InventoryItem) ExpiresWithin(now time.Time, window time.Duration) bool {
	if i.ExpiresAt == nil {
		return false
	}
	return !i.ExpiresAt.After(now.Add(window))
}

// InStock reports whether the item has a positive quantity.
func (i InventoryItem) InStock() bool {
	return i.Quantity > 0
}
