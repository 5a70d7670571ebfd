package models

import "time"

// PastryPrice: current unit price for a pastry item, keyed by display name.
// Lookups are case-sensitive exact match; prices are rounded to 2 decimals
// before they are written.
type PastryPrice struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null;uniqueIndex"`
	Price     float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
