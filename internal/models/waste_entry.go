package models

import "time"

// WasteDay: one daily log record. A date that has no row is the same as an
// empty entry list; UpdatedAt is the day's last-modified timestamp.
type WasteDay struct {
	ID        uint   `gorm:"primaryKey"`
	Date      string `gorm:"size:10;not null;uniqueIndex"` // YYYY-MM-DD
	UpdatedAt time.Time
}

// WasteEntry: one recorded instance of wasted pastry stock. UnitPrice is the
// price snapshot frozen at save time; nil means "resolve from the live price
// catalog at aggregation time".
type WasteEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Date      string `gorm:"size:10;not null;index"` // YYYY-MM-DD
	Position  int    `gorm:"not null"`               // submitted row order within the day
	Item      string `gorm:"size:100;not null"`
	Quantity  int    `gorm:"not null"`
	Reason    string `gorm:"size:30;not null"`
	UnitPrice *float64
	CreatedAt time.Time
}
