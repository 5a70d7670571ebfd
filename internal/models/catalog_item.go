package models

import "time"

// CatalogItem: one orderable supply item (coffee beans, milk, cups...).
// SKU is the supplier's code and is what the pending order is keyed by.
type CatalogItem struct {
	ID        uint   `gorm:"primaryKey"`
	SKU       string `gorm:"size:50;not null;uniqueIndex"`
	Name      string `gorm:"size:100;not null"`
	Unit      string `gorm:"size:20;not null"` // case, bag, tub...
	CreatedAt time.Time
	UpdatedAt time.Time
}
