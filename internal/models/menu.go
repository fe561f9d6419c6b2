package models

import "github.com/jinzhu/gorm"

// MenuItem is a row in the menu_items table. Name is unique, matched
// case-insensitively everywhere. Quantity must never go negative; the
// inventory store enforces that on every update, not just at creation.
type MenuItem struct {
	gorm.Model  `json:"-"`
	Name        string  `gorm:"unique_index;not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
}

// TableName keeps the durable schema contract with seeding/import tooling.
func (MenuItem) TableName() string {
	return "menu_items"
}

// InStock reports whether the item can currently be ordered at all.
func (m *MenuItem) InStock() bool {
	return m.Quantity > 0
}
