package model

import "time"

// MenuItem is one entry in the global pizza catalog. The catalog is
// append-only; items are never updated or removed once published.
type MenuItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `gorm:"not null" json:"price"`
	CreatedAt   time.Time `json:"-"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
