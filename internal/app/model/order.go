package model

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	FranchiseID uint           `gorm:"not null;index" json:"franchise_id"`
	StoreID     uint           `gorm:"not null;index" json:"store_id"`
	Items       []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	FactoryJWT  string         `gorm:"type:text" json:"-"`
	ReportURL   string         `gorm:"type:text" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a client-supplied line item. Price and description are taken
// as submitted and are not re-validated against the menu catalog.
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"not null;index" json:"-"`
	MenuID      uint           `gorm:"not null" json:"menu_id"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
