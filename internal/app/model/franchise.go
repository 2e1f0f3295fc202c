package model

import (
	"time"

	"gorm.io/gorm"
)

type Franchise struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	Name      string           `gorm:"not null;index" json:"name"`
	Stores    []Store          `gorm:"foreignKey:FranchiseID;constraint:OnDelete:CASCADE" json:"stores"`
	Admins    []FranchiseAdmin `gorm:"-" json:"admins,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (Franchise) TableName() string {
	return "franchises"
}

// FranchiseAdmin is the public view of a user granted the franchisee role
// for a franchise. Resolved from user_roles on read, never persisted here.
type FranchiseAdmin struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Store struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	FranchiseID uint           `gorm:"not null;index" json:"franchise_id"`
	Name        string         `gorm:"not null" json:"name"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}
