package model

import (
	"time"

	"gorm.io/gorm"
)

type RoleName string

const (
	RoleDiner      RoleName = "diner"      // default role for registered users
	RoleFranchisee RoleName = "franchisee" // scoped to a single franchise
	RoleAdmin      RoleName = "admin"      // global administrator
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Roles        []UserRole     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"roles"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserRole is one role grant. FranchiseID is set only for franchise-scoped
// grants; global roles (diner, admin) leave it nil.
type UserRole struct {
	ID          uint     `gorm:"primarykey" json:"-"`
	UserID      uint     `gorm:"not null;index" json:"-"`
	Role        RoleName `gorm:"type:varchar(20);not null" json:"role"`
	FranchiseID *uint    `gorm:"index" json:"franchise_id,omitempty"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// IsAdmin reports whether the user holds the global admin role.
func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r.Role == RoleAdmin {
			return true
		}
	}
	return false
}

// IsFranchiseeOf reports whether the user holds a franchisee role scoped to
// the given franchise.
func (u *User) IsFranchiseeOf(franchiseID uint) bool {
	for _, r := range u.Roles {
		if r.Role == RoleFranchisee && r.FranchiseID != nil && *r.FranchiseID == franchiseID {
			return true
		}
	}
	return false
}

// HasRole reports whether the user holds the given role in any scope.
func (u *User) HasRole(role RoleName) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}
