package models

import "time"

// User roles. Regular users only see their own devices and zones;
// technicians and developers see everything.
const (
	RoleUser       = "user"
	RoleTechnician = "technician"
	RoleDeveloper  = "developer"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"default:user"`
	RefreshToken string    `json:"-"`
	LastLogin    time.Time `json:"lastLogin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
