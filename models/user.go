package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Employee is its own lane: employees act on assigned orders
// but cannot see other users' orders the way admins can.
const (
	RoleUser       = "user"
	RoleEmployee   = "employee"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Verification statuses for the KYC check a user must pass before ordering.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// User represents an account on the platform (customer or staff)
type User struct {
	ID                 string    `gorm:"primaryKey;type:uuid" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Password           string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FirstName          string    `gorm:"not null" json:"first_name"`
	LastName           string    `gorm:"not null" json:"last_name"`
	Phone              string    `json:"phone"`
	Role               string    `gorm:"not null;default:'user';index" json:"role"`
	VerificationStatus string    `gorm:"not null;default:'pending';index" json:"verification_status"`
	IDPhotoPath        *string   `json:"id_photo_path"` // verification evidence
	SelfiePath         *string   `json:"selfie_path"`
	ProfileImageURL    *string   `json:"profile_image_url"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key so postgres and the sqlite
// test database behave identically.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ValidRole reports whether role is one of the four defined roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleEmployee, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// ValidVerificationStatus reports whether status is a defined verification state.
func ValidVerificationStatus(status string) bool {
	switch status {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}
