package models

import (
	"strings"
	"time"
)

// ScheduleUser is a staff account for the medical agenda portal. Doctors are
// linked to exactly one specialist; admins see their whole medical center.
type ScheduleUser struct {
	ID              int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	FirstName       string     `gorm:"not null" json:"firstName" binding:"required"`
	LastName        string     `gorm:"not null" json:"lastName" binding:"required"`
	Username        string     `gorm:"uniqueIndex;not null" json:"username" binding:"required"`
	Email           string     `gorm:"not null" json:"email" binding:"required,email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	MedicalCenterID string     `gorm:"type:varchar(64);index;not null" json:"medicalCenterId" binding:"required"`
	Status          Visibility `gorm:"type:varchar(10);default:'visible'" json:"status"`
	Role            Role       `gorm:"type:varchar(20);not null" json:"role" binding:"required,oneof=admin doctor"`
	SpecialistID    *int64     `gorm:"index" json:"specialistId,omitempty"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	// Write-only form fields. They are hashed into PasswordHash and cleared
	// before the record is stored.
	Password        string `gorm:"-" json:"password,omitempty"`
	ConfirmPassword string `gorm:"-" json:"confirmPassword,omitempty"`
}

func (u ScheduleUser) EntityID() int64 { return u.ID }

// FullName joins first and last name.
func (u ScheduleUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
