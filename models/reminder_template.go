package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Placeholders understood by ReminderTemplate.Message.
const (
	PlaceholderPatient = "[PatientName]"
	PlaceholderDoctor  = "[Doctor]"
	PlaceholderDate    = "[Date]"
	PlaceholderTime    = "[Time]"
)

type ReminderTemplate struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MedicalCenterID string    `gorm:"type:varchar(64);index;not null" json:"medicalCenterId"`
	Message         string    `gorm:"type:text;not null" json:"message"`
	IsActive        bool      `gorm:"default:true" json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (t ReminderTemplate) EntityID() uuid.UUID { return t.ID }

func (t *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
