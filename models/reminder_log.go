// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MedicalCenterID string    `gorm:"type:varchar(64);index" json:"medicalCenterId"`
	AppointmentID   int64     `gorm:"index;not null" json:"appointmentId"`
	TemplateID      uuid.UUID `gorm:"type:uuid" json:"templateId"`
	Message         string    `gorm:"type:text" json:"message"`
	Status          string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage    string    `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel         string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms, log
	SentAt          time.Time `json:"sentAt"`
}

func (r ReminderLog) EntityID() uuid.UUID { return r.ID }

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
