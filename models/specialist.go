package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
)

// SlotMap maps a key (a YYYY-MM-DD date or a weekday name) to the time
// slots offered on it. Stored as jsonb.
type SlotMap map[string][]string

func (s SlotMap) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

func (s *SlotMap) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*s = SlotMap{}
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

// Keys returns the keys that have at least one slot, sorted ascending.
func (s SlotMap) Keys() []string {
	keys := make([]string, 0, len(s))
	for k, slots := range s {
		if len(slots) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Specialist is a doctor bookable through the scheduling flow. Availability
// is a static lookup keyed by date; it is never derived from WeeklySchedule.
type Specialist struct {
	ID              int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name            string     `gorm:"not null" json:"name" binding:"required"`
	Specialty       string     `gorm:"not null;index" json:"specialty" binding:"required"`
	Address         string     `json:"address"`
	Phone           string     `json:"phone"`
	PhotoURL        string     `json:"photoUrl"`
	ConsultationFee float64    `gorm:"type:decimal(10,2)" json:"consultationFee"`
	Biography       string     `gorm:"type:text" json:"biography"`
	MedicalCenterID string     `gorm:"index;not null" json:"medicalCenterId" binding:"required"`
	Availability    SlotMap    `gorm:"type:jsonb;default:'{}'" json:"availability"`
	WeeklySchedule  SlotMap    `gorm:"type:jsonb;default:'{}'" json:"weeklySchedule"`
	Status          Visibility `gorm:"type:varchar(10);default:'visible'" json:"status"`
}

func (s Specialist) EntityID() int64 { return s.ID }
