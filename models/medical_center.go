package models

// MedicalCenter is keyed by a string slug such as "kennedy".
type MedicalCenter struct {
	ID      string     `gorm:"primaryKey" json:"id"`
	Name    string     `gorm:"not null" json:"name" binding:"required"`
	Address string     `json:"address"`
	City    string     `gorm:"index;not null" json:"city" binding:"required"`
	Sector  string     `json:"sector"`
	LogoURL string     `json:"logoUrl"`
	Slogan  string     `json:"slogan,omitempty"`
	Status  Visibility `gorm:"type:varchar(10);default:'visible'" json:"status"`
}

func (m MedicalCenter) EntityID() string { return m.ID }
