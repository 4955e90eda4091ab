package models

type Associate struct {
	ID      int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name    string     `gorm:"not null" json:"name" binding:"required"`
	LogoURL string     `json:"logoUrl"`
	Website string     `json:"website"`
	Status  Visibility `gorm:"type:varchar(10);default:'visible'" json:"status"`
}

func (a Associate) EntityID() int64 { return a.ID }
