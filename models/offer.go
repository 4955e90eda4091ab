package models

// Offer is a promotional health benefit listing.
type Offer struct {
	ID        int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Icon      string     `json:"icon"`
	Highlight string     `json:"highlight"`
	Category  string     `gorm:"not null" json:"category" binding:"required"`
	Title     string     `gorm:"not null" json:"title" binding:"required"`
	Provider  string     `gorm:"not null" json:"provider" binding:"required"`
	Price     *float64   `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	Status    Visibility `gorm:"type:varchar(10);default:'visible'" json:"status"`
	Placement Placement  `gorm:"type:varchar(10);default:'featured'" json:"placement"`
}

func (o Offer) EntityID() int64 { return o.ID }
