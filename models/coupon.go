package models

import "time"

// Coupon is the template a redeemable CouponInstance is issued from.
type Coupon struct {
	ID              int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BrandName       string     `gorm:"not null" json:"brandName" binding:"required"`
	BrandLogoURL    string     `json:"brandLogoUrl"`
	ProductImageURL string     `json:"productImageUrl"`
	Discount        string     `gorm:"not null" json:"discount" binding:"required"`
	Title           string     `json:"title"`
	Details         string     `gorm:"type:text" json:"details"`
	Terms           string     `gorm:"type:text" json:"terms"`
	ExpiryDate      Date       `gorm:"type:char(10);not null" json:"expiryDate" binding:"required"`
	Status          Visibility `gorm:"type:varchar(10);default:'visible'" json:"status"`
	Placement       Placement  `gorm:"type:varchar(10);default:'featured'" json:"placement"`
}

func (c Coupon) EntityID() int64 { return c.ID }

// Expired reports whether midnight UTC of the expiry date is before now.
// An unreadable date counts as expired.
func (c Coupon) Expired(now time.Time) bool {
	expiry, err := c.ExpiryDate.Time()
	return err != nil || expiry.Before(now)
}

type CouponInstanceStatus string

const (
	InstanceActive   CouponInstanceStatus = "active"
	InstanceRedeemed CouponInstanceStatus = "redeemed"
)

// CouponInstance is one issued code. It is created once and mutated at most
// once, when it is redeemed.
type CouponInstance struct {
	ID          string               `gorm:"primaryKey" json:"id"`
	CouponID    int64                `gorm:"index;not null" json:"couponId"`
	Status      CouponInstanceStatus `gorm:"type:varchar(10);not null" json:"status"`
	GeneratedAt time.Time            `json:"generatedAt"`
	RedeemedAt  *time.Time           `json:"redeemedAt"`
	RedeemedBy  *string              `json:"redeemedBy"`
}

func (ci CouponInstance) EntityID() string { return ci.ID }
