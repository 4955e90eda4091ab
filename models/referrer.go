package models

import "time"

// Referrer is a participant of the referral program. Only approved and
// active referrers can sign in to the referral portal.
type Referrer struct {
	ID             int64          `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"not null" json:"email"`
	Phone          string         `json:"phone"`
	Status         ReferrerStatus `gorm:"type:varchar(10);default:'pending'" json:"status"`
	ReferralCode   string         `gorm:"uniqueIndex;not null" json:"referralCode"`
	CreatedAt      time.Time      `json:"createdAt"`
	ActivityStatus ActivityStatus `gorm:"type:varchar(10);default:'active'" json:"activityStatus"`
}

func (r Referrer) EntityID() int64 { return r.ID }

// CanSignIn reports whether the referrer may use the portal.
func (r Referrer) CanSignIn() bool {
	return r.Status == ReferrerApproved && r.ActivityStatus == Active
}
