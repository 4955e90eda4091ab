package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"rclinic-backend/models"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

const (
	referralLinkBase    = "https://rclinic.ec/#/registro-cliente?ref="
	referralCodeSuffix  = 4
	CommissionRate      = 0.15
	CommissionMonths    = 12
	referralCodeRetries = 5
)

var (
	ErrReferrerNotFound    = errors.New("referrer not found")
	ErrReferrerNotPending  = errors.New("referrer is not pending")
	ErrReferralSignIn      = errors.New("invalid, unapproved or inactive referral code")
	ErrInvalidRegistration = errors.New("invalid referral registration")
)

type ReferralRegistration struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type ReferralDashboard struct {
	Referrer         models.Referrer `json:"referrer"`
	ReferralLink     string          `json:"referralLink"`
	CommissionRate   float64         `json:"commissionRate"`
	CommissionMonths int             `json:"commissionMonths"`
}

type ReferralService struct {
	stores *store.Stores
	now    func() time.Time
}

func NewReferralService(stores *store.Stores, now func() time.Time) *ReferralService {
	return &ReferralService{stores: stores, now: now}
}

// ReferralCodePrefix is the upper-cased first word of name.
func ReferralCodePrefix(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// Register signs up a referrer. New referrers start pending and active.
func (s *ReferralService) Register(ctx context.Context, in ReferralRegistration) (models.Referrer, error) {
	prefix := ReferralCodePrefix(in.Name)
	if prefix == "" {
		return models.Referrer{}, fmt.Errorf("%w: name is required", ErrInvalidRegistration)
	}
	if !utils.ValidatePhone(in.Phone) {
		return models.Referrer{}, fmt.Errorf("%w: invalid phone number", ErrInvalidRegistration)
	}

	existing, err := s.stores.Referrers.List(ctx)
	if err != nil {
		return models.Referrer{}, err
	}
	taken := make(map[string]bool, len(existing))
	for _, r := range existing {
		taken[r.ReferralCode] = true
	}

	var code string
	for attempt := 0; attempt < referralCodeRetries; attempt++ {
		suffix, err := utils.RandomBase36(referralCodeSuffix)
		if err != nil {
			return models.Referrer{}, err
		}
		if !taken[prefix+suffix] {
			code = prefix + suffix
			break
		}
	}
	if code == "" {
		return models.Referrer{}, fmt.Errorf("generate referral code: %d collisions in a row", referralCodeRetries)
	}

	now := s.now()
	id, err := store.NextNumericID(ctx, s.stores.Referrers, now.UnixMilli())
	if err != nil {
		return models.Referrer{}, err
	}
	referrer, err := s.stores.Referrers.Create(ctx, models.Referrer{
		ID:             id,
		Name:           strings.TrimSpace(in.Name),
		Email:          strings.TrimSpace(in.Email),
		Phone:          utils.NormalizePhone(in.Phone),
		Status:         models.ReferrerPending,
		ReferralCode:   code,
		CreatedAt:      now,
		ActivityStatus: models.Active,
	})
	if err != nil {
		return models.Referrer{}, err
	}
	log.Info().Int64("referrerId", referrer.ID).Str("code", code).Msg("referrer registered")
	return referrer, nil
}

func (s *ReferralService) List(ctx context.Context) ([]models.Referrer, error) {
	return s.stores.Referrers.List(ctx)
}

func (s *ReferralService) Approve(ctx context.Context, id int64) (models.Referrer, error) {
	return s.decide(ctx, id, models.ReferrerApproved)
}

func (s *ReferralService) Reject(ctx context.Context, id int64) (models.Referrer, error) {
	return s.decide(ctx, id, models.ReferrerRejected)
}

func (s *ReferralService) decide(ctx context.Context, id int64, to models.ReferrerStatus) (models.Referrer, error) {
	return s.mutate(ctx, id, func(r models.Referrer) (models.Referrer, error) {
		if r.Status != models.ReferrerPending {
			return r, ErrReferrerNotPending
		}
		r.Status = to
		return r, nil
	})
}

// ToggleActivity flips active/inactive.
func (s *ReferralService) ToggleActivity(ctx context.Context, id int64) (models.Referrer, error) {
	return s.mutate(ctx, id, func(r models.Referrer) (models.Referrer, error) {
		r.ActivityStatus = r.ActivityStatus.Toggle()
		return r, nil
	})
}

func (s *ReferralService) mutate(ctx context.Context, id int64, fn func(models.Referrer) (models.Referrer, error)) (models.Referrer, error) {
	r, err := s.stores.Referrers.Mutate(ctx, id, fn)
	if errors.Is(err, store.ErrNotFound) {
		return r, ErrReferrerNotFound
	}
	return r, err
}

// SignIn matches the code upper-cased; only approved, active referrers get
// in.
func (s *ReferralService) SignIn(ctx context.Context, code string) (models.Referrer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	matches, err := store.Filter(ctx, s.stores.Referrers, func(r models.Referrer) bool {
		return r.ReferralCode == code
	})
	if err != nil {
		return models.Referrer{}, err
	}
	if len(matches) == 0 || !matches[0].CanSignIn() {
		return models.Referrer{}, ErrReferralSignIn
	}
	return matches[0], nil
}

// Dashboard is what a signed-in referrer sees.
func (s *ReferralService) Dashboard(ctx context.Context, code string) (ReferralDashboard, error) {
	r, err := s.SignIn(ctx, code)
	if err != nil {
		return ReferralDashboard{}, err
	}
	return ReferralDashboard{
		Referrer:         r,
		ReferralLink:     ReferralLink(r.ReferralCode),
		CommissionRate:   CommissionRate,
		CommissionMonths: CommissionMonths,
	}, nil
}

func ReferralLink(code string) string {
	return referralLinkBase + code
}
