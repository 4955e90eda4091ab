package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"rclinic-backend/metrics"
	"rclinic-backend/models"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

const (
	CouponCodePrefix  = "RCLINIC-"
	couponCodeLength  = 6
	couponCodeRetries = 5

	// RedeemedByPortal is recorded on every redemption made from the
	// partner verifier.
	RedeemedByPortal = "Portal de Aliados"
)

type CouponStatus string

const (
	CouponValid    CouponStatus = "valid"
	CouponRedeemed CouponStatus = "redeemed"
	CouponExpired  CouponStatus = "expired"
	CouponInvalid  CouponStatus = "invalid"
)

var ErrCouponNotFound = errors.New("coupon not found")

// NotRedeemableError is returned when a redeem finds the code in any state
// other than valid.
type NotRedeemableError struct {
	Status CouponStatus
}

func (e *NotRedeemableError) Error() string {
	return fmt.Sprintf("coupon cannot be redeemed: %s", e.Status)
}

// Verification is the verifier's view of one code.
type Verification struct {
	Status   CouponStatus           `json:"status"`
	Instance *models.CouponInstance `json:"instance,omitempty"`
	Coupon   *models.Coupon         `json:"coupon,omitempty"`
}

type RedemptionRecord struct {
	Code        string    `json:"code"`
	CouponTitle string    `json:"couponTitle"`
	BrandName   string    `json:"brandName"`
	RedeemedAt  time.Time `json:"redeemedAt"`
	RedeemedBy  string    `json:"redeemedBy"`
}

// ClassifyCoupon orders the checks invalid, redeemed, expired, valid: a
// redeemed code past its expiry still reports redeemed.
func ClassifyCoupon(instance *models.CouponInstance, coupon *models.Coupon, now time.Time) CouponStatus {
	switch {
	case instance == nil || coupon == nil:
		return CouponInvalid
	case instance.Status == models.InstanceRedeemed:
		return CouponRedeemed
	case coupon.Expired(now):
		return CouponExpired
	default:
		return CouponValid
	}
}

type CouponService struct {
	stores *store.Stores
	lock   RedemptionLock
	now    func() time.Time
}

func NewCouponService(stores *store.Stores, lock RedemptionLock, now func() time.Time) *CouponService {
	return &CouponService{stores: stores, lock: lock, now: now}
}

// VisibleCoupons lists the public coupons, optionally limited to one
// placement.
func (s *CouponService) VisibleCoupons(ctx context.Context, placement models.Placement) ([]models.Coupon, error) {
	return store.Filter(ctx, s.stores.Coupons, func(c models.Coupon) bool {
		return c.Status == models.Visible && (placement == "" || c.Placement == placement)
	})
}

// VisibleOffers lists the public offers, optionally limited to one
// placement.
func (s *CouponService) VisibleOffers(ctx context.Context, placement models.Placement) ([]models.Offer, error) {
	return store.Filter(ctx, s.stores.Offers, func(o models.Offer) bool {
		return o.Status == models.Visible && (placement == "" || o.Placement == placement)
	})
}

func (s *CouponService) CouponDetail(ctx context.Context, id int64) (models.Coupon, error) {
	coupon, err := s.stores.Coupons.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return coupon, ErrCouponNotFound
	}
	return coupon, err
}

// Generate issues a fresh code for the coupon template couponID.
func (s *CouponService) Generate(ctx context.Context, couponID int64) (models.CouponInstance, error) {
	if _, err := s.CouponDetail(ctx, couponID); err != nil {
		return models.CouponInstance{}, err
	}

	for attempt := 0; attempt < couponCodeRetries; attempt++ {
		suffix, err := utils.RandomBase36(couponCodeLength)
		if err != nil {
			return models.CouponInstance{}, fmt.Errorf("generate coupon code: %w", err)
		}
		instance, err := s.stores.CouponInstances.Create(ctx, models.CouponInstance{
			ID:          CouponCodePrefix + suffix,
			CouponID:    couponID,
			Status:      models.InstanceActive,
			GeneratedAt: s.now(),
		})
		if errors.Is(err, store.ErrDuplicate) {
			log.Debug().Str("code", CouponCodePrefix+suffix).Msg("coupon code collision, retrying")
			continue
		}
		if err != nil {
			return models.CouponInstance{}, err
		}
		log.Info().Str("code", instance.ID).Int64("couponId", couponID).Msg("coupon issued")
		return instance, nil
	}
	return models.CouponInstance{}, fmt.Errorf("generate coupon code: %d collisions in a row", couponCodeRetries)
}

// Verify looks the code up case-insensitively and classifies it.
func (s *CouponService) Verify(ctx context.Context, code string) (Verification, error) {
	v, err := s.verify(ctx, code)
	if err != nil {
		return v, err
	}
	metrics.RecordVerification(string(v.Status))
	return v, nil
}

func (s *CouponService) verify(ctx context.Context, code string) (Verification, error) {
	instance, err := s.stores.CouponInstances.Get(ctx, normalizeCode(code))
	if errors.Is(err, store.ErrNotFound) {
		return Verification{Status: CouponInvalid}, nil
	}
	if err != nil {
		return Verification{}, err
	}

	coupon, err := s.stores.Coupons.Get(ctx, instance.CouponID)
	if errors.Is(err, store.ErrNotFound) {
		return Verification{Status: CouponInvalid, Instance: &instance}, nil
	}
	if err != nil {
		return Verification{}, err
	}
	return Verification{
		Status:   ClassifyCoupon(&instance, &coupon, s.now()),
		Instance: &instance,
		Coupon:   &coupon,
	}, nil
}

// Redeem marks a valid code as redeemed. The state is re-checked under the
// redemption lock, so a stale client view cannot redeem twice.
func (s *CouponService) Redeem(ctx context.Context, code string) (models.CouponInstance, error) {
	code = normalizeCode(code)

	release, err := s.lock.Acquire(ctx, code)
	if err != nil {
		if errors.Is(err, ErrLockHeld) {
			metrics.RecordRedemption("locked")
		} else {
			metrics.RecordRedemption("error")
		}
		return models.CouponInstance{}, err
	}
	defer release()

	// The template is read before the row lock is taken; a code never
	// changes its template.
	coupon, err := s.templateOf(ctx, code)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		metrics.RecordRedemption("error")
		return models.CouponInstance{}, err
	}

	redeemed, err := s.stores.CouponInstances.Mutate(ctx, code, func(current models.CouponInstance) (models.CouponInstance, error) {
		now := s.now()
		if status := ClassifyCoupon(&current, coupon, now); status != CouponValid {
			return current, &NotRedeemableError{Status: status}
		}
		by := RedeemedByPortal
		current.Status = models.InstanceRedeemed
		current.RedeemedAt = &now
		current.RedeemedBy = &by
		return current, nil
	})
	if errors.Is(err, store.ErrNotFound) {
		err = &NotRedeemableError{Status: CouponInvalid}
	}

	var notRedeemable *NotRedeemableError
	switch {
	case errors.As(err, &notRedeemable):
		metrics.RecordRedemption("rejected")
		log.Info().Str("code", code).Str("status", string(notRedeemable.Status)).Msg("coupon redemption rejected")
		return models.CouponInstance{}, err
	case err != nil:
		metrics.RecordRedemption("error")
		return models.CouponInstance{}, err
	}

	metrics.RecordRedemption("redeemed")
	log.Info().Str("code", code).Msg("coupon redeemed")
	return redeemed, nil
}

// templateOf loads the coupon template of the instance code. A missing
// template is returned as nil with no error.
func (s *CouponService) templateOf(ctx context.Context, code string) (*models.Coupon, error) {
	instance, err := s.stores.CouponInstances.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	coupon, err := s.stores.Coupons.Get(ctx, instance.CouponID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// RedemptionHistory lists redeemed codes, newest first.
func (s *CouponService) RedemptionHistory(ctx context.Context) ([]RedemptionRecord, error) {
	redeemed, err := store.Filter(ctx, s.stores.CouponInstances, func(ci models.CouponInstance) bool {
		return ci.Status == models.InstanceRedeemed && ci.RedeemedAt != nil
	})
	if err != nil {
		return nil, err
	}
	coupons, err := s.stores.Coupons.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Coupon, len(coupons))
	for _, c := range coupons {
		byID[c.ID] = c
	}

	records := make([]RedemptionRecord, 0, len(redeemed))
	for _, ci := range redeemed {
		rec := RedemptionRecord{
			Code:        ci.ID,
			CouponTitle: "Desconocido",
			BrandName:   "N/A",
			RedeemedAt:  *ci.RedeemedAt,
		}
		if c, ok := byID[ci.CouponID]; ok {
			rec.CouponTitle = c.Title
			rec.BrandName = c.BrandName
		}
		if ci.RedeemedBy != nil {
			rec.RedeemedBy = *ci.RedeemedBy
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RedeemedAt.After(records[j].RedeemedAt)
	})
	return records, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
