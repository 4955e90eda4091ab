// Package store holds the persistence boundary. Every entity is reached
// through a Repository so the in-memory demo data and the PostgreSQL backend
// are interchangeable.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rclinic-backend/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Entity is anything addressable by a comparable key.
type Entity[K comparable] interface {
	EntityID() K
}

// Repository is the CRUD contract shared by all backends. Update replaces the
// stored record wholesale: concurrent writers resolve as last writer wins.
// Mutate is the one read-modify-write primitive; fn runs while the record is
// locked, so it is the place for compare-and-set transitions.
type Repository[T Entity[K], K comparable] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id K) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id K) error
	Mutate(ctx context.Context, id K, fn func(T) (T, error)) (T, error)
}

// Stores bundles one repository per entity.
type Stores struct {
	Offers            Repository[models.Offer, int64]
	Coupons           Repository[models.Coupon, int64]
	CouponInstances   Repository[models.CouponInstance, string]
	Specialists       Repository[models.Specialist, int64]
	MedicalCenters    Repository[models.MedicalCenter, string]
	Associates        Repository[models.Associate, int64]
	ScheduleUsers     Repository[models.ScheduleUser, int64]
	Referrers         Repository[models.Referrer, int64]
	Appointments      Repository[models.Appointment, int64]
	ReminderTemplates Repository[models.ReminderTemplate, uuid.UUID]
	ReminderLogs      Repository[models.ReminderLog, uuid.UUID]
}

// Filter returns the records of repo for which keep returns true.
func Filter[T Entity[K], K comparable](ctx context.Context, repo Repository[T, K], keep func(T) bool) ([]T, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for _, rec := range all {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// NextNumericID returns a fresh int64 id: the wall-clock millisecond stamp,
// bumped past the largest id already stored.
func NextNumericID[T Entity[int64]](ctx context.Context, repo Repository[T, int64], nowMillis int64) (int64, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	next := nowMillis
	for _, rec := range all {
		if rec.EntityID() >= next {
			next = rec.EntityID() + 1
		}
	}
	return next, nil
}
