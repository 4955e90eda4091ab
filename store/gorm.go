package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rclinic-backend/models"
)

// GormRepository persists T in the table gorm derives from it.
type GormRepository[T Entity[K], K comparable] struct {
	db *gorm.DB
}

func NewGormRepository[T Entity[K], K comparable](db *gorm.DB) *GormRepository[T, K] {
	return &GormRepository[T, K]{db: db}
}

func (r *GormRepository[T, K]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return out, nil
}

func (r *GormRepository[T, K]) Get(ctx context.Context, id K) (T, error) {
	var rec T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, fmt.Errorf("get %v: %w", id, ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("get %v: %w", id, err)
	}
	return rec, nil
}

func (r *GormRepository[T, K]) Create(ctx context.Context, record T) (T, error) {
	err := r.db.WithContext(ctx).Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return record, fmt.Errorf("create %v: %w", record.EntityID(), ErrDuplicate)
	}
	if err != nil {
		return record, fmt.Errorf("create %v: %w", record.EntityID(), err)
	}
	return record, nil
}

func (r *GormRepository[T, K]) Update(ctx context.Context, record T) (T, error) {
	return r.Mutate(ctx, record.EntityID(), func(T) (T, error) {
		return record, nil
	})
}

func (r *GormRepository[T, K]) Delete(ctx context.Context, id K) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("delete %v: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete %v: %w", id, ErrNotFound)
	}
	return nil
}

// Mutate reads the row with SELECT ... FOR UPDATE inside a transaction, so
// two concurrent callers serialize on the row lock.
func (r *GormRepository[T, K]) Mutate(ctx context.Context, id K, fn func(T) (T, error)) (T, error) {
	var updated T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current T
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("mutate %v: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		if next.EntityID() != id {
			return fmt.Errorf("mutate %v: id changed to %v", id, next.EntityID())
		}
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// NewGormStores migrates every table and returns gorm-backed repositories.
// Tables that are still empty receive the matching slice of seed.
func NewGormStores(ctx context.Context, db *gorm.DB, seed SeedData) (*Stores, error) {
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Offer{},
		&models.Coupon{},
		&models.CouponInstance{},
		&models.Specialist{},
		&models.MedicalCenter{},
		&models.Associate{},
		&models.ScheduleUser{},
		&models.Referrer{},
		&models.Appointment{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	seeds := []struct {
		model   any
		records any
		n       int
	}{
		{&models.Offer{}, seed.Offers, len(seed.Offers)},
		{&models.Coupon{}, seed.Coupons, len(seed.Coupons)},
		{&models.CouponInstance{}, seed.CouponInstances, len(seed.CouponInstances)},
		{&models.Specialist{}, seed.Specialists, len(seed.Specialists)},
		{&models.MedicalCenter{}, seed.MedicalCenters, len(seed.MedicalCenters)},
		{&models.Associate{}, seed.Associates, len(seed.Associates)},
		{&models.ScheduleUser{}, seed.ScheduleUsers, len(seed.ScheduleUsers)},
		{&models.Referrer{}, seed.Referrers, len(seed.Referrers)},
		{&models.Appointment{}, seed.Appointments, len(seed.Appointments)},
		{&models.ReminderTemplate{}, seed.ReminderTemplates, len(seed.ReminderTemplates)},
	}
	for _, s := range seeds {
		if s.n == 0 {
			continue
		}
		var count int64
		if err := db.WithContext(ctx).Model(s.model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count seed table: %w", err)
		}
		if count > 0 {
			continue
		}
		if err := db.WithContext(ctx).Create(s.records).Error; err != nil {
			return nil, fmt.Errorf("seed table: %w", err)
		}
	}

	return &Stores{
		Offers:            NewGormRepository[models.Offer, int64](db),
		Coupons:           NewGormRepository[models.Coupon, int64](db),
		CouponInstances:   NewGormRepository[models.CouponInstance, string](db),
		Specialists:       NewGormRepository[models.Specialist, int64](db),
		MedicalCenters:    NewGormRepository[models.MedicalCenter, string](db),
		Associates:        NewGormRepository[models.Associate, int64](db),
		ScheduleUsers:     NewGormRepository[models.ScheduleUser, int64](db),
		Referrers:         NewGormRepository[models.Referrer, int64](db),
		Appointments:      NewGormRepository[models.Appointment, int64](db),
		ReminderTemplates: NewGormRepository[models.ReminderTemplate, uuid.UUID](db),
		ReminderLogs:      NewGormRepository[models.ReminderLog, uuid.UUID](db),
	}, nil
}
