package services

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"sort"

	"rclinic-backend/models"
	"rclinic-backend/store"
)

// WeekDays are the configurable consultation days.
var WeekDays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}

var (
	ErrSpecialistNotFound = errors.New("specialist not found")
	ErrUnknownWeekDay     = errors.New("unknown week day")
	ErrInvalidSlotTime    = errors.New("time must be HH:MM")
)

var slotTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type ScheduleConfigService struct {
	stores *store.Stores
}

func NewScheduleConfigService(stores *store.Stores) *ScheduleConfigService {
	return &ScheduleConfigService{stores: stores}
}

// Doctors lists the specialists of a center.
func (s *ScheduleConfigService) Doctors(ctx context.Context, centerID string) ([]models.Specialist, error) {
	return store.Filter(ctx, s.stores.Specialists, func(sp models.Specialist) bool {
		return sp.MedicalCenterID == centerID
	})
}

// Weekly returns the specialist's schedule with an entry for every week day.
func (s *ScheduleConfigService) Weekly(ctx context.Context, specialistID int64) (models.SlotMap, error) {
	sp, err := s.stores.Specialists.Get(ctx, specialistID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSpecialistNotFound
	}
	if err != nil {
		return nil, err
	}
	out := make(models.SlotMap, len(WeekDays))
	for _, d := range WeekDays {
		out[d] = append([]string{}, sp.WeeklySchedule[d]...)
	}
	return out, nil
}

// AddTime adds t to day, keeping the list sorted and free of duplicates.
func (s *ScheduleConfigService) AddTime(ctx context.Context, specialistID int64, day, t string) (models.SlotMap, error) {
	if !slotTime.MatchString(t) {
		return nil, ErrInvalidSlotTime
	}
	return s.update(ctx, specialistID, day, func(times []string) []string {
		if slices.Contains(times, t) {
			return times
		}
		times = append(times, t)
		sort.Strings(times)
		return times
	})
}

func (s *ScheduleConfigService) RemoveTime(ctx context.Context, specialistID int64, day, t string) (models.SlotMap, error) {
	return s.update(ctx, specialistID, day, func(times []string) []string {
		return slices.DeleteFunc(times, func(x string) bool { return x == t })
	})
}

func (s *ScheduleConfigService) update(ctx context.Context, specialistID int64, day string, fn func([]string) []string) (models.SlotMap, error) {
	if !slices.Contains(WeekDays, day) {
		return nil, ErrUnknownWeekDay
	}
	sp, err := s.stores.Specialists.Mutate(ctx, specialistID, func(sp models.Specialist) (models.Specialist, error) {
		// The stored map may be shared with earlier readers; never edit it
		// in place.
		next := make(models.SlotMap, len(sp.WeeklySchedule)+1)
		for k, v := range sp.WeeklySchedule {
			next[k] = append([]string{}, v...)
		}
		next[day] = fn(next[day])
		if len(next[day]) == 0 {
			delete(next, day)
		}
		sp.WeeklySchedule = next
		return sp, nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSpecialistNotFound
	}
	if err != nil {
		return nil, err
	}
	return sp.WeeklySchedule, nil
}
