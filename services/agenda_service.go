package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"rclinic-backend/models"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

var (
	ErrInvalidTransition    = errors.New("appointment status transition not allowed")
	ErrReminderCountChanged = errors.New("appointments to remind changed since confirmation")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrDoctorNotInCenter    = errors.New("doctor does not belong to this medical center")
	ErrUnknownBucket        = errors.New("unknown agenda bucket")
)

type Bucket string

const (
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketWeek     Bucket = "week"
)

const weekDays = 7

// ParseBucket defaults to today.
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case "", BucketToday:
		return BucketToday, nil
	case BucketTomorrow, BucketWeek:
		return Bucket(s), nil
	}
	return "", ErrUnknownBucket
}

// Viewer is the signed-in agenda user.
type Viewer struct {
	Role            models.Role
	MedicalCenterID string
	SpecialistID    *int64
}

// ViewerFromClaims maps token claims onto a Viewer.
func ViewerFromClaims(c *utils.Claims) Viewer {
	return Viewer{Role: c.Role, MedicalCenterID: c.MedicalCenterID, SpecialistID: c.SpecialistID}
}

// Scope is the set of specialists whose appointments a viewer sees.
type Scope map[int64]models.Specialist

func (s Scope) Contains(specialistID int64) bool {
	_, ok := s[specialistID]
	return ok
}

type AgendaEntry struct {
	models.Appointment
	SpecialistName string `json:"specialistName"`
}

type DayGroup struct {
	Date         string        `json:"date"`
	Appointments []AgendaEntry `json:"appointments"`
}

type Stats struct {
	Total    int                              `json:"total"`
	ByStatus map[models.AppointmentStatus]int `json:"byStatus"`
}

type AgendaStats struct {
	Today    Stats `json:"today"`
	Tomorrow Stats `json:"tomorrow"`
	Week     Stats `json:"week"`
}

type ReminderBatch struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Sent  int    `json:"sent"`
}

// InBucket reports whether the YYYY-MM-DD date falls in bucket, relative to
// today's local calendar date.
func InBucket(date string, bucket Bucket, today time.Time) bool {
	d, err := utils.ParseLocalDate(date, today.Location())
	if err != nil {
		return false
	}
	n := utils.DaysBetween(today, d)
	switch bucket {
	case BucketToday:
		return n == 0
	case BucketTomorrow:
		return n == 1
	case BucketWeek:
		return n >= 0 && n < weekDays
	}
	return false
}

// FilterBucket keeps the appointments in bucket.
func FilterBucket(apps []models.Appointment, bucket Bucket, today time.Time) []models.Appointment {
	out := make([]models.Appointment, 0, len(apps))
	for _, a := range apps {
		if InBucket(a.Date, bucket, today) {
			out = append(out, a)
		}
	}
	return out
}

// GroupByDate groups by date ascending, each day sorted by HH:MM time.
func GroupByDate(entries []AgendaEntry) []DayGroup {
	byDate := make(map[string][]AgendaEntry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	groups := make([]DayGroup, 0, len(dates))
	for _, d := range dates {
		day := byDate[d]
		sort.SliceStable(day, func(i, j int) bool { return day[i].Time < day[j].Time })
		groups = append(groups, DayGroup{Date: d, Appointments: day})
	}
	return groups
}

func ComputeStats(apps []models.Appointment) Stats {
	st := Stats{ByStatus: make(map[models.AppointmentStatus]int, len(models.AppointmentStatuses))}
	for _, s := range models.AppointmentStatuses {
		st.ByStatus[s] = 0
	}
	for _, a := range apps {
		st.Total++
		st.ByStatus[a.Status]++
	}
	return st
}

// AgendaService serves the medical agenda dashboard.
type AgendaService struct {
	stores    *store.Stores
	reminders *ReminderService
	loc       *time.Location
	now       func() time.Time
}

func NewAgendaService(stores *store.Stores, reminders *ReminderService, loc *time.Location, now func() time.Time) *AgendaService {
	return &AgendaService{stores: stores, reminders: reminders, loc: loc, now: now}
}

// Today is the current wall-clock time in the agenda time zone.
func (s *AgendaService) Today() time.Time {
	return s.now().In(s.loc)
}

// ResolveScope applies the role rules: a doctor sees only their own
// specialist, an admin sees every specialist of the center or, with
// doctorID set, one of them.
func (s *AgendaService) ResolveScope(ctx context.Context, v Viewer, doctorID *int64) (Scope, error) {
	if v.Role == models.RoleDoctor {
		scope := Scope{}
		if v.SpecialistID == nil {
			return scope, nil
		}
		sp, err := s.stores.Specialists.Get(ctx, *v.SpecialistID)
		if errors.Is(err, store.ErrNotFound) {
			sp = models.Specialist{ID: *v.SpecialistID}
		} else if err != nil {
			return nil, err
		}
		scope[sp.ID] = sp
		return scope, nil
	}

	inCenter, err := store.Filter(ctx, s.stores.Specialists, func(sp models.Specialist) bool {
		return sp.MedicalCenterID == v.MedicalCenterID
	})
	if err != nil {
		return nil, err
	}
	scope := make(Scope, len(inCenter))
	for _, sp := range inCenter {
		if doctorID == nil || sp.ID == *doctorID {
			scope[sp.ID] = sp
		}
	}
	if doctorID != nil && len(scope) == 0 {
		return nil, ErrDoctorNotInCenter
	}
	return scope, nil
}

// Doctors lists the specialists an admin can narrow the agenda to.
func (s *AgendaService) Doctors(ctx context.Context, v Viewer) ([]models.Specialist, error) {
	scope, err := s.ResolveScope(ctx, v, nil)
	if err != nil {
		return nil, err
	}
	out := make([]models.Specialist, 0, len(scope))
	for _, sp := range scope {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *AgendaService) scoped(ctx context.Context, scope Scope) ([]models.Appointment, error) {
	return store.Filter(ctx, s.stores.Appointments, func(a models.Appointment) bool {
		return scope.Contains(a.SpecialistID)
	})
}

// Agenda returns the viewer's appointments in bucket, grouped by day.
func (s *AgendaService) Agenda(ctx context.Context, v Viewer, doctorID *int64, bucket Bucket) ([]DayGroup, error) {
	scope, err := s.ResolveScope(ctx, v, doctorID)
	if err != nil {
		return nil, err
	}
	apps, err := s.scoped(ctx, scope)
	if err != nil {
		return nil, err
	}
	inBucket := FilterBucket(apps, bucket, s.Today())
	entries := make([]AgendaEntry, 0, len(inBucket))
	for _, a := range inBucket {
		entries = append(entries, AgendaEntry{Appointment: a, SpecialistName: scope[a.SpecialistID].Name})
	}
	return GroupByDate(entries), nil
}

func (s *AgendaService) Stats(ctx context.Context, v Viewer, doctorID *int64) (AgendaStats, error) {
	scope, err := s.ResolveScope(ctx, v, doctorID)
	if err != nil {
		return AgendaStats{}, err
	}
	apps, err := s.scoped(ctx, scope)
	if err != nil {
		return AgendaStats{}, err
	}
	today := s.Today()
	return AgendaStats{
		Today:    ComputeStats(FilterBucket(apps, BucketToday, today)),
		Tomorrow: ComputeStats(FilterBucket(apps, BucketTomorrow, today)),
		Week:     ComputeStats(FilterBucket(apps, BucketWeek, today)),
	}, nil
}

func (s *AgendaService) Confirm(ctx context.Context, v Viewer, id int64) (models.Appointment, error) {
	return s.transition(ctx, v, id, models.StatusConfirmed)
}

func (s *AgendaService) Cancel(ctx context.Context, v Viewer, id int64) (models.Appointment, error) {
	return s.transition(ctx, v, id, models.StatusCancelled)
}

func (s *AgendaService) Reschedule(ctx context.Context, v Viewer, id int64) (models.Appointment, error) {
	return s.transition(ctx, v, id, models.StatusReschedule)
}

// Only an appointment whose reminder went out can be confirmed, cancelled
// or rescheduled.
func (s *AgendaService) transition(ctx context.Context, v Viewer, id int64, to models.AppointmentStatus) (models.Appointment, error) {
	scope, err := s.ResolveScope(ctx, v, nil)
	if err != nil {
		return models.Appointment{}, err
	}
	updated, err := s.stores.Appointments.Mutate(ctx, id, func(a models.Appointment) (models.Appointment, error) {
		if !scope.Contains(a.SpecialistID) {
			return a, ErrAppointmentNotFound
		}
		if a.Status != models.StatusReminderSent {
			return a, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
		}
		a.Status = to
		return a, nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	if err != nil {
		return models.Appointment{}, err
	}
	log.Info().Int64("appointmentId", id).Str("status", string(to)).Msg("appointment status changed")
	return updated, nil
}

func (s *AgendaService) pending(ctx context.Context, scope Scope, date string) ([]models.Appointment, error) {
	return store.Filter(ctx, s.stores.Appointments, func(a models.Appointment) bool {
		return a.Date == date && a.Status == models.StatusScheduled && scope.Contains(a.SpecialistID)
	})
}

// PrepareReminders counts the viewer's scheduled appointments on date. The
// count is what the confirmation prompt shows; zero means there is nothing
// to confirm.
func (s *AgendaService) PrepareReminders(ctx context.Context, v Viewer, doctorID *int64, date string) (ReminderBatch, error) {
	scope, err := s.ResolveScope(ctx, v, doctorID)
	if err != nil {
		return ReminderBatch{}, err
	}
	apps, err := s.pending(ctx, scope, date)
	if err != nil {
		return ReminderBatch{}, err
	}
	return ReminderBatch{Date: date, Count: len(apps)}, nil
}

// SendReminders moves every scheduled appointment of the viewer on date to
// recordatorio-enviado and delivers one reminder each. expectedCount is the
// count the user confirmed; if the set changed meanwhile nothing is sent.
func (s *AgendaService) SendReminders(ctx context.Context, v Viewer, doctorID *int64, date string, expectedCount int) (ReminderBatch, error) {
	scope, err := s.ResolveScope(ctx, v, doctorID)
	if err != nil {
		return ReminderBatch{}, err
	}
	return s.sendReminders(ctx, scope, date, &expectedCount)
}

// RemindAll sends reminders for every scheduled appointment on date,
// regardless of center. Used by the daily job.
func (s *AgendaService) RemindAll(ctx context.Context, date string) (ReminderBatch, error) {
	specialists, err := s.stores.Specialists.List(ctx)
	if err != nil {
		return ReminderBatch{}, err
	}
	scope := make(Scope, len(specialists))
	for _, sp := range specialists {
		scope[sp.ID] = sp
	}
	return s.sendReminders(ctx, scope, date, nil)
}

func (s *AgendaService) sendReminders(ctx context.Context, scope Scope, date string, expected *int) (ReminderBatch, error) {
	apps, err := s.pending(ctx, scope, date)
	if err != nil {
		return ReminderBatch{}, err
	}
	batch := ReminderBatch{Date: date, Count: len(apps)}
	if expected != nil && *expected != len(apps) {
		return batch, fmt.Errorf("%w: expected %d, found %d", ErrReminderCountChanged, *expected, len(apps))
	}

	for _, a := range apps {
		updated, err := s.stores.Appointments.Mutate(ctx, a.ID, func(cur models.Appointment) (models.Appointment, error) {
			if cur.Status != models.StatusScheduled {
				return cur, ErrInvalidTransition
			}
			cur.Status = models.StatusReminderSent
			return cur, nil
		})
		if errors.Is(err, ErrInvalidTransition) || errors.Is(err, store.ErrNotFound) {
			// Changed by someone else between listing and now.
			continue
		}
		if err != nil {
			return batch, err
		}
		batch.Sent++
		if s.reminders != nil {
			s.reminders.Deliver(ctx, updated, scope[updated.SpecialistID])
		}
	}
	log.Info().Str("date", date).Int("count", batch.Count).Int("sent", batch.Sent).Msg("appointment reminders processed")
	return batch, nil
}
