package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"rclinic-backend/models"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

// BookingService backs the booking wizard with catalog lookups and, when
// enabled, writes the confirmed booking to the agenda.
type BookingService struct {
	stores           *store.Stores
	persistConfirmed bool
	loc              *time.Location
	now              func() time.Time
}

func NewBookingService(stores *store.Stores, persistConfirmed bool, loc *time.Location, now func() time.Time) *BookingService {
	return &BookingService{stores: stores, persistConfirmed: persistConfirmed, loc: loc, now: now}
}

// Today is the wizard's reference date.
func (s *BookingService) Today() time.Time {
	return s.now().In(s.loc)
}

// Specialist returns a bookable (visible) specialist.
func (s *BookingService) Specialist(ctx context.Context, id int64) (models.Specialist, error) {
	sp, err := s.stores.Specialists.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && sp.Status != models.Visible) {
		return models.Specialist{}, ErrSpecialistNotFound
	}
	return sp, err
}

// SelectSpecialist loads the specialist and moves the wizard to schedule.
func (s *BookingService) SelectSpecialist(ctx context.Context, w *BookingWizard, id int64) error {
	sp, err := s.Specialist(ctx, id)
	if err != nil {
		return err
	}
	return w.SelectSpecialist(sp, utils.LocalDate(s.Today()))
}

// Attach reloads the wizard's specialist from the catalog. A specialist
// that was hidden or removed since it was picked sends the wizard back to
// the list.
func (s *BookingService) Attach(ctx context.Context, w *BookingWizard) error {
	if w.SpecialistID == 0 {
		return nil
	}
	sp, err := s.Specialist(ctx, w.SpecialistID)
	if errors.Is(err, ErrSpecialistNotFound) {
		log.Info().Int64("specialistId", w.SpecialistID).Msg("booking specialist no longer bookable, wizard reset")
		w.Reset()
		return nil
	}
	if err != nil {
		return err
	}
	w.Attach(sp)
	return nil
}

// SelectDate picks a date no earlier than today.
func (s *BookingService) SelectDate(w *BookingWizard, date string) error {
	return w.SelectDate(date, utils.LocalDate(s.Today()))
}

// SubmitPatientData completes the wizard. The returned appointment is nil
// unless confirmed bookings are persisted.
func (s *BookingService) SubmitPatientData(ctx context.Context, w *BookingWizard, p PatientData) (*models.Appointment, error) {
	if err := w.SubmitPatientData(p); err != nil {
		return nil, err
	}
	if !s.persistConfirmed {
		return nil, nil
	}

	summary, err := w.Summary()
	if err != nil {
		return nil, err
	}
	id, err := store.NextNumericID(ctx, s.stores.Appointments, s.now().UnixMilli())
	if err != nil {
		return nil, err
	}
	appt, err := s.stores.Appointments.Create(ctx, models.Appointment{
		ID:           id,
		SpecialistID: summary.Specialist.ID,
		PatientName:  strings.TrimSpace(summary.Patient.FirstName + " " + summary.Patient.LastName),
		PatientPhone: utils.NormalizePhone(summary.Patient.Phone),
		Date:         summary.Date,
		Time:         summary.Time,
		Status:       models.StatusScheduled,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("appointmentId", appt.ID).Int64("specialistId", appt.SpecialistID).Msg("booking persisted")
	return &appt, nil
}
