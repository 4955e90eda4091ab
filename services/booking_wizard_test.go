package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rclinic-backend/models"
	"rclinic-backend/store"
)

func TestBookingWizard_NoFutureAvailability(t *testing.T) {
	var w BookingWizard
	sp := models.Specialist{ID: 1, Availability: models.SlotMap{
		"2025-10-30": {"09:00"},
		"2025-11-05": {},
	}}

	require.NoError(t, w.SelectSpecialist(sp, "2025-11-01"))
	assert.Equal(t, StepSchedule, w.Step)
	assert.Empty(t, w.Date)
	assert.Empty(t, w.AvailableTimes())

	err := w.SelectTime("09:00")
	var inputErr *WizardInputError
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorAs(t, w.ProceedToPatientData(), &inputErr)
}

func TestBookingWizard_PreselectsFirstDate(t *testing.T) {
	var w BookingWizard
	sp := models.Specialist{ID: 1, Availability: models.SlotMap{
		"2025-11-08": {"09:00", "10:00"},
	}}

	require.NoError(t, w.SelectSpecialist(sp, "2025-11-01"))
	assert.Equal(t, "2025-11-08", w.Date)
	assert.Equal(t, []string{"09:00", "10:00"}, w.AvailableTimes())
}

func TestFirstAvailableDate(t *testing.T) {
	avail := models.SlotMap{
		"2025-11-03": {"08:00"},
		"2025-11-01": {},
		"2025-10-31": {"09:00"},
		"2025-11-02": {"11:00"},
	}
	assert.Equal(t, "2025-11-02", FirstAvailableDate(avail, "2025-11-01"))
	assert.Equal(t, "2025-11-03", FirstAvailableDate(avail, "2025-11-03"))
	assert.Equal(t, "", FirstAvailableDate(avail, "2025-11-04"))
	assert.Equal(t, "", FirstAvailableDate(nil, "2025-11-01"))
}

func TestQuickPickDates(t *testing.T) {
	today := time.Date(2025, 12, 30, 22, 0, 0, 0, ect)
	assert.Equal(t, []string{"2025-12-30", "2025-12-31", "2026-01-01"}, QuickPickDates(today))
}

func TestBookingWizard_FullFlow(t *testing.T) {
	var w BookingWizard
	sp := models.Specialist{ID: 2, Name: "Dra. Ana García", Availability: models.SlotMap{
		"2025-11-02": {"08:30", "09:30"},
		"2025-11-03": {"10:30"},
	}}

	assert.ErrorIs(t, w.SelectDate("2025-11-02", "2025-11-01"), ErrInvalidStep)
	require.NoError(t, w.SelectSpecialist(sp, "2025-11-01"))
	require.NoError(t, w.SelectTime("09:30"))

	// Changing the date drops the chosen time.
	require.NoError(t, w.SelectDate("2025-11-03", "2025-11-01"))
	assert.Empty(t, w.Time)
	assert.Equal(t, []string{"10:30"}, w.AvailableTimes())
	require.NoError(t, w.SelectTime("10:30"))

	require.NoError(t, w.ProceedToPatientData())
	assert.Equal(t, StepPatientData, w.Step)

	var inputErr *WizardInputError
	require.ErrorAs(t, w.SubmitPatientData(PatientData{FirstName: "Elena", Phone: "0987654321"}), &inputErr)
	assert.Equal(t, "lastName", inputErr.Field)

	require.NoError(t, w.Back())
	assert.Equal(t, StepSchedule, w.Step)
	assert.Equal(t, "10:30", w.Time)
	require.NoError(t, w.ProceedToPatientData())

	require.NoError(t, w.SubmitPatientData(PatientData{FirstName: "Elena", LastName: "Rodriguez", Phone: "0987654321"}))
	assert.Equal(t, StepConfirmation, w.Step)
	assert.ErrorIs(t, w.Back(), ErrInvalidStep)

	summary, err := w.Summary()
	require.NoError(t, err)
	assert.Equal(t, "Dra. Ana García", summary.Specialist.Name)
	assert.Equal(t, "2025-11-03", summary.Date)
	assert.Equal(t, "10:30", summary.Time)

	w.Reset()
	assert.Equal(t, BookingWizard{Step: StepList}, w)
	_, err = w.Summary()
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestBookingWizard_BackFromScheduleClearsState(t *testing.T) {
	var w BookingWizard
	require.NoError(t, w.SelectSpecialist(models.Specialist{ID: 1, Availability: models.SlotMap{"2025-11-02": {"09:00"}}}, "2025-11-01"))
	require.NoError(t, w.SelectTime("09:00"))
	require.NoError(t, w.Back())
	assert.Equal(t, StepList, w.CurrentStep())
	assert.Nil(t, w.Specialist())
	assert.Zero(t, w.SpecialistID)
	assert.Empty(t, w.Date)
	assert.Empty(t, w.Time)
	assert.ErrorIs(t, w.Back(), ErrInvalidStep)
}

func TestBookingWizard_RejectsPastDates(t *testing.T) {
	var w BookingWizard
	sp := models.Specialist{ID: 1, Availability: models.SlotMap{
		"2025-10-01": {"09:00"},
		"2025-11-08": {"10:00"},
	}}
	require.NoError(t, w.SelectSpecialist(sp, "2025-11-01"))
	assert.Equal(t, "2025-11-08", w.Date)

	var inputErr *WizardInputError
	require.ErrorAs(t, w.SelectDate("2025-10-01", "2025-11-01"), &inputErr)
	assert.Equal(t, "date", inputErr.Field)
	assert.Equal(t, "2025-11-08", w.Date)

	// Today itself is allowed.
	require.NoError(t, w.SelectDate("2025-11-01", "2025-11-01"))
	assert.Empty(t, w.AvailableTimes())
	assert.ErrorAs(t, w.ProceedToPatientData(), &inputErr)
}

func TestBookingService_SelectDateUsesLocalToday(t *testing.T) {
	// 23:30 in Guayaquil is already the next day in UTC.
	now := time.Date(2025, 11, 1, 23, 30, 0, 0, ect)
	sp := models.Specialist{ID: 1, Status: models.Visible, Availability: models.SlotMap{"2025-11-01": {"09:00"}}}
	stores := emptyStores()
	stores.Specialists = store.NewMemoryRepository[models.Specialist, int64](sp)
	svc := NewBookingService(stores, false, ect, fixedClock(now.UTC()))
	ctx := context.Background()

	var w BookingWizard
	require.NoError(t, svc.SelectSpecialist(ctx, &w, 1))
	require.NoError(t, svc.SelectDate(&w, "2025-11-01"))

	var inputErr *WizardInputError
	assert.ErrorAs(t, svc.SelectDate(&w, "2025-10-31"), &inputErr)
}

func TestBookingService_AttachReloadsSpecialist(t *testing.T) {
	now := time.Date(2025, 11, 1, 10, 0, 0, 0, ect)
	sp := models.Specialist{ID: 1, Status: models.Visible, Availability: models.SlotMap{"2025-11-02": {"09:00", "10:00"}}}
	stores := emptyStores()
	stores.Specialists = store.NewMemoryRepository[models.Specialist, int64](sp)
	svc := NewBookingService(stores, false, ect, fixedClock(now))
	ctx := context.Background()

	var w BookingWizard
	require.NoError(t, svc.SelectSpecialist(ctx, &w, 1))

	// What a session carries between requests.
	raw, err := json.Marshal(w)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "availability")

	sp.Availability = models.SlotMap{"2025-11-02": {"10:00"}}
	_, err = stores.Specialists.Update(ctx, sp)
	require.NoError(t, err)

	var restored BookingWizard
	require.NoError(t, json.Unmarshal(raw, &restored))
	require.NoError(t, svc.Attach(ctx, &restored))
	assert.Equal(t, []string{"10:00"}, restored.AvailableTimes())
	var inputErr *WizardInputError
	assert.ErrorAs(t, restored.SelectTime("09:00"), &inputErr)

	sp.Status = models.Hidden
	_, err = stores.Specialists.Update(ctx, sp)
	require.NoError(t, err)
	require.NoError(t, svc.Attach(ctx, &restored))
	assert.Equal(t, StepList, restored.CurrentStep())
	assert.Zero(t, restored.SpecialistID)
}

func TestBookingService_PersistConfirmed(t *testing.T) {
	now := time.Date(2025, 11, 1, 10, 0, 0, 0, ect)
	sp := models.Specialist{ID: 1, Status: models.Visible, Availability: models.SlotMap{"2025-11-02": {"09:00"}}}

	for _, persist := range []bool{false, true} {
		stores := emptyStores()
		stores.Specialists = store.NewMemoryRepository[models.Specialist, int64](sp)
		svc := NewBookingService(stores, persist, ect, fixedClock(now))
		ctx := context.Background()

		var w BookingWizard
		require.NoError(t, svc.SelectSpecialist(ctx, &w, 1))
		assert.Equal(t, "2025-11-02", w.Date)
		require.NoError(t, w.SelectTime("09:00"))
		require.NoError(t, w.ProceedToPatientData())

		appt, err := svc.SubmitPatientData(ctx, &w, PatientData{FirstName: "Luis", LastName: "Gonzalez", Phone: "0977776666"})
		require.NoError(t, err)

		all, err := stores.Appointments.List(ctx)
		require.NoError(t, err)
		if !persist {
			assert.Nil(t, appt)
			assert.Empty(t, all)
			continue
		}
		require.NotNil(t, appt)
		require.Len(t, all, 1)
		assert.Equal(t, "Luis Gonzalez", all[0].PatientName)
		assert.Equal(t, models.StatusScheduled, all[0].Status)
		assert.Equal(t, "2025-11-02", all[0].Date)
	}
}

func TestBookingService_HiddenSpecialist(t *testing.T) {
	stores := emptyStores()
	stores.Specialists = store.NewMemoryRepository[models.Specialist, int64](models.Specialist{ID: 1, Status: models.Hidden})
	svc := NewBookingService(stores, false, ect, time.Now)

	var w BookingWizard
	assert.ErrorIs(t, svc.SelectSpecialist(context.Background(), &w, 1), ErrSpecialistNotFound)
	assert.ErrorIs(t, svc.SelectSpecialist(context.Background(), &w, 9), ErrSpecialistNotFound)
}
