package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"rclinic-backend/models"
	"rclinic-backend/utils"
)

type WizardStep string

const (
	StepList         WizardStep = "list"
	StepSchedule     WizardStep = "schedule"
	StepPatientData  WizardStep = "patient-data"
	StepConfirmation WizardStep = "confirmation"
)

var ErrInvalidStep = errors.New("action not allowed in current booking step")

// WizardInputError reports a missing or unacceptable value for the
// current step.
type WizardInputError struct {
	Field   string
	Message string
}

func (e *WizardInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type PatientData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
}

// BookingWizard is the linear list → schedule → patient-data → confirmation
// flow. Its zero value is a wizard at the list step. Only the exported
// fields are persisted; the specialist itself is attached again from the
// catalog on every request, so slot checks see current availability.
type BookingWizard struct {
	Step         WizardStep   `json:"step"`
	SpecialistID int64        `json:"specialistId,omitempty"`
	Date         string       `json:"date,omitempty"`
	Time         string       `json:"time,omitempty"`
	Patient      *PatientData `json:"patient,omitempty"`

	specialist *models.Specialist
}

type BookingSummary struct {
	Specialist models.Specialist `json:"specialist"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Patient    PatientData       `json:"patient"`
}

func (w *BookingWizard) step() WizardStep {
	if w.Step == "" {
		return StepList
	}
	return w.Step
}

// CurrentStep returns the step, treating the zero value as list.
func (w *BookingWizard) CurrentStep() WizardStep { return w.step() }

// Attach sets the current catalog record of the selected specialist.
func (w *BookingWizard) Attach(s models.Specialist) {
	w.specialist = &s
}

// Specialist is the attached specialist, nil before one is selected or
// attached.
func (w *BookingWizard) Specialist() *models.Specialist {
	return w.specialist
}

// FirstAvailableDate is the earliest date key >= today that still has at
// least one slot, or "" when there is none. Keys are YYYY-MM-DD so string
// order is date order.
func FirstAvailableDate(availability models.SlotMap, today string) string {
	for _, d := range availability.Keys() {
		if d >= today {
			return d
		}
	}
	return ""
}

// QuickPickDates returns today and the next two days.
func QuickPickDates(today time.Time) []string {
	return []string{
		utils.LocalDate(today),
		utils.LocalDate(utils.AddDays(today, 1)),
		utils.LocalDate(utils.AddDays(today, 2)),
	}
}

// SelectSpecialist enters the schedule step and preselects the first
// available date.
func (w *BookingWizard) SelectSpecialist(s models.Specialist, today string) error {
	if w.step() != StepList {
		return ErrInvalidStep
	}
	*w = BookingWizard{
		Step:         StepSchedule,
		SpecialistID: s.ID,
		Date:         FirstAvailableDate(s.Availability, today),
		specialist:   &s,
	}
	return nil
}

// SelectDate picks a date from today on and clears any chosen time.
func (w *BookingWizard) SelectDate(date, today string) error {
	if w.step() != StepSchedule {
		return ErrInvalidStep
	}
	if !utils.IsLocalDate(date) {
		return &WizardInputError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if date < today {
		return &WizardInputError{Field: "date", Message: "must not be in the past"}
	}
	w.Date = date
	w.Time = ""
	return nil
}

// AvailableTimes lists the slots of the selected date. With no date
// selected there is nothing to choose from.
func (w *BookingWizard) AvailableTimes() []string {
	if w.specialist == nil || w.Date == "" {
		return []string{}
	}
	slots := w.specialist.Availability[w.Date]
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

func (w *BookingWizard) SelectTime(t string) error {
	if w.step() != StepSchedule {
		return ErrInvalidStep
	}
	if !slices.Contains(w.AvailableTimes(), t) {
		return &WizardInputError{Field: "time", Message: "not available on the selected date"}
	}
	w.Time = t
	return nil
}

// ProceedToPatientData requires both a date and a time.
func (w *BookingWizard) ProceedToPatientData() error {
	if w.step() != StepSchedule {
		return ErrInvalidStep
	}
	if w.Date == "" {
		return &WizardInputError{Field: "date", Message: "required"}
	}
	if w.Time == "" {
		return &WizardInputError{Field: "time", Message: "required"}
	}
	w.Step = StepPatientData
	return nil
}

func (w *BookingWizard) SubmitPatientData(p PatientData) error {
	if w.step() != StepPatientData {
		return ErrInvalidStep
	}
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Phone = strings.TrimSpace(p.Phone)
	switch {
	case p.FirstName == "":
		return &WizardInputError{Field: "firstName", Message: "required"}
	case p.LastName == "":
		return &WizardInputError{Field: "lastName", Message: "required"}
	case p.Phone == "":
		return &WizardInputError{Field: "phone", Message: "required"}
	case !utils.ValidatePhone(p.Phone):
		return &WizardInputError{Field: "phone", Message: "invalid phone number"}
	}
	w.Patient = &p
	w.Step = StepConfirmation
	return nil
}

// Back moves to the immediately previous step. The confirmation step has
// no way back; it only leaves through Reset.
func (w *BookingWizard) Back() error {
	switch w.step() {
	case StepSchedule:
		w.Reset()
	case StepPatientData:
		w.Step = StepSchedule
	default:
		return ErrInvalidStep
	}
	return nil
}

// Reset discards all wizard state.
func (w *BookingWizard) Reset() {
	*w = BookingWizard{Step: StepList}
}

func (w *BookingWizard) Summary() (BookingSummary, error) {
	if w.step() != StepConfirmation || w.specialist == nil || w.Patient == nil {
		return BookingSummary{}, ErrInvalidStep
	}
	return BookingSummary{
		Specialist: *w.specialist,
		Date:       w.Date,
		Time:       w.Time,
		Patient:    *w.Patient,
	}, nil
}
