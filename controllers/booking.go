package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rclinic-backend/models"
	"rclinic-backend/services"
	"rclinic-backend/utils"
)

const wizardSessionKey = "bookingWizard"

// BookingController drives the booking wizard. The wizard state travels in
// the cookie session between requests.
type BookingController struct {
	booking *services.BookingService
}

func NewBookingController(booking *services.BookingService) *BookingController {
	return &BookingController{booking: booking}
}

type WizardView struct {
	Wizard         services.BookingWizard   `json:"wizard"`
	Specialist     *models.Specialist       `json:"specialist,omitempty"`
	QuickPickDates []string                 `json:"quickPickDates"`
	AvailableTimes []string                 `json:"availableTimes"`
	Summary        *services.BookingSummary `json:"summary,omitempty"`
	Appointment    any                      `json:"appointment,omitempty"`
}

type selectSpecialistInput struct {
	SpecialistID int64 `json:"specialistId" binding:"required"`
}

type selectDateInput struct {
	Date string `json:"date" binding:"required"`
}

type selectTimeInput struct {
	Time string `json:"time" binding:"required"`
}

// load reads the wizard from the session and attaches its specialist.
func (bc *BookingController) load(c *gin.Context) (services.BookingWizard, bool) {
	var w services.BookingWizard
	raw, ok := sessions.Default(c).Get(wizardSessionKey).(string)
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &w); err != nil {
			log.Warn().Err(err).Msg("discarding unreadable booking session")
			w = services.BookingWizard{}
		}
	}
	if err := bc.booking.Attach(c.Request.Context(), &w); err != nil {
		respondError(c, err, "Failed to load booking")
		return w, false
	}
	return w, true
}

func (bc *BookingController) save(c *gin.Context, w services.BookingWizard) bool {
	raw, err := json.Marshal(w)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save booking")
		return false
	}
	session := sessions.Default(c)
	session.Set(wizardSessionKey, string(raw))
	if err := session.Save(); err != nil {
		log.Error().Err(err).Msg("failed to save booking session")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save booking")
		return false
	}
	return true
}

func (bc *BookingController) view(w services.BookingWizard) WizardView {
	v := WizardView{
		Wizard:         w,
		Specialist:     w.Specialist(),
		QuickPickDates: services.QuickPickDates(bc.booking.Today()),
		AvailableTimes: w.AvailableTimes(),
	}
	if summary, err := w.Summary(); err == nil {
		v.Summary = &summary
	}
	return v
}

// apply runs one wizard action against the session state and answers with
// the resulting view.
func (bc *BookingController) apply(c *gin.Context, action func(w *services.BookingWizard) error) {
	w, ok := bc.load(c)
	if !ok {
		return
	}
	if err := action(&w); err != nil {
		respondError(c, err, "Failed to update booking")
		return
	}
	if !bc.save(c, w) {
		return
	}
	c.JSON(http.StatusOK, bc.view(w))
}

func (bc *BookingController) GetWizard(c *gin.Context) {
	w, ok := bc.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bc.view(w))
}

func (bc *BookingController) SelectSpecialist(c *gin.Context) {
	var input selectSpecialistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	bc.apply(c, func(w *services.BookingWizard) error {
		return bc.booking.SelectSpecialist(c.Request.Context(), w, input.SpecialistID)
	})
}

func (bc *BookingController) SelectDate(c *gin.Context) {
	var input selectDateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	bc.apply(c, func(w *services.BookingWizard) error { return bc.booking.SelectDate(w, input.Date) })
}

func (bc *BookingController) SelectTime(c *gin.Context) {
	var input selectTimeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	bc.apply(c, func(w *services.BookingWizard) error { return w.SelectTime(input.Time) })
}

func (bc *BookingController) Next(c *gin.Context) {
	bc.apply(c, func(w *services.BookingWizard) error { return w.ProceedToPatientData() })
}

// SubmitPatient completes the wizard. When confirmed bookings are persisted
// the created appointment is part of the answer.
func (bc *BookingController) SubmitPatient(c *gin.Context) {
	var input services.PatientData
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	w, ok := bc.load(c)
	if !ok {
		return
	}
	appt, err := bc.booking.SubmitPatientData(c.Request.Context(), &w, input)
	if err != nil {
		respondError(c, err, "Failed to submit patient data")
		return
	}
	if !bc.save(c, w) {
		return
	}
	v := bc.view(w)
	if appt != nil {
		v.Appointment = appt
	}
	c.JSON(http.StatusOK, v)
}

func (bc *BookingController) Back(c *gin.Context) {
	bc.apply(c, func(w *services.BookingWizard) error { return w.Back() })
}

func (bc *BookingController) Reset(c *gin.Context) {
	bc.apply(c, func(w *services.BookingWizard) error {
		w.Reset()
		return nil
	})
}
