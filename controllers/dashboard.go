package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rclinic-backend/models"
	"rclinic-backend/services"
	"rclinic-backend/utils"
)

// AgendaController serves the medical agenda dashboard. Every handler
// works within the signed-in user's scope.
type AgendaController struct {
	agenda *services.AgendaService
}

func NewAgendaController(agenda *services.AgendaService) *AgendaController {
	return &AgendaController{agenda: agenda}
}

type sendRemindersInput struct {
	ExpectedCount *int `json:"expectedCount" binding:"required,min=0"`
}

// GetAgenda returns the appointments of ?bucket=today|tomorrow|week grouped
// by day. Admins may narrow to one ?doctor=.
func (ac *AgendaController) GetAgenda(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	bucket, err := services.ParseBucket(c.Query("bucket"))
	if err != nil {
		respondError(c, err, "Invalid bucket")
		return
	}
	doctorID, ok := optionalInt64Query(c, "doctor")
	if !ok {
		return
	}
	days, err := ac.agenda.Agenda(c.Request.Context(), v, doctorID, bucket)
	if err != nil {
		respondError(c, err, "Failed to retrieve agenda")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bucket": bucket,
		"today":  utils.LocalDate(ac.agenda.Today()),
		"days":   days,
	})
}

// GetDoctors lists the doctors an admin can filter by.
func (ac *AgendaController) GetDoctors(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	doctors, err := ac.agenda.Doctors(c.Request.Context(), v)
	if err != nil {
		respondError(c, err, "Failed to retrieve doctors")
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func dateParam(c *gin.Context) (string, bool) {
	date := c.Param("date")
	if !utils.IsLocalDate(date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return "", false
	}
	return date, true
}

// PrepareReminders returns how many reminders a send would deliver. The
// client shows this count in its confirmation prompt.
func (ac *AgendaController) PrepareReminders(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}
	doctorID, ok := optionalInt64Query(c, "doctor")
	if !ok {
		return
	}
	batch, err := ac.agenda.PrepareReminders(c.Request.Context(), v, doctorID, date)
	if err != nil {
		respondError(c, err, "Failed to prepare reminders")
		return
	}
	c.JSON(http.StatusOK, batch)
}

// SendReminders sends the day's reminders once the caller confirms the
// count it was shown.
func (ac *AgendaController) SendReminders(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}
	doctorID, ok := optionalInt64Query(c, "doctor")
	if !ok {
		return
	}
	var input sendRemindersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	batch, err := ac.agenda.SendReminders(c.Request.Context(), v, doctorID, date, *input.ExpectedCount)
	if err != nil {
		respondError(c, err, "Failed to send reminders")
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (ac *AgendaController) Confirm(c *gin.Context) {
	ac.transition(c, ac.agenda.Confirm)
}

func (ac *AgendaController) Cancel(c *gin.Context) {
	ac.transition(c, ac.agenda.Cancel)
}

func (ac *AgendaController) Reschedule(c *gin.Context) {
	ac.transition(c, ac.agenda.Reschedule)
}

type transitionFunc func(ctx context.Context, v services.Viewer, id int64) (models.Appointment, error)

func (ac *AgendaController) transition(c *gin.Context, fn transitionFunc) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	appt, err := fn(c.Request.Context(), v, id)
	if err != nil {
		respondError(c, err, "Failed to update appointment")
		return
	}
	c.JSON(http.StatusOK, appt)
}
