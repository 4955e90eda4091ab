// controllers/reminder.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rclinic-backend/services"
	"rclinic-backend/utils"
)

// ReminderController exposes the reminder delivery log.
type ReminderController struct {
	reminders *services.ReminderService
}

func NewReminderController(reminders *services.ReminderService) *ReminderController {
	return &ReminderController{reminders: reminders}
}

// GetReminderLogs returns the caller center's log, newest first. Pass
// ?center= to read another center.
func (rc *ReminderController) GetReminderLogs(c *gin.Context) {
	center := c.Query("center")
	if center == "" {
		claims, ok := utils.ClaimsFrom(c)
		if !ok {
			utils.RespondWithError(c, http.StatusUnauthorized, "Medical center not found in context")
			return
		}
		center = claims.MedicalCenterID
	}
	logs, err := rc.reminders.Logs(c.Request.Context(), center)
	if err != nil {
		respondError(c, err, "Failed to retrieve reminder logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}
