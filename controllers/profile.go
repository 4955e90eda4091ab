package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rclinic-backend/services"
	"rclinic-backend/utils"
)

// ScheduleController edits the weekly consultation hours of the doctors of
// the admin's medical center.
type ScheduleController struct {
	schedules *services.ScheduleConfigService
}

func NewScheduleController(schedules *services.ScheduleConfigService) *ScheduleController {
	return &ScheduleController{schedules: schedules}
}

type UpdateWorkingHoursInput struct {
	Day  string `json:"day" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// GetDoctors lists the specialists of ?center=, defaulting to the caller's
// own center.
func (sc *ScheduleController) GetDoctors(c *gin.Context) {
	center := c.Query("center")
	if center == "" {
		claims, ok := utils.ClaimsFrom(c)
		if !ok {
			utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
			return
		}
		center = claims.MedicalCenterID
	}
	doctors, err := sc.schedules.Doctors(c.Request.Context(), center)
	if err != nil {
		respondError(c, err, "Failed to retrieve doctors")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"weekDays": services.WeekDays,
		"doctors":  doctors,
	})
}

func (sc *ScheduleController) GetWorkingHours(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	weekly, err := sc.schedules.Weekly(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve working hours")
		return
	}
	c.JSON(http.StatusOK, gin.H{"workingHours": weekly})
}

func (sc *ScheduleController) AddWorkingHour(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	var input UpdateWorkingHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	weekly, err := sc.schedules.AddTime(c.Request.Context(), id, input.Day, input.Time)
	if err != nil {
		respondError(c, err, "Failed to update working hours")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated", "workingHours": weekly})
}

// RemoveWorkingHour takes the slot from ?day=&time=.
func (sc *ScheduleController) RemoveWorkingHour(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	input := UpdateWorkingHoursInput{Day: c.Query("day"), Time: c.Query("time")}
	if input.Day == "" || input.Time == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	weekly, err := sc.schedules.RemoveTime(c.Request.Context(), id, input.Day, input.Time)
	if err != nil {
		respondError(c, err, "Failed to update working hours")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated", "workingHours": weekly})
}
