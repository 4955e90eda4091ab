package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rclinic-backend/models"
	"rclinic-backend/services"
	"rclinic-backend/utils"
)

type ReferralController struct {
	referrals *services.ReferralService
}

func NewReferralController(referrals *services.ReferralService) *ReferralController {
	return &ReferralController{referrals: referrals}
}

// Register signs up a new referrer. The account waits for approval.
func (rc *ReferralController) Register(c *gin.Context) {
	var input services.ReferralRegistration
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	referrer, err := rc.referrals.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to register referrer")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registration received, pending approval",
		"referrer": referrer,
	})
}

func (rc *ReferralController) GetReferrers(c *gin.Context) {
	referrers, err := rc.referrals.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve referrers")
		return
	}
	c.JSON(http.StatusOK, referrers)
}

func (rc *ReferralController) Approve(c *gin.Context) {
	rc.update(c, rc.referrals.Approve)
}

func (rc *ReferralController) Reject(c *gin.Context) {
	rc.update(c, rc.referrals.Reject)
}

func (rc *ReferralController) ToggleActivity(c *gin.Context) {
	rc.update(c, rc.referrals.ToggleActivity)
}

func (rc *ReferralController) update(c *gin.Context, fn func(ctx context.Context, id int64) (models.Referrer, error)) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	referrer, err := fn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to update referrer")
		return
	}
	c.JSON(http.StatusOK, referrer)
}

// GetDashboard is the signed-in referrer's portal.
func (rc *ReferralController) GetDashboard(c *gin.Context) {
	claims, ok := utils.ClaimsFrom(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authorization required")
		return
	}
	dashboard, err := rc.referrals.Dashboard(c.Request.Context(), claims.ReferralCode)
	if err != nil {
		respondError(c, err, "Failed to load referral dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
