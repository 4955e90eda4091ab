package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rclinic-backend/models"
	"rclinic-backend/services"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ReferrerLoginInput struct {
	Code string `json:"code" binding:"required"`
}

type AuthController struct {
	auth         *services.AuthService
	stores       *store.Stores
	ttl          time.Duration
	secureCookie bool
}

func NewAuthController(auth *services.AuthService, stores *store.Stores, ttl time.Duration, secureCookie bool) *AuthController {
	return &AuthController{auth: auth, stores: stores, ttl: ttl, secureCookie: secureCookie}
}

func (ac *AuthController) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		ac.secureCookie,
		true,
	)
}

// Login signs in agenda staff (admins and doctors).
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	session, err := ac.auth.StaffLogin(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}

	ac.setTokenCookie(c, session.Token, int(ac.ttl.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"token": session.Token,
		"user": gin.H{
			"id":              session.User.ID,
			"username":        session.User.Username,
			"name":            session.User.FullName(),
			"role":            session.User.Role,
			"medicalCenterId": session.User.MedicalCenterID,
			"specialistId":    session.User.SpecialistID,
		},
	})
}

// ReferrerLogin signs a referrer in to the referral portal by code.
func (ac *AuthController) ReferrerLogin(c *gin.Context) {
	var input ReferrerLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	session, err := ac.auth.ReferrerLogin(c.Request.Context(), input.Code)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}

	ac.setTokenCookie(c, session.Token, int(ac.ttl.Seconds()))
	c.JSON(http.StatusOK, session)
}

func (ac *AuthController) Logout(c *gin.Context) {
	ac.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me returns the signed-in staff member or referrer.
func (ac *AuthController) Me(c *gin.Context) {
	claims, ok := utils.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
		return
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	if claims.Role == models.RoleReferrer {
		referrer, err := ac.stores.Referrers.Get(c.Request.Context(), id)
		if err != nil || !strings.EqualFold(referrer.ReferralCode, claims.ReferralCode) {
			utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": claims.Role, "referrer": referrer})
		return
	}

	user, err := ac.stores.ScheduleUsers.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": claims.Role, "user": user})
}
