package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rclinic-backend/crud"
	"rclinic-backend/services"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

// respondError maps domain errors to HTTP statuses. Anything unrecognised
// is logged and reported as a 500 with a generic message.
func respondError(c *gin.Context, err error, fallback string) {
	var (
		ruleErr      *crud.RuleError
		wizardErr    *services.WizardInputError
		notRedeemErr *services.NotRedeemableError
	)
	switch {
	case errors.As(err, &ruleErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": ruleErr.Message, "field": ruleErr.Field})
	case errors.As(err, &wizardErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": wizardErr.Message, "field": wizardErr.Field})
	case errors.As(err, &notRedeemErr):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Coupon cannot be redeemed", "status": notRedeemErr.Status})

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrSpecialistNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrReferrerNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, crud.ErrDeleteDeclined),
		errors.Is(err, crud.ErrNotEditing),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrReminderCountChanged),
		errors.Is(err, services.ErrReferrerNotPending),
		errors.Is(err, services.ErrLockHeld),
		errors.Is(err, services.ErrInvalidStep):
		utils.RespondWithError(c, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrReferralSignIn):
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrDoctorNotInCenter):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrUnknownBucket),
		errors.Is(err, services.ErrUnknownWeekDay),
		errors.Is(err, services.ErrInvalidSlotTime),
		errors.Is(err, services.ErrInvalidRegistration):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())

	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(fallback)
		utils.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}

// optionalInt64Query returns nil when the parameter is absent.
func optionalInt64Query(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return nil, false
	}
	return &v, true
}

func viewer(c *gin.Context) (services.Viewer, bool) {
	claims, ok := utils.ClaimsFrom(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authorization required")
		return services.Viewer{}, false
	}
	return services.ViewerFromClaims(claims), true
}
