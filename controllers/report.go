// controllers/report.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rclinic-backend/services"
)

// ReportController handles the admin reports
type ReportController struct {
	coupons *services.CouponService
	agenda  *services.AgendaService
}

func NewReportController(coupons *services.CouponService, agenda *services.AgendaService) *ReportController {
	return &ReportController{coupons: coupons, agenda: agenda}
}

type RedemptionReport struct {
	Total       int                         `json:"total"`
	ByBrand     map[string]int              `json:"byBrand"`
	Redemptions []services.RedemptionRecord `json:"redemptions"`
}

// GetRedemptionHistory returns every redeemed coupon, newest first, with a
// per-brand count.
func (rc *ReportController) GetRedemptionHistory(c *gin.Context) {
	history, err := rc.coupons.RedemptionHistory(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get redemption history")
		return
	}
	report := RedemptionReport{
		Total:       len(history),
		ByBrand:     make(map[string]int),
		Redemptions: history,
	}
	for _, r := range history {
		report.ByBrand[r.BrandName]++
	}
	c.JSON(http.StatusOK, report)
}

// GetAgendaReport returns today/tomorrow/week stats for the caller's scope.
func (rc *ReportController) GetAgendaReport(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	doctorID, ok := optionalInt64Query(c, "doctor")
	if !ok {
		return
	}
	stats, err := rc.agenda.Stats(c.Request.Context(), v, doctorID)
	if err != nil {
		respondError(c, err, "Failed to get agenda stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
