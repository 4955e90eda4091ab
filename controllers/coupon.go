package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rclinic-backend/models"
	"rclinic-backend/services"
	"rclinic-backend/store"
)

// CouponController serves the public promotions catalog and the coupon
// lifecycle: issue, verify, redeem.
type CouponController struct {
	coupons *services.CouponService
	stores  *store.Stores
}

func NewCouponController(coupons *services.CouponService, stores *store.Stores) *CouponController {
	return &CouponController{coupons: coupons, stores: stores}
}

// GetOffers lists visible offers, optionally by ?placement=featured|secondary.
func (cc *CouponController) GetOffers(c *gin.Context) {
	offers, err := cc.coupons.VisibleOffers(c.Request.Context(), models.Placement(c.Query("placement")))
	if err != nil {
		respondError(c, err, "Failed to retrieve offers")
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (cc *CouponController) GetCoupons(c *gin.Context) {
	coupons, err := cc.coupons.VisibleCoupons(c.Request.Context(), models.Placement(c.Query("placement")))
	if err != nil {
		respondError(c, err, "Failed to retrieve coupons")
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (cc *CouponController) GetCoupon(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	coupon, err := cc.coupons.CouponDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve coupon")
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// GenerateCoupon issues a new code for the coupon template.
func (cc *CouponController) GenerateCoupon(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	instance, err := cc.coupons.Generate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to generate coupon")
		return
	}
	c.JSON(http.StatusCreated, instance)
}

// VerifyCode never fails for unknown codes; they classify as invalid.
func (cc *CouponController) VerifyCode(c *gin.Context) {
	v, err := cc.coupons.Verify(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to verify coupon")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (cc *CouponController) RedeemCode(c *gin.Context) {
	instance, err := cc.coupons.Redeem(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to redeem coupon")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Coupon redeemed successfully",
		"instance": instance,
	})
}

// GetAssociates lists visible associate brands.
func (cc *CouponController) GetAssociates(c *gin.Context) {
	associates, err := store.Filter(c.Request.Context(), cc.stores.Associates, func(a models.Associate) bool {
		return a.Status == models.Visible
	})
	if err != nil {
		respondError(c, err, "Failed to retrieve associates")
		return
	}
	c.JSON(http.StatusOK, associates)
}

func (cc *CouponController) GetMedicalCenters(c *gin.Context) {
	centers, err := store.Filter(c.Request.Context(), cc.stores.MedicalCenters, func(mc models.MedicalCenter) bool {
		return mc.Status == models.Visible
	})
	if err != nil {
		respondError(c, err, "Failed to retrieve medical centers")
		return
	}
	c.JSON(http.StatusOK, centers)
}
