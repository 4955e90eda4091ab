package controllers

import (
	"time"

	"github.com/google/uuid"

	"rclinic-backend/models"
	"rclinic-backend/services"
	"rclinic-backend/store"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Stores    *store.Stores
	Auth      *services.AuthService
	Coupons   *services.CouponService
	Booking   *services.BookingService
	Search    *services.SearchService
	Agenda    *services.AgendaService
	Reminders *services.ReminderService
	Referrals *services.ReferralService
	Schedules *services.ScheduleConfigService
	Now       func() time.Time
}

// Handlers holds one controller per resource.
type Handlers struct {
	Auth      *AuthController
	Coupons   *CouponController
	Booking   *BookingController
	Search    *SearchController
	Agenda    *AgendaController
	Reminders *ReminderController
	Referrals *ReferralController
	Schedules *ScheduleController
	Reports   *ReportController

	Offers            *CRUDController[models.Offer, int64]
	CouponTemplates   *CRUDController[models.Coupon, int64]
	Associates        *CRUDController[models.Associate, int64]
	MedicalCenters    *CRUDController[models.MedicalCenter, string]
	Specialists       *CRUDController[models.Specialist, int64]
	ScheduleUsers     *CRUDController[models.ScheduleUser, int64]
	ReminderTemplates *CRUDController[models.ReminderTemplate, uuid.UUID]
}

func NewHandlers(s Services, tokenTTL time.Duration, secureCookie bool) *Handlers {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		Auth:      NewAuthController(s.Auth, s.Stores, tokenTTL, secureCookie),
		Coupons:   NewCouponController(s.Coupons, s.Stores),
		Booking:   NewBookingController(s.Booking),
		Search:    NewSearchController(s.Search),
		Agenda:    NewAgendaController(s.Agenda),
		Reminders: NewReminderController(s.Reminders),
		Referrals: NewReferralController(s.Referrals),
		Schedules: NewScheduleController(s.Schedules),
		Reports:   NewReportController(s.Coupons, s.Agenda),

		Offers:            NewCRUDController(OfferSchema(now), s.Stores.Offers, ParseInt64ID),
		CouponTemplates:   NewCRUDController(CouponSchema(now), s.Stores.Coupons, ParseInt64ID),
		Associates:        NewCRUDController(AssociateSchema(now), s.Stores.Associates, ParseInt64ID),
		MedicalCenters:    NewCRUDController(MedicalCenterSchema(), s.Stores.MedicalCenters, ParseStringID),
		Specialists:       NewCRUDController(SpecialistSchema(now), s.Stores.Specialists, ParseInt64ID),
		ScheduleUsers:     NewCRUDController(ScheduleUserSchema(now), s.Stores.ScheduleUsers, ParseInt64ID),
		ReminderTemplates: NewCRUDController(ReminderTemplateSchema(now), s.Stores.ReminderTemplates, ParseUUID),
	}
}
