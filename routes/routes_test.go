package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rclinic-backend/config"
	"rclinic-backend/controllers"
	"rclinic-backend/services"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.PasswordCost = bcrypt.MinCost
}

var ect = time.FixedZone("ECT", -5*3600)

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	stores  *store.Stores
	today   time.Time
	cookies []*http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	today := time.Now().In(ect)
	hash, err := utils.HashPassword("rclinic123")
	require.NoError(t, err)
	stores := store.NewMemoryStores(store.DefaultSeed(today, hash))

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Session: config.SessionConfig{Secret: "test-session-secret"},
		CORS:    config.CORSConfig{AllowOrigins: "http://localhost:3000"},
	}
	now := time.Now
	reminders := services.NewReminderService(stores, services.LogNotifier{}, now)
	agenda := services.NewAgendaService(stores, reminders, ect, now)
	referrals := services.NewReferralService(stores, now)
	svc := controllers.Services{
		Stores:    stores,
		Auth:      services.NewAuthService(stores, referrals, cfg.JWT.Secret, cfg.JWT.TTL(), now),
		Coupons:   services.NewCouponService(stores, services.NewLocalLock(), now),
		Booking:   services.NewBookingService(stores, true, ect, now),
		Search:    services.NewSearchService(stores),
		Agenda:    agenda,
		Reminders: reminders,
		Referrals: referrals,
		Schedules: services.NewScheduleConfigService(stores),
		Now:       now,
	}
	return &testServer{
		t:      t,
		router: SetupRouter(cfg, controllers.NewHandlers(svc, cfg.JWT.TTL(), false)),
		stores: stores,
		today:  today,
	}
}

func (s *testServer) day(n int) string {
	return utils.LocalDate(utils.AddDays(s.today, n))
}

// do sends a request. Session cookies from earlier answers are replayed.
func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionName {
			s.cookies = []*http.Cookie{c}
		}
	}
	return rec
}

func (s *testServer) login(username string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/auth/login", "", gin.H{"username": username, "password": "rclinic123"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(s.t, rec, &out)
	require.NotEmpty(s.t, out.Token)
	return out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rclinic_http_request_duration_seconds")
}

func TestResolveRouteEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/routes/resolve?fragment=%23%2Fcupon-detalle%3Fid%3D3", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res Resolution
	decode(t, rec, &res)
	assert.Equal(t, PageCouponDetail, res.Page)
	assert.True(t, res.ScrollTop)
	require.NotNil(t, res.CouponID)
	assert.Equal(t, int64(3), *res.CouponID)

	rec = s.do(http.MethodGet, "/api/routes/resolve?fragment=%23nosotros", "", nil)
	decode(t, rec, &res)
	assert.Equal(t, PageHome, res.Page)
	assert.False(t, res.ScrollTop)

	rec = s.do(http.MethodGet, "/api/routes", "", nil)
	var table []RouteEntry
	decode(t, rec, &table)
	assert.Len(t, table, 14)
}

func TestCouponLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/coupons/999/generate", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/coupons/1/generate", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var instance struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, rec, &instance)
	assert.Regexp(t, `^RCLINIC-[0-9A-Z]{6}$`, instance.ID)
	assert.Equal(t, "active", instance.Status)

	var v struct {
		Status string `json:"status"`
	}
	rec = s.do(http.MethodGet, "/api/coupon-codes/"+instance.ID, "", nil)
	decode(t, rec, &v)
	assert.Equal(t, "valid", v.Status)

	rec = s.do(http.MethodPost, "/api/coupon-codes/"+instance.ID+"/redeem", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/coupon-codes/"+instance.ID+"/redeem", "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	decode(t, rec, &v)
	assert.Equal(t, "redeemed", v.Status)

	rec = s.do(http.MethodGet, "/api/coupon-codes/rclinic-abc123", "", nil)
	decode(t, rec, &v)
	assert.Equal(t, "redeemed", v.Status)

	rec = s.do(http.MethodGet, "/api/coupon-codes/RCLINIC-NOPE00", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &v)
	assert.Equal(t, "invalid", v.Status)

	token := s.login("admin")
	rec = s.do(http.MethodGet, "/api/admin/reports/redemptions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Total int `json:"total"`
	}
	decode(t, rec, &report)
	assert.Equal(t, 2, report.Total)
}

func TestPublicCatalog(t *testing.T) {
	s := newTestServer(t)

	var offers []map[string]any
	decode(t, s.do(http.MethodGet, "/api/offers?placement=secondary", "", nil), &offers)
	assert.Len(t, offers, 1)

	var coupons []map[string]any
	decode(t, s.do(http.MethodGet, "/api/coupons", "", nil), &coupons)
	assert.Len(t, coupons, 4)

	rec := s.do(http.MethodGet, "/api/coupons/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var search struct {
		Count int `json:"count"`
	}
	decode(t, s.do(http.MethodGet, "/api/search/specialists?ciudad=Guayaquil&especialidad=Cardiolog%C3%ADa", "", nil), &search)
	assert.Equal(t, 1, search.Count)
}

func TestAdminAccess(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/admin/offers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/admin/offers", s.login("jperez"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/admin/offers", s.login("ADMIN"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", "", gin.H{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOfferCRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin")

	rec := s.do(http.MethodPost, "/api/admin/offers", token, gin.H{"category": "Laboratorio"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/admin/offers", token, gin.H{
		"category": "Laboratorio", "title": "Hemograma", "provider": "Interlab",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var offer struct {
		ID        int64  `json:"id"`
		Status    string `json:"status"`
		Placement string `json:"placement"`
		Title     string `json:"title"`
	}
	decode(t, rec, &offer)
	assert.Equal(t, "visible", offer.Status)
	assert.Equal(t, "featured", offer.Placement)
	path := fmt.Sprintf("/api/admin/offers/%d", offer.ID)

	rec = s.do(http.MethodPut, path, token, gin.H{"title": "Hemograma Completo"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &offer)
	assert.Equal(t, "Hemograma Completo", offer.Title)

	rec = s.do(http.MethodPatch, path+"/toggle", token, nil)
	decode(t, rec, &offer)
	assert.Equal(t, "hidden", offer.Status)

	rec = s.do(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, token, nil).Code)

	rec = s.do(http.MethodDelete, path+"?confirm=true", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, token, nil).Code)

	var all []map[string]any
	decode(t, s.do(http.MethodGet, "/api/admin/offers", token, nil), &all)
	assert.Len(t, all, 5)

	rec = s.do(http.MethodGet, "/api/admin/offers/schema", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var schema struct {
		Name   string `json:"name"`
		Fields []struct {
			Name string `json:"name"`
		} `json:"fields"`
	}
	decode(t, rec, &schema)
	assert.Equal(t, "offer", schema.Name)
	assert.NotEmpty(t, schema.Fields)
}

func TestAdminCouponExpiryDate(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin")

	rec := s.do(http.MethodPost, "/api/admin/coupons", token, gin.H{
		"brandName": "Fybeca", "discount": "10%", "expiryDate": "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var coupon struct {
		ID         int64  `json:"id"`
		ExpiryDate string `json:"expiryDate"`
	}
	decode(t, rec, &coupon)
	assert.Equal(t, "2026-12-31", coupon.ExpiryDate)
	path := fmt.Sprintf("/api/admin/coupons/%d", coupon.ID)

	rec = s.do(http.MethodPut, path, token, gin.H{"expiryDate": "31/12/2026"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, path, token, gin.H{"expiryDate": "2027-01-15T10:00:00-05:00"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &coupon)
	assert.Equal(t, "2027-01-15", coupon.ExpiryDate)

	rec = s.do(http.MethodPut, path, token, gin.H{"expiryDate": s.day(-1)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &coupon)
	assert.Equal(t, s.day(-1), coupon.ExpiryDate)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/coupons/%d/generate", coupon.ID), "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var instance struct {
		ID string `json:"id"`
	}
	decode(t, rec, &instance)

	var v struct {
		Status string `json:"status"`
	}
	decode(t, s.do(http.MethodGet, "/api/coupon-codes/"+instance.ID, "", nil), &v)
	assert.Equal(t, "expired", v.Status)
}

func TestAdminMedicalCenterSlug(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin")

	rec := s.do(http.MethodPost, "/api/admin/medical-centers", token, gin.H{"name": "Clínica  Alcívar", "city": "Guayaquil"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var mc struct {
		ID string `json:"id"`
	}
	decode(t, rec, &mc)
	assert.Equal(t, "clínica-alcívar", mc.ID)

	rec = s.do(http.MethodPost, "/api/admin/medical-centers", token, gin.H{"name": "Clínica Alcívar", "city": "Guayaquil"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminScheduleUserPasswords(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin")
	user := gin.H{
		"firstName": "Ana", "lastName": "García", "username": "agarcia", "email": "agarcia@rclinic.ec",
		"medicalCenterId": "kennedy", "role": "doctor", "specialistId": 2,
	}

	rec := s.do(http.MethodPost, "/api/admin/schedule-users", token, user)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	user["password"] = "secreto1"
	user["confirmPassword"] = "secreto2"
	rec = s.do(http.MethodPost, "/api/admin/schedule-users", token, user)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	user["confirmPassword"] = "secreto1"
	rec = s.do(http.MethodPost, "/api/admin/schedule-users", token, user)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secreto1")
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &created)

	// An edit without a password keeps the old one.
	rec = s.do(http.MethodPut, fmt.Sprintf("/api/admin/schedule-users/%d", created.ID), token, gin.H{"lastName": "García López"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/auth/login", "", gin.H{"username": "agarcia", "password": "secreto1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAgendaFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin")
	tomorrow := s.day(1)

	rec := s.do(http.MethodGet, "/api/agenda?bucket=today", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var agenda struct {
		Today string `json:"today"`
		Days  []struct {
			Date         string `json:"date"`
			Appointments []struct {
				ID   int64  `json:"id"`
				Time string `json:"time"`
			} `json:"appointments"`
		} `json:"days"`
	}
	decode(t, rec, &agenda)
	assert.Equal(t, s.day(0), agenda.Today)
	require.Len(t, agenda.Days, 1)
	require.Len(t, agenda.Days[0].Appointments, 3)
	assert.Equal(t, "09:00", agenda.Days[0].Appointments[0].Time)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/agenda?bucket=year", admin, nil).Code)

	var batch services.ReminderBatch
	decode(t, s.do(http.MethodGet, "/api/agenda/reminders/"+tomorrow, admin, nil), &batch)
	assert.Equal(t, 2, batch.Count)

	rec = s.do(http.MethodPost, "/api/agenda/reminders/"+tomorrow, admin, gin.H{"expectedCount": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/agenda/reminders/"+tomorrow, admin, gin.H{"expectedCount": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &batch)
	assert.Equal(t, 2, batch.Sent)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/agenda/appointments/4/confirm", admin, nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/agenda/appointments/4/cancel", admin, nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/agenda/appointments/1/confirm", admin, nil).Code)

	var logs []map[string]any
	decode(t, s.do(http.MethodGet, "/api/admin/reminder-logs", admin, nil), &logs)
	assert.Len(t, logs, 2)

	doctor := s.login("jperez")
	decode(t, s.do(http.MethodGet, "/api/agenda?bucket=week", doctor, nil), &agenda)
	total := 0
	for _, d := range agenda.Days {
		total += len(d.Appointments)
	}
	assert.Equal(t, 4, total)

	// Appointment 5 belongs to the other doctor.
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/agenda/appointments/5/cancel", doctor, nil).Code)
}

func TestBookingWizardSession(t *testing.T) {
	s := newTestServer(t)

	var view struct {
		Wizard struct {
			Step string `json:"step"`
			Date string `json:"date"`
			Time string `json:"time"`
		} `json:"wizard"`
		QuickPickDates []string `json:"quickPickDates"`
		AvailableTimes []string `json:"availableTimes"`
		Summary        *struct {
			Time string `json:"time"`
		} `json:"summary"`
		Appointment *struct {
			ID int64 `json:"id"`
		} `json:"appointment"`
	}

	rec := s.do(http.MethodPost, "/api/booking/wizard/time", "", gin.H{"time": "09:00"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/booking/wizard/specialist", "", gin.H{"specialistId": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &view)
	assert.Equal(t, "schedule", view.Wizard.Step)
	assert.Equal(t, s.day(1), view.Wizard.Date)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, view.AvailableTimes)
	assert.Equal(t, []string{s.day(0), s.day(1), s.day(2)}, view.QuickPickDates)

	// The session carries the specialist id, not the record.
	require.Len(t, s.cookies, 1)
	assert.Less(t, len(s.cookies[0].Value), 1024)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/booking/wizard/date", "", gin.H{"date": s.day(-1)}).Code)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/booking/wizard/time", "", gin.H{"time": "23:00"}).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/booking/wizard/time", "", gin.H{"time": "10:00"}).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/booking/wizard/next", "", nil).Code)

	rec = s.do(http.MethodPost, "/api/booking/wizard/patient", "", gin.H{"firstName": "Elena", "lastName": "Rodriguez"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/booking/wizard/patient", "", gin.H{"firstName": "Elena", "lastName": "Rodriguez", "phone": "0987654321"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &view)
	assert.Equal(t, "confirmation", view.Wizard.Step)
	require.NotNil(t, view.Summary)
	assert.Equal(t, "10:00", view.Summary.Time)
	require.NotNil(t, view.Appointment)

	appt, err := s.stores.Appointments.Get(context.Background(), view.Appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elena Rodriguez", appt.PatientName)

	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/booking/wizard/back", "", nil).Code)

	var reset struct {
		Wizard struct {
			Step string `json:"step"`
			Date string `json:"date"`
		} `json:"wizard"`
		Summary any `json:"summary"`
	}
	decode(t, s.do(http.MethodPost, "/api/booking/wizard/reset", "", nil), &reset)
	assert.Equal(t, "list", reset.Wizard.Step)
	assert.Empty(t, reset.Wizard.Date)
	assert.Nil(t, reset.Summary)
}

func TestReferralProgram(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/referrals/register", "", gin.H{"name": "Pedro Mora", "email": "pmora@example.com", "phone": "0991112222"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reg struct {
		Referrer struct {
			ID           int64  `json:"id"`
			ReferralCode string `json:"referralCode"`
			Status       string `json:"status"`
		} `json:"referrer"`
	}
	decode(t, rec, &reg)
	assert.Equal(t, "pending", reg.Referrer.Status)

	rec = s.do(http.MethodPost, "/auth/referrer-login", "", gin.H{"code": reg.Referrer.ReferralCode})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	admin := s.login("admin")
	path := fmt.Sprintf("/api/admin/referrers/%d", reg.Referrer.ID)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPatch, path+"/approve", admin, nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPatch, path+"/reject", admin, nil).Code)

	rec = s.do(http.MethodPost, "/auth/referrer-login", "", gin.H{"code": reg.Referrer.ReferralCode})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var session struct {
		Token string `json:"token"`
	}
	decode(t, rec, &session)

	rec = s.do(http.MethodGet, "/api/referrals/dashboard", session.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash services.ReferralDashboard
	decode(t, rec, &dash)
	assert.Equal(t, "https://rclinic.ec/#/registro-cliente?ref="+reg.Referrer.ReferralCode, dash.ReferralLink)

	// Staff tokens do not open the referral portal.
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/referrals/dashboard", admin, nil).Code)
}

func TestScheduleConfigEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin")

	rec := s.do(http.MethodPost, "/api/admin/schedules/2/times", admin, gin.H{"day": "Lunes", "time": "07:30"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		WorkingHours map[string][]string `json:"workingHours"`
	}
	decode(t, s.do(http.MethodGet, "/api/admin/schedules/2", admin, nil), &out)
	assert.Equal(t, []string{"07:30"}, out.WorkingHours["Lunes"])

	rec = s.do(http.MethodDelete, "/api/admin/schedules/2/times?day=Lunes&time=07:30", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after struct {
		WorkingHours map[string][]string `json:"workingHours"`
	}
	decode(t, rec, &after)
	assert.Empty(t, after.WorkingHours["Lunes"])
	assert.Equal(t, []string{"08:30", "09:30"}, after.WorkingHours["Martes"])

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/admin/schedules/2/times", admin, gin.H{"day": "Sábado", "time": "07:30"}).Code)
}

func TestAuthMe(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/auth/me", s.login("jperez"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Role string `json:"role"`
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	decode(t, rec, &me)
	assert.Equal(t, "doctor", me.Role)
	assert.Equal(t, "jperez", me.User.Username)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/auth/me", "", nil).Code)
}
