package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rclinic-backend/config"
	"rclinic-backend/controllers"
	"rclinic-backend/routes"
	"rclinic-backend/services"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

const redemptionLockTTL = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	config.InitLogger(&cfg.App)
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info().Str("environment", cfg.App.Environment).Str("store", cfg.StoreDriver).Msg("starting rclinic backend")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET not set, generating an ephemeral secret; tokens will not survive a restart")
		cfg.JWT.Secret = utils.GenerateJWTSecret()
	}

	loc, err := cfg.Agenda.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid agenda timezone")
	}

	stores, err := openStores(ctx, cfg, loc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open stores")
	}

	lock := services.RedemptionLock(services.NewLocalLock())
	redisClient, err := config.ConnectRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		lock = services.NewRedisLock(redisClient, redemptionLockTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("coupon redemption lock backed by Redis")
	}

	var notifier services.Notifier = services.LogNotifier{}
	if cfg.Twilio.Enabled() {
		notifier = services.NewTwilioNotifier(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.PhoneNumber, cfg.Twilio.WhatsAppNumber)
		log.Info().Msg("reminders delivered through Twilio")
	}

	now := time.Now
	reminders := services.NewReminderService(stores, notifier, now)
	agenda := services.NewAgendaService(stores, reminders, loc, now)
	referrals := services.NewReferralService(stores, now)
	svc := controllers.Services{
		Stores:    stores,
		Auth:      services.NewAuthService(stores, referrals, cfg.JWT.Secret, cfg.JWT.TTL(), now),
		Coupons:   services.NewCouponService(stores, lock, now),
		Booking:   services.NewBookingService(stores, cfg.Booking.PersistConfirmed, loc, now),
		Search:    services.NewSearchService(stores),
		Agenda:    agenda,
		Reminders: reminders,
		Referrals: referrals,
		Schedules: services.NewScheduleConfigService(stores),
		Now:       now,
	}

	if cfg.Reminder.Cron != "" {
		scheduler, err := services.StartReminderScheduler(cfg.Reminder.Cron, agenda)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start reminder scheduler")
		}
		defer scheduler.Stop()
	}

	r := routes.SetupRouter(cfg, controllers.NewHandlers(svc, cfg.JWT.TTL(), cfg.Session.Secure))
	printRoutes(r)

	server := &http.Server{
		Addr:           cfg.Server.GetServerAddr(),
		Handler:        r,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}
	log.Info().Msg("Server exited gracefully")
}

// openStores builds the repositories for the configured driver, seeded with
// the demo content dated relative to today in the agenda time zone.
func openStores(ctx context.Context, cfg *config.Config, loc *time.Location) (*store.Stores, error) {
	hash, err := utils.HashPassword(cfg.SeedPassword)
	if err != nil {
		return nil, err
	}
	seed := store.DefaultSeed(time.Now().In(loc), hash)

	if cfg.StoreDriver != "postgres" {
		return store.NewMemoryStores(seed), nil
	}
	db, err := config.ConnectDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	return store.NewGormStores(ctx, db, seed)
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		log.Debug().Str("method", route.Method).Str("path", route.Path).Msg("route")
	}
}
