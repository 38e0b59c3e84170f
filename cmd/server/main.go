package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/campushub/facility-booking/internal/booking"
	"github.com/campushub/facility-booking/internal/clock"
	"github.com/campushub/facility-booking/internal/config"
	"github.com/campushub/facility-booking/internal/database"
	"github.com/campushub/facility-booking/internal/handler"
	"github.com/campushub/facility-booking/internal/logger"
	"github.com/campushub/facility-booking/internal/queue"
	"github.com/campushub/facility-booking/internal/repository"
	"github.com/campushub/facility-booking/internal/router"
)

func main() {
	// .env is a dev convenience; in deployment the environment is set by
	// the orchestrator and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	facilities := repository.NewFacilityRepo(db)
	slots := repository.NewSlotRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)

	engine := booking.NewService(
		repository.NewTx(db),
		facilities,
		slots,
		bookings,
		clock.NewSystem(),
		booking.CheckinPolicy{
			Enforced:   cfg.CheckinWindowEnforced,
			EarlyGrace: cfg.CheckinEarlyGrace,
		},
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	router.Register(e, cfg, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Facility: handler.NewFacilityHandler(engine),
		Booking:  handler.NewBookingHandler(engine),
		Admin:    handler.NewAdminBookingHandler(engine),
		Checkin:  handler.NewCheckinHandler(engine),
		Report:   handler.NewReportHandler(engine),
	}, rdb)

	// Notification consumer runs for the life of the process and
	// reconnects on its own; a broker outage never blocks startup.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			logger.ErrorLogger.WithError(err).Error("notification consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	logger.InfoLogger.WithField("addr", addr).WithField("env", cfg.Env).Info("server starting")
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
