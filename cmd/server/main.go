package main // Entry point package

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lovepcsy/salon-site/internal/config"
	"github.com/lovepcsy/salon-site/internal/database"
	"github.com/lovepcsy/salon-site/internal/handler"
	mw "github.com/lovepcsy/salon-site/internal/middleware"
	"github.com/lovepcsy/salon-site/internal/notify"
	"github.com/lovepcsy/salon-site/internal/queue"
	"github.com/lovepcsy/salon-site/internal/repository"
	"github.com/lovepcsy/salon-site/internal/router"
	"github.com/lovepcsy/salon-site/internal/session"
	"github.com/lovepcsy/salon-site/internal/upload"
	"github.com/lovepcsy/salon-site/internal/view"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	initLogger(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	// Sessions live in Redis so they survive restarts and expire
	// server-side.  Without Redis we fall back to the in-memory store
	// and disable login rate limiting.
	sessionTTL := time.Duration(cfg.SessionTTLHrs) * time.Hour
	rdb := config.NewRedisClient()
	var store session.Store
	if rdb != nil {
		store = session.NewRedisStore(rdb, sessionTTL)
	} else {
		log.Warn().Msg("redis unavailable, using in-memory sessions")
		store = session.NewMemoryStore(sessionTTL)
	}

	saver := upload.NewSaver(cfg.UploadRoot)

	users := repository.NewUserRepo(db)
	services := repository.NewServiceRepo(db)
	posts := repository.NewPostRepo(db)
	banners := repository.NewBannerRepo(db)
	sections := repository.NewSectionRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	inquiries := repository.NewInquiryRepo(db)

	website := handler.NewWebsiteHandler(banners, sections, inquiries)
	serviceH := handler.NewServiceHandler(services)
	postH := handler.NewPostHandler(posts, saver)
	appointmentH := handler.NewAppointmentHandler(appointments, notify.PublishAppointmentBooked)
	authH := handler.NewAuthHandler(cfg, users, store, saver)
	adminH := handler.NewAdminHandler(cfg, users, banners, sections, inquiries, store, saver)

	renderer, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("template parse failed")
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(emw.Recover())
	e.Use(mw.RequestLogger())

	router.RegisterBase(e, cfg.UploadRoot)
	router.RegisterPublic(e, website, serviceH, postH, appointmentH)
	router.RegisterAuth(e, authH, config.LoadLoginRateLimitConfig(), rdb)
	router.RegisterAdmin(e, adminH, serviceH, postH, appointmentH, store, cfg.SessionSecret)

	// Background consumer that writes booked appointments to the log
	// file.  It reconnects on broker failures and never stops the server.
	go func() {
		if err := queue.StartAppointmentConsumer(); err != nil {
			log.Warn().Err(err).Msg("appointment consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// initLogger configures the global zerolog logger: console output in
// dev, JSON elsewhere.
func initLogger(env string) {
	if env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
