package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkaratas/theatre-reservation-system/internal/booking"
	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/dkaratas/theatre-reservation-system/internal/mailer"
	"github.com/dkaratas/theatre-reservation-system/internal/repository"
	appvalidator "github.com/dkaratas/theatre-reservation-system/internal/validator"
	"github.com/dkaratas/theatre-reservation-system/internal/vcs"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "theatre-reservation-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	mailer    mailer.Mailer

	hallRepo        domain.HallRepository
	actorRepo       domain.ActorRepository
	genreRepo       domain.GenreRepository
	playRepo        domain.PlayRepository
	performanceRepo domain.PerformanceRepository
	ticketRepo      domain.TicketRepository
	reservationRepo domain.ReservationRepository

	ledger       *booking.Ledger
	availability *booking.AvailabilityQuery
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	hallRepo domain.HallRepository,
	actorRepo domain.ActorRepository,
	genreRepo domain.GenreRepository,
	playRepo domain.PlayRepository,
	performanceRepo domain.PerformanceRepository,
	ticketRepo domain.TicketRepository,
	reservationRepo domain.ReservationRepository,
) *Application {
	return &Application{
		config:          cfg,
		logger:          logger,
		db:              db,
		redis:           redisClient,
		validator:       validator,
		mailer:          mailer,
		hallRepo:        hallRepo,
		actorRepo:       actorRepo,
		genreRepo:       genreRepo,
		playRepo:        playRepo,
		performanceRepo: performanceRepo,
		ticketRepo:      ticketRepo,
		reservationRepo: reservationRepo,
		ledger:          booking.NewLedger(performanceRepo, ticketRepo, reservationRepo),
		availability:    booking.NewAvailabilityQuery(performanceRepo, ticketRepo, redisClient),
	}
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "Curtain <no-reply@curtain.dkaratas.dev>", "SMTP sender")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	hallRepo := repository.NewPostgresHallRepository(db)
	actorRepo := repository.NewPostgresActorRepository(db)
	genreRepo := repository.NewPostgresGenreRepository(db)
	playRepo := repository.NewPostgresPlayRepository(db)
	performanceRepo := repository.NewPostgresPerformanceRepository(db)
	ticketRepo := repository.NewPostgresTicketRepository(db)
	reservationRepo := repository.NewPostgresReservationRepository(db)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		smtpMailer,
		hallRepo,
		actorRepo,
		genreRepo,
		playRepo,
		performanceRepo,
		ticketRepo,
		reservationRepo,
	)

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(
			slog.NewTextHandler(os.Stdout, nil),
			otelslog.NewHandler(serviceName),
		))
	}

	return app.Serve()
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) Serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	r.Get("/health", app.GetHealth)

	r.Route("/plays", func(r chi.Router) {
		r.Get("/", app.GetPlays)
		r.Post("/", app.CreatePlay)
		r.Get("/{playId}", app.GetPlayById)
	})

	r.Route("/actors", func(r chi.Router) {
		r.Get("/", app.GetActors)
		r.Post("/", app.CreateActor)
	})

	r.Route("/genres", func(r chi.Router) {
		r.Get("/", app.GetGenres)
		r.Post("/", app.CreateGenre)
	})

	r.Route("/halls", func(r chi.Router) {
		r.Get("/", app.GetHalls)
		r.Post("/", app.CreateHall)
		r.Get("/{hallId}", app.GetHallById)
		r.Put("/{hallId}", app.ReplaceHall)
	})

	r.Route("/performances", func(r chi.Router) {
		r.Get("/", app.GetPerformances)
		r.Post("/", app.CreatePerformance)
		r.Get("/{performanceId}", app.GetPerformanceById)
		r.Get("/{performanceId}/seats", app.GetPerformanceSeats)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Get("/", app.GetReservations)
		r.Post("/", app.CreateReservation)
		r.Delete("/{reservationId}", app.DeleteReservation)
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Post("/", app.CreateTicket)
		r.Delete("/{ticketId}", app.DeleteTicket)
	})

	return r
}
