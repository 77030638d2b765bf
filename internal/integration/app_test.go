package integration_test

import (
	"log/slog"
	"os"

	"github.com/dkaratas/theatre-reservation-system/internal/app"
	"github.com/dkaratas/theatre-reservation-system/internal/mailer"
	"github.com/dkaratas/theatre-reservation-system/internal/repository"
	appvalidator "github.com/dkaratas/theatre-reservation-system/internal/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	hallRepo := repository.NewPostgresHallRepository(db)
	actorRepo := repository.NewPostgresActorRepository(db)
	genreRepo := repository.NewPostgresGenreRepository(db)
	playRepo := repository.NewPostgresPlayRepository(db)
	performanceRepo := repository.NewPostgresPerformanceRepository(db)
	ticketRepo := repository.NewPostgresTicketRepository(db)
	reservationRepo := repository.NewPostgresReservationRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		hallRepo,
		actorRepo,
		genreRepo,
		playRepo,
		performanceRepo,
		ticketRepo,
		reservationRepo,
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Redis:  redisClient,
		Mailer: mockMailer,
	}, nil
}
