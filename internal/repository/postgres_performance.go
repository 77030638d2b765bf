package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPerformanceRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPerformanceRepository(db *pgxpool.Pool) *PostgresPerformanceRepository {
	return &PostgresPerformanceRepository{
		db: db,
	}
}

func (p *PostgresPerformanceRepository) GetAll(
	ctx context.Context,
	filters domain.PerformanceFilters) ([]domain.PerformanceSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			pf.id,
			pf.show_time,
			pl.title,
			h.name,
			h.rows * h.seats_per_row
		FROM performances pf
		JOIN plays pl ON pf.play_id = pl.id
		JOIN halls h ON pf.hall_id = h.id
		WHERE ($1 = 0 OR pf.play_id = $1)
		AND ($2::date IS NULL OR pf.show_time::date = $2)
		ORDER BY pf.show_time, pf.id
		LIMIT $3 OFFSET $4
	`

	var date *time.Time
	if !filters.Date.IsZero() {
		date = &filters.Date
	}

	rows, err := p.db.Query(ctx, query, filters.PlayID, date, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	performances := make([]domain.PerformanceSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var performance domain.PerformanceSummary

		err = rows.Scan(
			&totalRecords,
			&performance.ID,
			&performance.ShowTime,
			&performance.PlayTitle,
			&performance.HallName,
			&performance.HallCapacity,
		)
		if err != nil {
			return nil, nil, err
		}

		performances = append(performances, performance)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return performances, metadata, nil
}

func (p *PostgresPerformanceRepository) GetByID(ctx context.Context, id int) (*domain.PerformanceDetail, error) {
	query := `
		SELECT
			pf.id,
			pf.show_time,
			pl.id,
			pl.title,
			pl.description,
			h.id,
			h.name,
			h.rows,
			h.seats_per_row
		FROM performances pf
		JOIN plays pl ON pf.play_id = pl.id
		JOIN halls h ON pf.hall_id = h.id
		WHERE pf.id = $1
	`

	var detail domain.PerformanceDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.ShowTime,
		&detail.Play.ID,
		&detail.Play.Title,
		&detail.Play.Description,
		&detail.Hall.ID,
		&detail.Hall.Name,
		&detail.Hall.Rows,
		&detail.Hall.SeatsPerRow,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &detail, nil
}

func (p *PostgresPerformanceRepository) GetHall(ctx context.Context, performanceID int) (*domain.Hall, error) {
	query := `
		SELECT h.id, h.name, h.rows, h.seats_per_row
		FROM performances pf
		JOIN halls h ON pf.hall_id = h.id
		WHERE pf.id = $1
	`

	var hall domain.Hall

	err := p.db.QueryRow(ctx, query, performanceID).Scan(&hall.ID, &hall.Name, &hall.Rows, &hall.SeatsPerRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresPerformanceRepository) Create(ctx context.Context, performance *domain.Performance) error {
	query := `
		INSERT INTO performances (play_id, hall_id, show_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := p.db.QueryRow(
		ctx,
		query,
		performance.PlayID,
		performance.HallID,
		performance.ShowTime).Scan(&performance.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}
