package repository

import (
	"context"
	"errors"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Hall, *domain.Metadata, error) {
	query := `
		SELECT COUNT(*) OVER(), id, name, rows, seats_per_row
		FROM halls
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	halls := make([]domain.Hall, 0)
	totalRecords := 0

	for rows.Next() {
		var hall domain.Hall

		err = rows.Scan(&totalRecords, &hall.ID, &hall.Name, &hall.Rows, &hall.SeatsPerRow)
		if err != nil {
			return nil, nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return halls, metadata, nil
}

func (p *PostgresHallRepository) GetByID(ctx context.Context, id int) (*domain.Hall, error) {
	query := `
		SELECT id, name, rows, seats_per_row
		FROM halls
		WHERE id = $1
	`

	var hall domain.Hall

	err := p.db.QueryRow(ctx, query, id).Scan(&hall.ID, &hall.Name, &hall.Rows, &hall.SeatsPerRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresHallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	query := `
		INSERT INTO halls (name, rows, seats_per_row)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	return p.db.QueryRow(ctx, query, hall.Name, hall.Rows, hall.SeatsPerRow).Scan(&hall.ID)
}

// Replace swaps the hall's layout for a new one. The hall row is locked FOR
// UPDATE for the duration of the check, so two concurrent replacements cannot
// both pass it and in-flight ticket commits, which hold the same row FOR
// SHARE while validating, must finish first and are then visible to the
// stranded-seat check below. A layout that would leave any committed ticket
// outside the grid is rejected with ErrCapacityShrink.
func (p *PostgresHallRepository) Replace(ctx context.Context, hall domain.Hall) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT id
			FROM halls
			WHERE id = $1
			FOR UPDATE
		`

		var id int

		err := tx.QueryRow(ctx, query, hall.ID).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query = `
			SELECT COALESCE(MAX(t.seat_row), 0), COALESCE(MAX(t.seat_num), 0)
			FROM tickets t
			JOIN performances pf ON t.performance_id = pf.id
			WHERE pf.hall_id = $1
		`

		var maxRow, maxSeat int

		err = tx.QueryRow(ctx, query, hall.ID).Scan(&maxRow, &maxSeat)
		if err != nil {
			return err
		}

		if hall.Rows < maxRow || hall.SeatsPerRow < maxSeat {
			return domain.ErrCapacityShrink
		}

		query = `
			UPDATE halls
			SET name = $1, rows = $2, seats_per_row = $3
			WHERE id = $4
		`

		_, err = tx.Exec(ctx, query, hall.Name, hall.Rows, hall.SeatsPerRow, hall.ID)

		return err
	})
}
