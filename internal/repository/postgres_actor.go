package repository

import (
	"context"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresActorRepository struct {
	db *pgxpool.Pool
}

func NewPostgresActorRepository(db *pgxpool.Pool) *PostgresActorRepository {
	return &PostgresActorRepository{
		db: db,
	}
}

func (p *PostgresActorRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Actor, *domain.Metadata, error) {
	query := `
		SELECT COUNT(*) OVER(), id, first_name, last_name
		FROM actors
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	actors := make([]domain.Actor, 0)
	totalRecords := 0

	for rows.Next() {
		var actor domain.Actor

		err = rows.Scan(&totalRecords, &actor.ID, &actor.FirstName, &actor.LastName)
		if err != nil {
			return nil, nil, err
		}

		actors = append(actors, actor)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return actors, metadata, nil
}

func (p *PostgresActorRepository) Create(ctx context.Context, actor *domain.Actor) error {
	query := `
		INSERT INTO actors (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id
	`

	return p.db.QueryRow(ctx, query, actor.FirstName, actor.LastName).Scan(&actor.ID)
}
