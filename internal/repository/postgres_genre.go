package repository

import (
	"context"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresGenreRepository struct {
	db *pgxpool.Pool
}

func NewPostgresGenreRepository(db *pgxpool.Pool) *PostgresGenreRepository {
	return &PostgresGenreRepository{
		db: db,
	}
}

func (p *PostgresGenreRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Genre, *domain.Metadata, error) {
	query := `
		SELECT COUNT(*) OVER(), id, name
		FROM genres
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	genres := make([]domain.Genre, 0)
	totalRecords := 0

	for rows.Next() {
		var genre domain.Genre

		err = rows.Scan(&totalRecords, &genre.ID, &genre.Name)
		if err != nil {
			return nil, nil, err
		}

		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return genres, metadata, nil
}

func (p *PostgresGenreRepository) Create(ctx context.Context, genre *domain.Genre) error {
	query := `
		INSERT INTO genres (name)
		VALUES ($1)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, genre.Name).Scan(&genre.ID)
	if err != nil {
		if isUniqueViolation(err, "genres_name_key") {
			return domain.ErrDuplicateName
		}

		return err
	}

	return nil
}
