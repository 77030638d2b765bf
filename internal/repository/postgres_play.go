package repository

import (
	"context"
	"encoding/json"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPlayRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPlayRepository(db *pgxpool.Pool) *PostgresPlayRepository {
	return &PostgresPlayRepository{
		db: db,
	}
}

const playSelect = `
	SELECT
		COUNT(*) OVER(),
		pl.id,
		pl.title,
		pl.description,
		COALESCE(jsonb_agg(
			DISTINCT jsonb_build_object(
				'ID', a.id,
				'FirstName', a.first_name,
				'LastName', a.last_name
			)) FILTER (WHERE a.id IS NOT NULL), '[]'),
		COALESCE(jsonb_agg(
			DISTINCT jsonb_build_object(
				'ID', g.id,
				'Name', g.name
			)) FILTER (WHERE g.id IS NOT NULL), '[]')
	FROM plays pl
	LEFT JOIN play_actors pa ON pa.play_id = pl.id
	LEFT JOIN actors a ON a.id = pa.actor_id
	LEFT JOIN play_genres pg ON pg.play_id = pl.id
	LEFT JOIN genres g ON g.id = pg.genre_id
`

func (p *PostgresPlayRepository) GetAll(ctx context.Context, filters domain.PlayFilters) ([]domain.Play, *domain.Metadata, error) {
	query := playSelect + `
		WHERE ($1 = '' OR pl.title ILIKE '%' || $1 || '%')
		AND ($2::int[] IS NULL OR EXISTS (
			SELECT 1 FROM play_genres fg
			WHERE fg.play_id = pl.id AND fg.genre_id = ANY($2)
		))
		AND ($3::int[] IS NULL OR EXISTS (
			SELECT 1 FROM play_actors fa
			WHERE fa.play_id = pl.id AND fa.actor_id = ANY($3)
		))
		GROUP BY pl.id, pl.title, pl.description
		ORDER BY pl.id
		LIMIT $4 OFFSET $5
	`

	var genreIDs, actorIDs []int
	if len(filters.GenreIDs) > 0 {
		genreIDs = filters.GenreIDs
	}
	if len(filters.ActorIDs) > 0 {
		actorIDs = filters.ActorIDs
	}

	rows, err := p.db.Query(ctx, query, filters.Title, genreIDs, actorIDs, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	plays := make([]domain.Play, 0)
	totalRecords := 0

	for rows.Next() {
		play, err := scanPlay(rows, &totalRecords)
		if err != nil {
			return nil, nil, err
		}

		plays = append(plays, *play)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return plays, metadata, nil
}

func (p *PostgresPlayRepository) GetByID(ctx context.Context, id int) (*domain.Play, error) {
	query := playSelect + `
		WHERE pl.id = $1
		GROUP BY pl.id, pl.title, pl.description
	`

	rows, err := p.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}

		return nil, domain.ErrRecordNotFound
	}

	var totalRecords int

	return scanPlay(rows, &totalRecords)
}

func scanPlay(rows pgx.Rows, totalRecords *int) (*domain.Play, error) {
	var play domain.Play
	var actorsJSON, genresJSON []byte

	err := rows.Scan(
		totalRecords,
		&play.ID,
		&play.Title,
		&play.Description,
		&actorsJSON,
		&genresJSON,
	)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(actorsJSON, &play.Actors); err != nil {
		return nil, err
	}
	if err = json.Unmarshal(genresJSON, &play.Genres); err != nil {
		return nil, err
	}

	return &play, nil
}

// Create persists the play and links its actors and genres. The link rows go
// in with CopyFrom; a reference to a missing actor or genre fires the foreign
// key and rolls everything back.
func (p *PostgresPlayRepository) Create(ctx context.Context, play *domain.Play) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO plays (title, description)
			VALUES ($1, $2)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query, play.Title, play.Description).Scan(&play.ID)
		if err != nil {
			return err
		}

		if len(play.Actors) > 0 {
			rows := make([][]any, 0, len(play.Actors))
			for _, actor := range play.Actors {
				rows = append(rows, []any{play.ID, actor.ID})
			}

			_, err = tx.CopyFrom(
				ctx,
				pgx.Identifier{"play_actors"},
				[]string{"play_id", "actor_id"},
				pgx.CopyFromRows(rows),
			)
			if err != nil {
				return err
			}
		}

		if len(play.Genres) > 0 {
			rows := make([][]any, 0, len(play.Genres))
			for _, genre := range play.Genres {
				rows = append(rows, []any{play.ID, genre.ID})
			}

			_, err = tx.CopyFrom(
				ctx,
				pgx.Identifier{"play_genres"},
				[]string{"play_id", "genre_id"},
				pgx.CopyFromRows(rows),
			)
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}
