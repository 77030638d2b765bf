package repository

import (
	"context"
	"encoding/json"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// CreateWithTickets inserts the reservation and its tickets in one
// transaction. Every seat is re-validated against its hall layout under a
// shared lock on the hall row, so a concurrent layout replacement cannot
// strand any ticket of the basket; the seat uniqueness constraint fires
// inside the same transaction, so a single taken seat rolls back the entire
// basket.
func (p *PostgresReservationRepository) CreateWithTickets(ctx context.Context, reservation *domain.Reservation) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		halls := make(map[int]*domain.Hall)

		for _, ticket := range reservation.Tickets {
			hall, ok := halls[ticket.PerformanceID]
			if !ok {
				var err error

				hall, err = lockHallForPerformance(ctx, tx, ticket.PerformanceID)
				if err != nil {
					return err
				}

				halls[ticket.PerformanceID] = hall
			}

			if err := domain.ValidateSeat(*hall, ticket.Row, ticket.Seat); err != nil {
				return err
			}
		}

		query := `
			INSERT INTO reservations (reference, user_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query, reservation.Reference, reservation.UserID).
			Scan(&reservation.ID, &reservation.CreatedAt)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO tickets (seat_row, seat_num, performance_id, reservation_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		for i := range reservation.Tickets {
			ticket := &reservation.Tickets[i]
			ticket.ReservationID = reservation.ID

			err = tx.QueryRow(
				ctx,
				query,
				ticket.Row,
				ticket.Seat,
				ticket.PerformanceID,
				ticket.ReservationID).Scan(&ticket.ID)

			if err != nil {
				if isUniqueViolation(err, ticketSeatConstraint) {
					return domain.ErrSeatAlreadyTaken
				}
				if isForeignKeyViolation(err) {
					return domain.ErrRecordNotFound
				}

				return err
			}
		}

		return nil
	})
}

func (p *PostgresReservationRepository) GetSummariesByUserID(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.ReservationSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			r.id,
			r.reference,
			pl.title,
			h.name,
			pf.show_time,
			r.created_at,
			jsonb_agg(
				jsonb_build_object('Row', t.seat_row, 'Seat', t.seat_num)
				ORDER BY t.seat_row, t.seat_num
			)
		FROM reservations r
		JOIN tickets t ON t.reservation_id = r.id
		JOIN performances pf ON t.performance_id = pf.id
		JOIN plays pl ON pf.play_id = pl.id
		JOIN halls h ON pf.hall_id = h.id
		WHERE r.user_id = $1
		GROUP BY r.id, r.reference, pl.title, h.name, pf.show_time, r.created_at
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	reservations := make([]domain.ReservationSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var reservation domain.ReservationSummary
		var seatsJSON []byte

		err = rows.Scan(
			&totalRecords,
			&reservation.ID,
			&reservation.Reference,
			&reservation.PlayTitle,
			&reservation.HallName,
			&reservation.ShowTime,
			&reservation.CreatedAt,
			&seatsJSON,
		)
		if err != nil {
			return nil, nil, err
		}

		if err = json.Unmarshal(seatsJSON, &reservation.Seats); err != nil {
			return nil, nil, err
		}

		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return reservations, metadata, nil
}

// Delete removes a reservation; its tickets go with it via ON DELETE CASCADE,
// which releases every seat the basket held. The ids of the performances
// whose seats were freed are collected inside the same transaction so that
// callers can drop stale availability counts.
func (p *PostgresReservationRepository) Delete(ctx context.Context, id int) ([]int, error) {
	var performanceIDs []int

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT DISTINCT performance_id
			FROM tickets
			WHERE reservation_id = $1
		`

		rows, err := tx.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var performanceID int

			if err := rows.Scan(&performanceID); err != nil {
				return err
			}

			performanceIDs = append(performanceIDs, performanceID)
		}

		if err = rows.Err(); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return performanceIDs, nil
}
