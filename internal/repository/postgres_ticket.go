package repository

import (
	"context"
	"errors"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ticketSeatConstraint is the unique index over (performance_id, seat_row,
// seat_num). Every double-booking attempt, no matter how many processes share
// the database, fails on this constraint.
const ticketSeatConstraint = "tickets_performance_seat_key"

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

// Insert validates the seat against the hall layout and records the ticket in
// one transaction. The hall row is read FOR SHARE, so a concurrent layout
// replacement (which locks the row FOR UPDATE) either finishes before the
// layout is read here, or waits until this insert commits and then sees the
// new ticket in its own stranded-seat check.
func (p *PostgresTicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		hall, err := lockHallForPerformance(ctx, tx, ticket.PerformanceID)
		if err != nil {
			return err
		}

		if err := domain.ValidateSeat(*hall, ticket.Row, ticket.Seat); err != nil {
			return err
		}

		query := `
			INSERT INTO tickets (seat_row, seat_num, performance_id, reservation_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

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

		return nil
	})
}

// lockHallForPerformance resolves the hall a performance plays in and takes a
// shared lock on the hall row for the rest of the transaction. Layout
// replacements lock the same row FOR UPDATE, so a commit can never validate
// against a grid that is shrunk out from under it.
func lockHallForPerformance(ctx context.Context, tx pgx.Tx, performanceID int) (*domain.Hall, error) {
	query := `
		SELECT h.id, h.name, h.rows, h.seats_per_row
		FROM halls h
		JOIN performances pf ON pf.hall_id = h.id
		WHERE pf.id = $1
		FOR SHARE OF h
	`

	var hall domain.Hall

	err := tx.QueryRow(ctx, query, performanceID).
		Scan(&hall.ID, &hall.Name, &hall.Rows, &hall.SeatsPerRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresTicketRepository) Delete(ctx context.Context, id int) (*domain.Ticket, error) {
	query := `
		DELETE FROM tickets
		WHERE id = $1
		RETURNING seat_row, seat_num, performance_id, reservation_id
	`

	ticket := domain.Ticket{ID: id}

	err := p.db.QueryRow(ctx, query, id).Scan(
		&ticket.Row,
		&ticket.Seat,
		&ticket.PerformanceID,
		&ticket.ReservationID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticket, nil
}

func (p *PostgresTicketRepository) GetSeatsByPerformance(ctx context.Context, performanceID int) ([]domain.SeatPosition, error) {
	query := `
		SELECT seat_row, seat_num
		FROM tickets
		WHERE performance_id = $1
		ORDER BY seat_row, seat_num
	`

	rows, err := p.db.Query(ctx, query, performanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.SeatPosition, 0)

	for rows.Next() {
		var seat domain.SeatPosition

		err = rows.Scan(&seat.Row, &seat.Seat)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresTicketRepository) CountByPerformance(ctx context.Context, performanceID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE performance_id = $1
	`

	var count int

	err := p.db.QueryRow(ctx, query, performanceID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
