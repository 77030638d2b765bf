package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dkaratas/theatre-reservation-system/internal/domain"
	"github.com/redis/go-redis/v9"
)

const availableCountTTL = 30 * time.Second

// AvailabilityQuery is the read side of the ledger: which seats a
// performance has given out and how many remain. Counts are cached in Redis
// for a short window; the database stays the source of truth and the cache
// is dropped whenever the ledger's state changes.
type AvailabilityQuery struct {
	performances domain.PerformanceRepository
	tickets      domain.TicketRepository
	cache        redis.UniversalClient
}

// NewAvailabilityQuery builds the query service. A nil cache disables
// caching and every call hits the repositories directly.
func NewAvailabilityQuery(
	performances domain.PerformanceRepository,
	tickets domain.TicketRepository,
	cache redis.UniversalClient,
) *AvailabilityQuery {
	return &AvailabilityQuery{
		performances: performances,
		tickets:      tickets,
		cache:        cache,
	}
}

// TakenSeats returns the committed seat positions of a performance ordered
// by (row, seat) ascending. A performance with no tickets yields an empty
// slice. ErrRecordNotFound when the performance does not exist.
func (q *AvailabilityQuery) TakenSeats(ctx context.Context, performanceID int) ([]domain.SeatPosition, error) {
	if _, err := q.performances.GetHall(ctx, performanceID); err != nil {
		return nil, err
	}

	return q.tickets.GetSeatsByPerformance(ctx, performanceID)
}

// AvailableCount returns hall capacity minus committed tickets. A negative
// result means the store holds more tickets than the hall can seat; that is
// reported as ErrSeatAccounting rather than clamped, since it indicates
// corruption, not user input.
func (q *AvailabilityQuery) AvailableCount(ctx context.Context, performanceID int) (int, error) {
	if q.cache != nil {
		cached, err := q.cache.Get(ctx, availableCountKey(performanceID)).Result()
		if err == nil {
			if count, convErr := strconv.Atoi(cached); convErr == nil {
				return count, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			return 0, fmt.Errorf("failed to read availability cache: %w", err)
		}
	}

	hall, err := q.performances.GetHall(ctx, performanceID)
	if err != nil {
		return 0, err
	}

	taken, err := q.tickets.CountByPerformance(ctx, performanceID)
	if err != nil {
		return 0, err
	}

	available := hall.Capacity() - taken
	if available < 0 {
		return 0, fmt.Errorf("%w: performance %d has %d tickets for capacity %d",
			domain.ErrSeatAccounting, performanceID, taken, hall.Capacity())
	}

	if q.cache != nil {
		// This refill can land after a concurrent commit's Invalidate and
		// re-store a count computed before that commit. The staleness is
		// bounded by the TTL and never affects correctness: commits go
		// through the database, not this count.
		if err := q.cache.Set(ctx, availableCountKey(performanceID), available, availableCountTTL).Err(); err != nil {
			return 0, fmt.Errorf("failed to update availability cache: %w", err)
		}
	}

	return available, nil
}

// Invalidate drops the cached count for a performance. Called after every
// successful commit or release.
func (q *AvailabilityQuery) Invalidate(ctx context.Context, performanceID int) error {
	if q.cache == nil {
		return nil
	}

	return q.cache.Del(ctx, availableCountKey(performanceID)).Err()
}

func availableCountKey(performanceID int) string {
	return fmt.Sprintf("availability:%d", performanceID)
}
