package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

const bookingColumns = `id, party_id, opening_minutes, start_time, base_amount, currency, vat_rate, status, created_at, confirmed_at, cancelled_at`

type BookingRepository struct {
	db      *sql.DB
	parties *PartyRepository
	clock   domain.Clock
}

func NewBookingRepository(db *sql.DB, parties *PartyRepository, clk domain.Clock) *BookingRepository {
	return &BookingRepository{db: db, parties: parties, clock: clk}
}

func (r *BookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	s := booking.Snapshot()

	query := `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.Reference,
		s.PartyID,
		s.OpeningTime.Hour()*60+s.OpeningTime.Minute(),
		s.StartTime,
		s.BasePrice.Amount(),
		s.BasePrice.Currency().Code(),
		s.VAT.Ratio(),
		string(s.State),
		s.CreatedAt,
		nullTime(s.ConfirmedAt),
		nullTime(s.CancelledAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, reference uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
	FROM bookings
	WHERE id = $1
	`

	snapshot, err := scanSnapshot(r.db.QueryRowContext(ctx, query, reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrBookingNotFound
		}

		return nil, err
	}

	party, err := r.parties.find(ctx, snapshot.PartyID)
	if err != nil {
		return nil, err
	}

	return domain.RestoreBooking(snapshot, party, r.clock)
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	s := booking.Snapshot()

	query := `
	UPDATE bookings
	SET status = $1, confirmed_at = $2, cancelled_at = $3
	WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, string(s.State), nullTime(s.ConfirmedAt), nullTime(s.CancelledAt), s.Reference)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", s.Reference, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ports.ErrBookingNotFound
	}

	return nil
}

func (r *BookingRepository) ListByParty(ctx context.Context, partyID uuid.UUID, limit int) ([]*domain.Booking, error) {
	party, err := r.parties.find(ctx, partyID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + bookingColumns + `
	FROM bookings
	WHERE party_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, partyID, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}

		b, err := domain.RestoreBooking(snapshot, party, r.clock)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
	DELETE FROM bookings
	WHERE status = $1 AND start_time < $2
	`

	result, err := r.db.ExecContext(ctx, query, string(domain.BookingCancelled), cutoff)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (domain.BookingSnapshot, error) {
	var s domain.BookingSnapshot
	var openingMinutes int
	var amount, vatRate decimal.Decimal
	var currencyCode, status string
	var confirmedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&s.Reference,
		&s.PartyID,
		&openingMinutes,
		&s.StartTime,
		&amount,
		&currencyCode,
		&vatRate,
		&status,
		&s.CreatedAt,
		&confirmedAt,
		&cancelledAt,
	)
	if err != nil {
		return domain.BookingSnapshot{}, err
	}

	currency, err := domain.NewCurrency(currencyCode)
	if err != nil {
		return domain.BookingSnapshot{}, fmt.Errorf("booking %s: %w", s.Reference, err)
	}

	vat, err := domain.NewPercent(vatRate)
	if err != nil {
		return domain.BookingSnapshot{}, fmt.Errorf("booking %s: %w", s.Reference, err)
	}

	opening, err := domain.NewTimeOfDay(openingMinutes/60, openingMinutes%60)
	if err != nil {
		return domain.BookingSnapshot{}, fmt.Errorf("booking %s: %w", s.Reference, err)
	}

	s.OpeningTime = opening
	s.BasePrice = domain.NewMoney(currency, amount)
	s.VAT = vat
	s.State = domain.BookingState(status)

	if confirmedAt.Valid {
		s.ConfirmedAt = &confirmedAt.Time
	}
	if cancelledAt.Valid {
		s.CancelledAt = &cancelledAt.Time
	}

	return s, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: *t, Valid: true}
}
