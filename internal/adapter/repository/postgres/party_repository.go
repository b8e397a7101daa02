package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

type PartyRepository struct {
	db    *sql.DB
	clock domain.Clock
}

func NewPartyRepository(db *sql.DB, clk domain.Clock) *PartyRepository {
	return &PartyRepository{db: db, clock: clk}
}

func (r *PartyRepository) Save(ctx context.Context, party domain.Party) error {
	var age sql.NullInt64
	var discount decimal.NullDecimal

	switch p := party.(type) {
	case *domain.User:
		age = sql.NullInt64{Int64: int64(p.Age()), Valid: true}
	case *domain.Company:
		discount = decimal.NullDecimal{Decimal: p.Discount().Ratio(), Valid: true}
	}

	query := `
	INSERT INTO parties (id, kind, age, discount)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, party.ID(), string(party.Kind()), age, discount); err != nil {
		return fmt.Errorf("failed to insert party: %w", err)
	}

	return nil
}

// GetByID loads the party and replays its latest bookings into its history.
func (r *PartyRepository) GetByID(ctx context.Context, partyID uuid.UUID) (domain.Party, error) {
	party, err := r.find(ctx, partyID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + bookingColumns + `
	FROM bookings
	WHERE party_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, partyID, domain.RecentBookingsLimit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var recent []*domain.Booking
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}

		b, err := domain.RestoreBooking(snapshot, party, r.clock)
		if err != nil {
			return nil, err
		}

		recent = append(recent, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := len(recent) - 1; i >= 0; i-- {
		party.AddBooking(recent[i])
	}

	return party, nil
}

func (r *PartyRepository) find(ctx context.Context, partyID uuid.UUID) (domain.Party, error) {
	query := `
	SELECT id, kind, age, discount
	FROM parties
	WHERE id = $1
	`

	var id uuid.UUID
	var kind string
	var age sql.NullInt64
	var discount decimal.NullDecimal

	err := r.db.QueryRowContext(ctx, query, partyID).Scan(&id, &kind, &age, &discount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrPartyNotFound
		}

		return nil, err
	}

	switch domain.PartyKind(kind) {
	case domain.PartyUser:
		user, err := domain.RestoreUser(id, int(age.Int64))
		if err != nil {
			return nil, err
		}
		return user, nil
	case domain.PartyCompany:
		pct, err := domain.NewPercent(discount.Decimal)
		if err != nil {
			return nil, err
		}
		return domain.RestoreCompany(id, pct), nil
	default:
		return nil, fmt.Errorf("unknown party kind %q for party %s", kind, id)
	}
}
