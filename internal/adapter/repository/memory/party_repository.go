package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

type PartyRepository struct {
	mu      sync.RWMutex
	parties map[uuid.UUID]domain.Party
}

func NewPartyRepository() *PartyRepository {
	return &PartyRepository{parties: make(map[uuid.UUID]domain.Party)}
}

func (r *PartyRepository) Save(_ context.Context, party domain.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.parties[party.ID()] = party
	return nil
}

func (r *PartyRepository) GetByID(_ context.Context, partyID uuid.UUID) (domain.Party, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parties[partyID]
	if !ok {
		return nil, ports.ErrPartyNotFound
	}

	return p, nil
}
