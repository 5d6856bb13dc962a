package repository

import (
	"context"
	"fmt"
	"sync"
)

// LeadRepositoryMemory is an in-memory implementation of LeadRepository.
// Leads do not survive a restart.
type LeadRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]Lead
}

// NewLeadRepositoryMemory creates a new in-memory lead repository.
func NewLeadRepositoryMemory() *LeadRepositoryMemory {
	return &LeadRepositoryMemory{
		data: make(map[string]Lead),
	}
}

// Save stores the lead in memory.
func (r *LeadRepositoryMemory) Save(_ context.Context, lead Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[lead.ReferenceID]; exists {
		return fmt.Errorf("lead %s already recorded", lead.ReferenceID)
	}
	r.data[lead.ReferenceID] = lead
	return nil
}

func (r *LeadRepositoryMemory) FindByReference(_ context.Context, referenceID string) (Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lead, ok := r.data[referenceID]
	if !ok {
		return Lead{}, fmt.Errorf("%s: %w", referenceID, ErrLeadNotFound)
	}
	return lead, nil
}
