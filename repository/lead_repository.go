package repository

import (
	"context"
	"errors"
	"time"

	"quickgfe/domain"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead is a submission as recorded under its reference ID.
type Lead struct {
	ReferenceID string
	Submission  domain.LeadSubmission
	ReceivedAt  time.Time
}

type LeadRepository interface {
	Save(ctx context.Context, lead Lead) error
	FindByReference(ctx context.Context, referenceID string) (Lead, error)
}
