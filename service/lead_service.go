package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"quickgfe/domain"
	"quickgfe/observability"
	"quickgfe/repository"
)

const referencePrefix = "QG-"

type LeadService struct {
	repo    repository.LeadRepository
	metrics *observability.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewLeadService creates a LeadService. metrics may be nil.
func NewLeadService(repo repository.LeadRepository, metrics *observability.Metrics, logger *slog.Logger) *LeadService {
	if logger == nil {
		logger = observability.DiscardLogger()
	}
	return &LeadService{repo: repo, metrics: metrics, logger: logger, now: time.Now}
}

// Submit records a lead against a quote and issues its reference ID.
func (s *LeadService) Submit(ctx context.Context, sub domain.LeadSubmission) (domain.LeadReceipt, error) {
	if err := validateSubmission(sub); err != nil {
		return domain.LeadReceipt{}, err
	}

	lead := repository.Lead{
		ReferenceID: newReferenceID(),
		Submission:  sub,
		ReceivedAt:  s.now().UTC(),
	}
	if err := s.repo.Save(ctx, lead); err != nil {
		return domain.LeadReceipt{}, fmt.Errorf("save lead: %w", err)
	}

	s.metrics.IncrementLeadsSubmitted()
	s.logger.InfoContext(ctx, "lead submitted", "reference_id", lead.ReferenceID, "quote_id", sub.QuoteID)

	return domain.LeadReceipt{ReferenceID: lead.ReferenceID}, nil
}

func validateSubmission(sub domain.LeadSubmission) error {
	errs := &domain.ValidationError{}
	if _, err := domain.ParseProgram(sub.QuoteID); err != nil {
		errs.Add("quoteId", "must reference a quoted program")
	}

	c := sub.Contact
	if strings.TrimSpace(c.FirstName) == "" {
		errs.Add("contact.firstName", "is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		errs.Add("contact.lastName", "is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		errs.Add("contact.email", "is required")
	} else if _, err := mail.ParseAddress(c.Email); err != nil {
		errs.Add("contact.email", "is not a valid email address")
	}
	if !c.Agree {
		errs.Add("contact.agree", "must be accepted")
	}
	return errs.Err()
}

// newReferenceID returns a short, human-readable reference such as
// QG-9F3A61C2.
func newReferenceID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return referencePrefix + strings.ToUpper(id[:8])
}
