package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickgfe/domain"
	"quickgfe/repository"
)

type failingLeadRepository struct{}

func (failingLeadRepository) Save(context.Context, repository.Lead) error {
	return errors.New("save error")
}

func (failingLeadRepository) FindByReference(context.Context, string) (repository.Lead, error) {
	return repository.Lead{}, repository.ErrLeadNotFound
}

func validSubmission() domain.LeadSubmission {
	return domain.LeadSubmission{
		QuoteID: "fha",
		Contact: domain.Contact{
			FirstName: "Jordan",
			LastName:  "Lee",
			Email:     "jordan@example.com",
			Phone:     "555-0100",
			Agree:     true,
		},
	}
}

func TestLeadService_Submit(t *testing.T) {
	repo := repository.NewLeadRepositoryMemory()
	svc := NewLeadService(repo, nil, nil)

	receipt, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.ReferenceID, "QG-"))
	assert.Len(t, receipt.ReferenceID, 11)

	lead, err := repo.FindByReference(context.Background(), receipt.ReferenceID)
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", lead.Submission.Contact.Email)

	other, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.NotEqual(t, receipt.ReferenceID, other.ReferenceID)
}

func TestLeadService_Validation(t *testing.T) {
	svc := NewLeadService(repository.NewLeadRepositoryMemory(), nil, nil)

	sub := validSubmission()
	sub.QuoteID = "jumbo"
	sub.Contact.Email = "not-an-email"
	sub.Contact.FirstName = " "
	sub.Contact.Agree = false

	_, err := svc.Submit(context.Background(), sub)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"quoteId", "contact.firstName", "contact.email", "contact.agree"}, fields)
}

func TestLeadService_RepositoryFailure(t *testing.T) {
	svc := NewLeadService(failingLeadRepository{}, nil, nil)

	_, err := svc.Submit(context.Background(), validSubmission())
	assert.Error(t, err)

	var verr *domain.ValidationError
	assert.False(t, errors.As(err, &verr))
}
