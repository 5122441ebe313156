package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complidesk/internal/domain/entity"
	apperrors "complidesk/pkg/errors"
)

func TestCreateLeadDefaultsToNewStatus(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	uc := NewLeadUseCase(leadRepo, newFakeSellerRepo())

	lead, err := uc.CreateLead(context.Background(), CreateLeadInput{
		Name:    "Ada",
		Email:   "ada@acme.test",
		Company: "Acme",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	assert.NotEmpty(t, lead.ID)
}

func TestCreateLeadUnknownAssignee(t *testing.T) {
	uc := NewLeadUseCase(newFakeLeadRepo(), newFakeSellerRepo())

	_, err := uc.CreateLead(context.Background(), CreateLeadInput{
		Name:       "Ada",
		AssignedTo: "nobody",
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))
}

func TestUpdateLeadStatusTransition(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	uc := NewLeadUseCase(leadRepo, newFakeSellerRepo())

	lead, err := uc.CreateLead(context.Background(), CreateLeadInput{Name: "Ada"})
	require.NoError(t, err)

	updated, err := uc.UpdateLead(context.Background(), lead.ID, UpdateLeadInput{Status: entity.LeadStatusQualified})
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusQualified, updated.Status)

	_, err = uc.UpdateLead(context.Background(), lead.ID, UpdateLeadInput{Status: "bogus"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "BAD_REQUEST"))
}

func TestListLeadsRejectsUnknownStatusFilter(t *testing.T) {
	uc := NewLeadUseCase(newFakeLeadRepo(), newFakeSellerRepo())

	_, _, err := uc.ListLeads(context.Background(), "archived", 20, 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "BAD_REQUEST"))
}
