package usecase

import (
	"context"
	"log"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"
	"complidesk/pkg/errors"
)

type LeadUseCase struct {
	leadRepo   repository.LeadRepository
	sellerRepo repository.SellerRepository
}

func NewLeadUseCase(leadRepo repository.LeadRepository, sellerRepo repository.SellerRepository) *LeadUseCase {
	return &LeadUseCase{
		leadRepo:   leadRepo,
		sellerRepo: sellerRepo,
	}
}

type CreateLeadInput struct {
	Name       string
	Email      string
	Phone      string
	Company    string
	AssignedTo string
	Notes      string
}

type UpdateLeadInput struct {
	Name       string
	Email      string
	Phone      string
	Company    string
	Status     string
	AssignedTo string
	Notes      string
}

func (uc *LeadUseCase) CreateLead(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if input.AssignedTo != "" {
		if _, err := uc.sellerRepo.GetByID(ctx, input.AssignedTo); err != nil {
			log.Printf("CreateLead Error: Assigned seller %s not found: %v", input.AssignedTo, err)
			return nil, errors.NotFound("Assigned seller", err)
		}
	}

	lead := &entity.Lead{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Company:    input.Company,
		Status:     entity.LeadStatusNew,
		AssignedTo: input.AssignedTo,
		Notes:      input.Notes,
	}

	if err := uc.leadRepo.Create(ctx, lead); err != nil {
		log.Printf("CreateLead Error: Failed to create lead: %v", err)
		return nil, err
	}

	return lead, nil
}

func (uc *LeadUseCase) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	return uc.leadRepo.GetByID(ctx, id)
}

func (uc *LeadUseCase) ListLeads(ctx context.Context, status string, limit, offset int) ([]*entity.Lead, int64, error) {
	if status != "" && !validLeadStatus(status) {
		return nil, 0, errors.BadRequest("Invalid lead status filter", nil)
	}
	return uc.leadRepo.List(ctx, status, limit, offset)
}

func (uc *LeadUseCase) UpdateLead(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	lead, err := uc.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" && !validLeadStatus(input.Status) {
		return nil, errors.BadRequest("Invalid lead status", nil)
	}
	if input.AssignedTo != "" && input.AssignedTo != lead.AssignedTo {
		if _, err := uc.sellerRepo.GetByID(ctx, input.AssignedTo); err != nil {
			return nil, errors.NotFound("Assigned seller", err)
		}
	}

	if input.Name != "" {
		lead.Name = input.Name
	}
	if input.Email != "" {
		lead.Email = input.Email
	}
	if input.Phone != "" {
		lead.Phone = input.Phone
	}
	if input.Company != "" {
		lead.Company = input.Company
	}
	if input.Status != "" {
		lead.Status = input.Status
	}
	if input.AssignedTo != "" {
		lead.AssignedTo = input.AssignedTo
	}
	if input.Notes != "" {
		lead.Notes = input.Notes
	}

	if err := uc.leadRepo.Update(ctx, lead); err != nil {
		log.Printf("UpdateLead Error: Failed to update lead %s: %v", id, err)
		return nil, err
	}

	return lead, nil
}

func (uc *LeadUseCase) DeleteLead(ctx context.Context, id string) error {
	if _, err := uc.leadRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.leadRepo.Delete(ctx, id); err != nil {
		log.Printf("DeleteLead Error: Failed to delete lead %s: %v", id, err)
		return err
	}
	return nil
}

func validLeadStatus(status string) bool {
	switch status {
	case entity.LeadStatusNew, entity.LeadStatusContacted, entity.LeadStatusQualified, entity.LeadStatusWon, entity.LeadStatusLost:
		return true
	}
	return false
}
