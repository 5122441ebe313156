package usecase

import (
	"context"
	"fmt"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"
	"complidesk/pkg/errors"
)

// DirectoryResolver resolves a conversation counterpart to display text for
// notifications: lead name plus company, or seller name plus email.
type DirectoryResolver struct {
	leadRepo   repository.LeadRepository
	sellerRepo repository.SellerRepository
}

func NewDirectoryResolver(leadRepo repository.LeadRepository, sellerRepo repository.SellerRepository) *DirectoryResolver {
	return &DirectoryResolver{
		leadRepo:   leadRepo,
		sellerRepo: sellerRepo,
	}
}

func (r *DirectoryResolver) Resolve(ctx context.Context, role, counterpartID string) (string, error) {
	switch role {
	case entity.RoleClient:
		lead, err := r.leadRepo.GetByID(ctx, counterpartID)
		if err != nil {
			return "", err
		}
		if lead.Company != "" {
			return fmt.Sprintf("%s (%s)", lead.Name, lead.Company), nil
		}
		return lead.Name, nil

	case entity.RoleSeller:
		seller, err := r.sellerRepo.GetByID(ctx, counterpartID)
		if err != nil {
			return "", err
		}
		if seller.Email != "" {
			return fmt.Sprintf("%s (%s)", seller.Name, seller.Email), nil
		}
		return seller.Name, nil
	}

	return "", errors.BadRequest(fmt.Sprintf("Unknown counterpart role: %s", role), nil)
}
