package usecase

import (
	"context"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"
	"complidesk/internal/infrastructure/firebase"
	"complidesk/pkg/errors"
	"complidesk/pkg/logger"
)

type SellerUseCase struct {
	sellerRepo repository.SellerRepository
	authClient *firebase.FirebaseAuthClient
}

func NewSellerUseCase(sellerRepo repository.SellerRepository, authClient *firebase.FirebaseAuthClient) *SellerUseCase {
	return &SellerUseCase{
		sellerRepo: sellerRepo,
		authClient: authClient,
	}
}

type CreateSellerInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

type UpdateSellerInput struct {
	Name  string
	Phone string
	Role  string
}

// CreateSeller provisions a Firebase account for the seller and stores the
// profile. The Firebase UID becomes the seller's document ID so auth and
// profile lookups share a key.
func (uc *SellerUseCase) CreateSeller(ctx context.Context, input CreateSellerInput) (*entity.Seller, error) {
	if _, err := uc.sellerRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, errors.Conflict("A seller with this email already exists")
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		logger.Error("CreateSeller: Failed to create auth user for %s: %v", input.Email, err)
		return nil, errors.Internal("Failed to create seller account", err)
	}

	role := input.Role
	if role == "" {
		role = entity.RoleSeller
	}

	seller := &entity.Seller{
		ID:     uid,
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Role:   role,
		Active: true,
	}

	if err := uc.sellerRepo.Create(ctx, seller); err != nil {
		logger.Error("CreateSeller: Failed to store seller %s, rolling back auth user: %v", uid, err)
		if delErr := uc.authClient.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("CreateSeller: Rollback of auth user %s failed: %v", uid, delErr)
		}
		return nil, err
	}

	return seller, nil
}

func (uc *SellerUseCase) GetSeller(ctx context.Context, id string) (*entity.Seller, error) {
	return uc.sellerRepo.GetByID(ctx, id)
}

func (uc *SellerUseCase) ListSellers(ctx context.Context, limit, offset int) ([]*entity.Seller, int64, error) {
	return uc.sellerRepo.List(ctx, limit, offset)
}

func (uc *SellerUseCase) UpdateSeller(ctx context.Context, id string, input UpdateSellerInput) (*entity.Seller, error) {
	seller, err := uc.sellerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		seller.Name = input.Name
	}
	if input.Phone != "" {
		seller.Phone = input.Phone
	}
	if input.Role != "" {
		if input.Role != entity.RoleSeller && input.Role != entity.RoleAdmin {
			return nil, errors.BadRequest("Invalid seller role", nil)
		}
		seller.Role = input.Role
	}

	if err := uc.sellerRepo.Update(ctx, seller); err != nil {
		logger.Error("UpdateSeller: Failed to update seller %s: %v", id, err)
		return nil, err
	}

	return seller, nil
}

// DeactivateSeller disables the profile but keeps history and auth intact.
func (uc *SellerUseCase) DeactivateSeller(ctx context.Context, id string) (*entity.Seller, error) {
	seller, err := uc.sellerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seller.Active = false
	if err := uc.sellerRepo.Update(ctx, seller); err != nil {
		logger.Error("DeactivateSeller: Failed to deactivate seller %s: %v", id, err)
		return nil, err
	}

	return seller, nil
}

// DeleteSeller removes both the profile and the Firebase account.
func (uc *SellerUseCase) DeleteSeller(ctx context.Context, id string) error {
	if _, err := uc.sellerRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.sellerRepo.Delete(ctx, id); err != nil {
		logger.Error("DeleteSeller: Failed to delete seller %s: %v", id, err)
		return err
	}

	if err := uc.authClient.DeleteUser(ctx, id); err != nil {
		logger.Warn("DeleteSeller: Profile deleted but auth user %s remains: %v", id, err)
	}

	return nil
}
