package repository

import (
	"context"

	"complidesk/internal/domain/entity"
)

type SellerRepository interface {
	Create(ctx context.Context, seller *entity.Seller) error
	GetByID(ctx context.Context, id string) (*entity.Seller, error)
	GetByEmail(ctx context.Context, email string) (*entity.Seller, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Seller, int64, error)
	Update(ctx context.Context, seller *entity.Seller) error
	Delete(ctx context.Context, id string) error
}
