package repository

import (
	"context"

	"complidesk/internal/domain/entity"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *entity.EmailTemplate) error
	GetByID(ctx context.Context, id string) (*entity.EmailTemplate, error)
	List(ctx context.Context) ([]*entity.EmailTemplate, error)
	Update(ctx context.Context, template *entity.EmailTemplate) error
	Delete(ctx context.Context, id string) error
}
