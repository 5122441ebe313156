package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"
	"complidesk/pkg/errors"
)

type firestoreTemplateRepository struct {
	client *firestore.Client
}

func NewFirestoreTemplateRepository(client *firestore.Client) repository.TemplateRepository {
	return &firestoreTemplateRepository{
		client: client,
	}
}

func (r *firestoreTemplateRepository) Create(ctx context.Context, template *entity.EmailTemplate) error {
	if template.ID == "" {
		template.ID = uuid.New().String()
	}

	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now

	_, err := r.client.Collection("emailTemplates").Doc(template.ID).Set(ctx, template)
	if err != nil {
		return errors.Internal("Failed to create email template", err)
	}

	return nil
}

func (r *firestoreTemplateRepository) GetByID(ctx context.Context, id string) (*entity.EmailTemplate, error) {
	doc, err := r.client.Collection("emailTemplates").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Email template", err)
		}
		return nil, errors.Internal("Failed to get email template", err)
	}

	var template entity.EmailTemplate
	if err := doc.DataTo(&template); err != nil {
		return nil, errors.Internal("Failed to parse email template data", err)
	}

	return &template, nil
}

func (r *firestoreTemplateRepository) List(ctx context.Context) ([]*entity.EmailTemplate, error) {
	query := r.client.Collection("emailTemplates").OrderBy("updatedAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch email templates", err)
	}

	var templates []*entity.EmailTemplate
	for _, doc := range docs {
		var template entity.EmailTemplate
		if err := doc.DataTo(&template); err != nil {
			continue // Skip malformed documents
		}
		templates = append(templates, &template)
	}

	return templates, nil
}

func (r *firestoreTemplateRepository) Update(ctx context.Context, template *entity.EmailTemplate) error {
	template.UpdatedAt = time.Now()

	_, err := r.client.Collection("emailTemplates").Doc(template.ID).Set(ctx, template)
	if err != nil {
		return errors.Internal("Failed to update email template", err)
	}

	return nil
}

func (r *firestoreTemplateRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("emailTemplates").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete email template", err)
	}

	return nil
}
