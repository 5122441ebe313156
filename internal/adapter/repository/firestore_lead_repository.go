package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"
	"complidesk/pkg/errors"
)

type firestoreLeadRepository struct {
	client *firestore.Client
}

func NewFirestoreLeadRepository(client *firestore.Client) repository.LeadRepository {
	return &firestoreLeadRepository{
		client: client,
	}
}

func (r *firestoreLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.Status == "" {
		lead.Status = entity.LeadStatusNew
	}

	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	_, err := r.client.Collection("leads").Doc(lead.ID).Set(ctx, lead)
	if err != nil {
		return errors.Internal("Failed to create lead", err)
	}

	return nil
}

func (r *firestoreLeadRepository) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	doc, err := r.client.Collection("leads").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Lead", err)
		}
		return nil, errors.Internal("Failed to get lead", err)
	}

	var lead entity.Lead
	if err := doc.DataTo(&lead); err != nil {
		return nil, errors.Internal("Failed to parse lead data", err)
	}

	return &lead, nil
}

func (r *firestoreLeadRepository) List(ctx context.Context, statusFilter string, limit, offset int) ([]*entity.Lead, int64, error) {
	query := r.client.Collection("leads").Query
	if statusFilter != "" {
		query = query.Where("status", "==", statusFilter)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching leads: %v", err)
		return nil, 0, errors.Internal("Failed to fetch leads", err)
	}

	total := int64(len(allDocs))

	// Pagination applied in-memory, same as the rest of the list endpoints.
	start := offset
	end := len(allDocs)
	if limit > 0 {
		end = start + limit
		if end > len(allDocs) {
			end = len(allDocs)
		}
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var leads []*entity.Lead
	for i := start; i < end; i++ {
		var lead entity.Lead
		if err := allDocs[i].DataTo(&lead); err != nil {
			log.Printf("Error parsing lead data: %v", err)
			continue
		}
		leads = append(leads, &lead)
	}

	return leads, total, nil
}

func (r *firestoreLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	lead.UpdatedAt = time.Now()

	_, err := r.client.Collection("leads").Doc(lead.ID).Set(ctx, lead)
	if err != nil {
		return errors.Internal("Failed to update lead", err)
	}

	return nil
}

func (r *firestoreLeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("leads").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete lead", err)
	}

	return nil
}
