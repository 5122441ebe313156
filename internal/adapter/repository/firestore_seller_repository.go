package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"
	"complidesk/pkg/errors"
)

type firestoreSellerRepository struct {
	client *firestore.Client
}

func NewFirestoreSellerRepository(client *firestore.Client) repository.SellerRepository {
	return &firestoreSellerRepository{
		client: client,
	}
}

func (r *firestoreSellerRepository) Create(ctx context.Context, seller *entity.Seller) error {
	if seller.ID == "" {
		seller.ID = uuid.New().String()
	}
	if seller.Role == "" {
		seller.Role = entity.RoleSeller
	}

	now := time.Now()
	seller.CreatedAt = now
	seller.UpdatedAt = now

	_, err := r.client.Collection("sellers").Doc(seller.ID).Set(ctx, seller)
	if err != nil {
		return errors.Internal("Failed to create seller", err)
	}

	return nil
}

func (r *firestoreSellerRepository) GetByID(ctx context.Context, id string) (*entity.Seller, error) {
	doc, err := r.client.Collection("sellers").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Seller", err)
		}
		return nil, errors.Internal("Failed to get seller", err)
	}

	var seller entity.Seller
	if err := doc.DataTo(&seller); err != nil {
		return nil, errors.Internal("Failed to parse seller data", err)
	}

	return &seller, nil
}

func (r *firestoreSellerRepository) GetByEmail(ctx context.Context, email string) (*entity.Seller, error) {
	query := r.client.Collection("sellers").Where("email", "==", email).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()

	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Seller", nil)
		}
		return nil, errors.Internal("Failed to query seller by email", err)
	}

	var seller entity.Seller
	if err := doc.DataTo(&seller); err != nil {
		return nil, errors.Internal("Failed to parse seller data", err)
	}

	return &seller, nil
}

func (r *firestoreSellerRepository) List(ctx context.Context, limit, offset int) ([]*entity.Seller, int64, error) {
	query := r.client.Collection("sellers").OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching sellers: %v", err)
		return nil, 0, errors.Internal("Failed to fetch sellers", err)
	}

	total := int64(len(allDocs))

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

	var sellers []*entity.Seller
	for i := start; i < end; i++ {
		var seller entity.Seller
		if err := allDocs[i].DataTo(&seller); err != nil {
			log.Printf("Error parsing seller data: %v", err)
			continue
		}
		sellers = append(sellers, &seller)
	}

	return sellers, total, nil
}

func (r *firestoreSellerRepository) Update(ctx context.Context, seller *entity.Seller) error {
	seller.UpdatedAt = time.Now()

	_, err := r.client.Collection("sellers").Doc(seller.ID).Set(ctx, seller)
	if err != nil {
		return errors.Internal("Failed to update seller", err)
	}

	return nil
}

func (r *firestoreSellerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("sellers").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete seller", err)
	}

	return nil
}
