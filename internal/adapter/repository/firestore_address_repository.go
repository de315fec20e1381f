package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"civicserve/internal/domain/entity"
	"civicserve/internal/domain/repository"
	"civicserve/pkg/errors"
)

type firestoreAddressRepository struct {
	client *firestore.Client
}

func NewFirestoreAddressRepository(client *firestore.Client) repository.AddressRepository {
	return &firestoreAddressRepository{
		client: client,
	}
}

func (r *firestoreAddressRepository) Create(ctx context.Context, address *entity.SavedAddress) error {
	if address.ID == "" {
		address.ID = uuid.New().String()
	}

	now := time.Now()
	address.CreatedAt = now
	address.UpdatedAt = now

	_, err := r.client.Collection("addresses").Doc(address.ID).Set(ctx, address)
	if err != nil {
		return errors.Internal("Failed to create address", err)
	}

	return nil
}

func (r *firestoreAddressRepository) GetByID(ctx context.Context, id string) (*entity.SavedAddress, error) {
	doc, err := r.client.Collection("addresses").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Address", err)
		}
		return nil, errors.Internal("Failed to get address", err)
	}

	var address entity.SavedAddress
	if err := doc.DataTo(&address); err != nil {
		return nil, errors.Internal("Failed to parse address data", err)
	}

	return &address, nil
}

func (r *firestoreAddressRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.SavedAddress, error) {
	query := r.client.Collection("addresses").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var addresses []*entity.SavedAddress

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate addresses", err)
		}

		var address entity.SavedAddress
		if err := doc.DataTo(&address); err != nil {
			return nil, errors.Internal("Failed to parse address data", err)
		}

		addresses = append(addresses, &address)
	}

	return addresses, nil
}

func (r *firestoreAddressRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("addresses").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete address", err)
	}

	return nil
}

func (r *firestoreAddressRepository) ClearDefault(ctx context.Context, userID string) error {
	query := r.client.Collection("addresses").
		Where("userId", "==", userID).
		Where("isDefault", "==", true)

	iter := query.Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate default addresses", err)
		}

		if _, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "isDefault", Value: false},
			{Path: "updatedAt", Value: time.Now()},
		}); err != nil {
			return errors.Internal("Failed to clear default address", err)
		}
	}

	return nil
}
