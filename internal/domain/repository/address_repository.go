package repository

import (
	"context"

	"civicserve/internal/domain/entity"
)

type AddressRepository interface {
	Create(ctx context.Context, address *entity.SavedAddress) error
	GetByID(ctx context.Context, id string) (*entity.SavedAddress, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.SavedAddress, error)
	Delete(ctx context.Context, id string) error

	// ClearDefault unsets isDefault on all of a user's addresses,
	// called before a new default is written.
	ClearDefault(ctx context.Context, userID string) error
}
