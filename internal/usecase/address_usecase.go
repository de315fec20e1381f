package usecase

import (
	"context"

	"civicserve/internal/domain/entity"
	"civicserve/internal/domain/repository"
	"civicserve/pkg/errors"
)

type AddressUseCase struct {
	addressRepo repository.AddressRepository
}

func NewAddressUseCase(addressRepo repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{
		addressRepo: addressRepo,
	}
}

type CreateAddressInput struct {
	Street    string
	Apt       string
	City      string
	State     string
	Zip       string
	IsDefault bool
}

func (uc *AddressUseCase) CreateAddress(ctx context.Context, userID string, input CreateAddressInput) (*entity.SavedAddress, error) {
	if input.Street == "" || input.City == "" || input.Zip == "" {
		return nil, errors.Validation("street, city and zip are required", nil)
	}

	if input.IsDefault {
		if err := uc.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	address := &entity.SavedAddress{
		UserID:    userID,
		Street:    input.Street,
		Apt:       input.Apt,
		City:      input.City,
		State:     input.State,
		Zip:       input.Zip,
		IsDefault: input.IsDefault,
	}

	if err := uc.addressRepo.Create(ctx, address); err != nil {
		return nil, err
	}

	return address, nil
}

func (uc *AddressUseCase) ListAddresses(ctx context.Context, userID string) ([]*entity.SavedAddress, error) {
	return uc.addressRepo.ListByUserID(ctx, userID)
}

// DeleteAddress removes one of the caller's addresses. Another user's
// address is indistinguishable from a missing one.
func (uc *AddressUseCase) DeleteAddress(ctx context.Context, userID, addressID string) error {
	address, err := uc.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return err
	}

	if address.UserID != userID {
		return errors.NotFound("Address", nil)
	}

	return uc.addressRepo.Delete(ctx, addressID)
}
