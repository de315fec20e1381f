package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicserve/pkg/errors"
)

func TestAddressRoundTrip(t *testing.T) {
	uc := NewAddressUseCase(newMemAddressRepo())
	ctx := context.Background()

	address, err := uc.CreateAddress(ctx, "user-1", CreateAddressInput{
		Street: "123 Main St",
		City:   "Decatur",
		Zip:    "30030",
	})
	require.NoError(t, err)
	require.NotEmpty(t, address.ID)

	listed, err := uc.ListAddresses(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, address.ID, listed[0].ID)

	require.NoError(t, uc.DeleteAddress(ctx, "user-1", address.ID))

	listed, err = uc.ListAddresses(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestAddressRequiredFields(t *testing.T) {
	uc := NewAddressUseCase(newMemAddressRepo())

	_, err := uc.CreateAddress(context.Background(), "user-1", CreateAddressInput{City: "Decatur", Zip: "30030"})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestAddressDefaultIsExclusive(t *testing.T) {
	uc := NewAddressUseCase(newMemAddressRepo())
	ctx := context.Background()

	first, err := uc.CreateAddress(ctx, "user-1", CreateAddressInput{
		Street: "123 Main St", City: "Decatur", Zip: "30030", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := uc.CreateAddress(ctx, "user-1", CreateAddressInput{
		Street: "9 Pine Rd", City: "Decatur", Zip: "30030", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	listed, err := uc.ListAddresses(ctx, "user-1")
	require.NoError(t, err)

	defaults := 0
	for _, address := range listed {
		if address.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestDeleteOtherUsersAddress(t *testing.T) {
	uc := NewAddressUseCase(newMemAddressRepo())
	ctx := context.Background()

	address, err := uc.CreateAddress(ctx, "user-1", CreateAddressInput{
		Street: "123 Main St", City: "Decatur", Zip: "30030",
	})
	require.NoError(t, err)

	err = uc.DeleteAddress(ctx, "user-2", address.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	// Still there for the owner.
	listed, err := uc.ListAddresses(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
