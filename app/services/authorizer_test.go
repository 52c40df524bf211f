package services_test

import (
	"context"
	"testing"

	"github.com/shopapp-dev/shopapp/app/models"
	"github.com/shopapp-dev/shopapp/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func newAuthorizerFixture() (*services.OwnershipAuthorizer, *mockProductRepo, *mockStoreRepo) {
	products := newMockProductRepo()
	stores := newMockStoreRepo()
	return services.NewOwnershipAuthorizer(products, stores), products, stores
}

func TestCanMutateDirectUserAssociation(t *testing.T) {
	auth, _, _ := newAuthorizerFixture()
	img := &models.Image{UserID: uintPtr(7)}

	ok, err := auth.CanMutate(context.Background(), 7, img)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.CanMutate(context.Background(), 8, img)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanMutateThroughProductOwnership(t *testing.T) {
	auth, products, stores := newAuthorizerFixture()
	stores.stores[3] = &models.Store{ID: 3, UserID: 42}
	products.products[5] = &models.Product{ID: 5, StoreID: 3}
	img := &models.Image{ProductID: uintPtr(5)}

	ok, err := auth.CanMutate(context.Background(), 42, img)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.CanMutate(context.Background(), 43, img)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanMutateDirectAssociationWins(t *testing.T) {
	auth, products, stores := newAuthorizerFixture()
	stores.stores[3] = &models.Store{ID: 3, UserID: 42}
	products.products[5] = &models.Product{ID: 5, StoreID: 3}
	// Both associations set: the direct user association decides, so
	// the store owner is not consulted.
	img := &models.Image{UserID: uintPtr(7), ProductID: uintPtr(5)}

	ok, err := auth.CanMutate(context.Background(), 42, img)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = auth.CanMutate(context.Background(), 7, img)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanMutateNoAssociationDenied(t *testing.T) {
	auth, _, _ := newAuthorizerFixture()

	ok, err := auth.CanMutate(context.Background(), 1, &models.Image{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanMutateUnknownProductDenied(t *testing.T) {
	auth, _, _ := newAuthorizerFixture()
	img := &models.Image{ProductID: uintPtr(404)}

	ok, err := auth.CanMutate(context.Background(), 1, img)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanMutateUnknownStoreDenied(t *testing.T) {
	auth, products, _ := newAuthorizerFixture()
	products.products[5] = &models.Product{ID: 5, StoreID: 99}
	img := &models.Image{ProductID: uintPtr(5)}

	ok, err := auth.CanMutate(context.Background(), 1, img)
	require.NoError(t, err)
	assert.False(t, ok)
}
