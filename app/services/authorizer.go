package services

import (
	"context"
	"fmt"

	"github.com/shopapp-dev/shopapp/app/repositories"
)

// OwnedResource is anything whose mutation rights resolve through the
// ownership graph: either directly to a user, or through a product to
// its store's owning user.
type OwnedResource interface {
	OwnerUserID() *uint
	OwnerProductID() *uint
}

// OwnershipAuthorizer decides whether an identity may mutate a
// resource. It is a pure read of the ownership graph: no side effects,
// safe to call repeatedly.
type OwnershipAuthorizer struct {
	productRepo repositories.ProductRepositoryImpl
	storeRepo   repositories.StoreRepository
}

func NewOwnershipAuthorizer(productRepo repositories.ProductRepositoryImpl, storeRepo repositories.StoreRepository) *OwnershipAuthorizer {
	return &OwnershipAuthorizer{
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

// CanMutate resolves, in order: a direct user association, then a
// product association via product -> store -> owning user. A resource
// with neither association is denied.
func (a *OwnershipAuthorizer) CanMutate(ctx context.Context, userID uint, resource OwnedResource) (bool, error) {
	if ownerID := resource.OwnerUserID(); ownerID != nil {
		return *ownerID == userID, nil
	}

	productID := resource.OwnerProductID()
	if productID == nil {
		return false, nil
	}

	product, err := a.productRepo.GetByID(ctx, *productID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve product %d: %w", *productID, err)
	}
	if product == nil {
		return false, nil
	}

	store, err := a.storeRepo.GetByID(ctx, product.StoreID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve store %d: %w", product.StoreID, err)
	}
	if store == nil {
		return false, nil
	}

	return store.UserID == userID, nil
}
