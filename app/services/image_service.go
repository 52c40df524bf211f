package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopapp-dev/shopapp/app/models"
	"github.com/shopapp-dev/shopapp/app/repositories"
	"go.uber.org/zap"
)

var (
	ErrImageNotFound = errors.New("image not found")
	// ErrImageAssociation rejects an image that is not tied to exactly
	// one of a product or a user.
	ErrImageAssociation = errors.New("image must be associated with exactly one of a product or a user")
)

// ImageInput is the fully typed contract for creating or updating an
// image. Exactly one of ProductID and UserID must be set; this is
// validated before any domain logic runs.
type ImageInput struct {
	Name           string `json:"name" validate:"required"`
	SmallImagePath string `json:"small_image_path"`
	LargeImagePath string `json:"large_image_path"`
	ProductID      *uint  `json:"product_id"`
	UserID         *uint  `json:"user_id"`
}

func (in *ImageInput) validateAssociation() error {
	if in.ProductID == nil && in.UserID == nil {
		return ErrImageAssociation
	}
	if in.ProductID != nil && in.UserID != nil {
		return ErrImageAssociation
	}
	return nil
}

type ImageService struct {
	imageRepo   repositories.ImageRepository
	productRepo repositories.ProductRepositoryImpl
	userRepo    repositories.UserRepositoryImpl
	log         *zap.SugaredLogger
}

func NewImageService(
	imageRepo repositories.ImageRepository,
	productRepo repositories.ProductRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	log *zap.SugaredLogger,
) *ImageService {
	return &ImageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

func (s *ImageService) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

func (s *ImageService) GetByProduct(ctx context.Context, productID uint) (*models.Image, error) {
	image, err := s.imageRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

func (s *ImageService) ListByProduct(ctx context.Context, productID uint) ([]models.Image, error) {
	return s.imageRepo.ListByProduct(ctx, productID)
}

func (s *ImageService) ListByProductIDs(ctx context.Context, productIDs []uint) ([]models.Image, error) {
	return s.imageRepo.ListByProductIDs(ctx, productIDs)
}

func (s *ImageService) GetByUser(ctx context.Context, userID uint) (*models.Image, error) {
	image, err := s.imageRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

func (s *ImageService) Add(ctx context.Context, in ImageInput) (*models.Image, error) {
	if err := in.validateAssociation(); err != nil {
		return nil, err
	}

	if in.ProductID != nil {
		product, err := s.productRepo.GetByID(ctx, *in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
	}
	if in.UserID != nil {
		user, err := s.userRepo.FindByID(ctx, *in.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
	}

	image := &models.Image{
		Name:           in.Name,
		SmallImagePath: in.SmallImagePath,
		LargeImagePath: in.LargeImagePath,
		ProductID:      in.ProductID,
		UserID:         in.UserID,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return image, nil
}

func (s *ImageService) Update(ctx context.Context, id uint, in ImageInput) (*models.Image, error) {
	if err := in.validateAssociation(); err != nil {
		return nil, err
	}

	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}

	image.Name = in.Name
	image.SmallImagePath = in.SmallImagePath
	image.LargeImagePath = in.LargeImagePath
	image.ProductID = in.ProductID
	image.UserID = in.UserID

	if err := s.imageRepo.Update(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to update image: %w", err)
	}
	return image, nil
}

func (s *ImageService) Delete(ctx context.Context, id uint) error {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrImageNotFound
	}
	return s.imageRepo.Delete(ctx, id)
}
