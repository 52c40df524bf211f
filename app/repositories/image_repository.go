package repositories

import (
	"context"
	"errors"

	"github.com/shopapp-dev/shopapp/app/models"
	"gorm.io/gorm"
)

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id uint) (*models.Image, error)
	GetByProduct(ctx context.Context, productID uint) (*models.Image, error)
	ListByProduct(ctx context.Context, productID uint) ([]models.Image, error)
	ListByProductIDs(ctx context.Context, productIDs []uint) ([]models.Image, error)
	GetByUser(ctx context.Context, userID uint) (*models.Image, error)
	Update(ctx context.Context, image *models.Image) error
	Delete(ctx context.Context, id uint) error
}

type gormImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &gormImageRepository{db: db}
}

func (r *gormImageRepository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *gormImageRepository) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *gormImageRepository) GetByProduct(ctx context.Context, productID uint) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).First(&image, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *gormImageRepository) ListByProduct(ctx context.Context, productID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&images).Error
	return images, err
}

func (r *gormImageRepository) ListByProductIDs(ctx context.Context, productIDs []uint) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&images).Error
	return images, err
}

func (r *gormImageRepository) GetByUser(ctx context.Context, userID uint) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).First(&image, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *gormImageRepository) Update(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *gormImageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Image{}, id).Error
}
