package catalogrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductCatalog implements ports.ProductCatalog using GORM.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a new GORM-backed product catalog.
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// Resolve returns the current name and unit price for a product.
// Returns an ObjectNotFoundError when no such product exists.
func (c *GormProductCatalog) Resolve(ctx context.Context, productRef kernel.UUID) (ports.ProductInfo, error) {
	if err := productRef.Validate(); err != nil {
		return ports.ProductInfo{}, err
	}

	var dto ProductDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", productRef.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProductInfo{}, errs.NewObjectNotFoundError("product", productRef.String())
		}
		return ports.ProductInfo{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return ports.ProductInfo{}, err
	}

	return ports.ProductInfo{
		Name:      dto.Name,
		UnitPrice: unitPrice,
	}, nil
}
