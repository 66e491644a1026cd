package services

import (
	"context"
	"strings"
	"time"

	"catalog-api/internal/cache"
	"catalog-api/internal/models"
)

// FallbackPageSize is used when the requester carries no usable page-size
// preference.
const FallbackPageSize = 10

type ProductService struct {
	productRepo models.ProductRepo
	listings    *cache.ListingCache
}

func NewProductService(productRepo models.ProductRepo, listings *cache.ListingCache) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		listings:    listings,
	}
}

// List returns one page of the active catalog, newest first.
func (ps *ProductService) List(ctx context.Context, page, limit int, requester *models.User) (*models.ProductPage, error) {
	return ps.pageOf(ctx, "", page, limit, requester)
}

// Search is List narrowed to case-insensitive substring matches on product
// name or description. An empty query matches everything active.
func (ps *ProductService) Search(ctx context.Context, query string, page, limit int, requester *models.User) (*models.ProductPage, error) {
	return ps.pageOf(ctx, query, page, limit, requester)
}

func (ps *ProductService) pageOf(ctx context.Context, query string, page, limit int, requester *models.User) (*models.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = FallbackPageSize
		if requester != nil && requester.Preferences.PageSize > 0 {
			limit = requester.Preferences.PageSize
		}
	}

	if cached, ok := ps.listings.Get(ctx, query, page, limit); ok {
		return cached, nil
	}

	skip := int64(page-1) * int64(limit)
	products, total, err := ps.productRepo.ListActiveProducts(ctx, query, skip, int64(limit))
	if err != nil {
		return nil, err
	}

	result := &models.ProductPage{
		Products:      products,
		CurrentPage:   page,
		TotalPages:    int((total + int64(limit) - 1) / int64(limit)),
		TotalProducts: total,
	}
	ps.listings.Set(ctx, query, page, limit, result)
	return result, nil
}

func (ps *ProductService) GetByID(ctx context.Context, productID int64) (*models.Product, error) {
	product, err := ps.productRepo.FindActiveProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &models.NotFoundError{Message: "product not found"}
	}
	return product, nil
}

func (ps *ProductService) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	var violations []string
	if err := models.Validate.Struct(input); err != nil {
		violations = append(violations, models.Violations(err)...)
	}
	if input.CurrentStockLevel != nil && *input.CurrentStockLevel < 0 {
		violations = append(violations, "current_stock_level cannot be negative")
	}
	if len(violations) > 0 {
		return nil, models.NewValidationError(violations...)
	}

	image := strings.TrimSpace(input.ProductImage)
	if image == "" {
		image = models.PlaceholderImage
	}

	now := time.Now()
	product := &models.Product{
		ProductID:          now.UnixMilli(),
		ProductName:        input.ProductName,
		ProductDescription: input.ProductDescription,
		ProductImage:       image,
		CurrentStockLevel:  *input.CurrentStockLevel,
		State:              models.ProductActive,
		CreationDate:       now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := ps.productRepo.InsertProduct(ctx, product); err != nil {
		return nil, err
	}
	ps.listings.Invalidate(ctx)
	return product, nil
}

// Update applies exactly the fields present in the patch. A stock level of 0
// is a real value; a present-but-empty name or description is rejected rather
// than silently skipped.
func (ps *ProductService) Update(ctx context.Context, productID int64, patch models.ProductPatch) (*models.Product, error) {
	var violations []string
	fields := map[string]interface{}{}

	if patch.ProductName != nil {
		if strings.TrimSpace(*patch.ProductName) == "" {
			violations = append(violations, "product_name cannot be empty")
		} else {
			fields["product_name"] = *patch.ProductName
		}
	}
	if patch.ProductDescription != nil {
		if strings.TrimSpace(*patch.ProductDescription) == "" {
			violations = append(violations, "product_description cannot be empty")
		} else {
			fields["product_description"] = *patch.ProductDescription
		}
	}
	if patch.ProductImage != nil {
		fields["product_image"] = *patch.ProductImage
	}
	if patch.CurrentStockLevel != nil {
		if *patch.CurrentStockLevel < 0 {
			violations = append(violations, "current_stock_level cannot be negative")
		} else {
			fields["current_stock_level"] = *patch.CurrentStockLevel
		}
	}

	if len(violations) > 0 {
		return nil, models.NewValidationError(violations...)
	}

	updated, err := ps.productRepo.UpdateProductFields(ctx, productID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &models.NotFoundError{Message: "product not found"}
	}
	ps.listings.Invalidate(ctx)
	return updated, nil
}

// Delete retires the product. The record stays in the store; every exposed
// read path stops seeing it.
func (ps *ProductService) Delete(ctx context.Context, productID int64) error {
	updated, err := ps.productRepo.UpdateProductFields(ctx, productID, map[string]interface{}{
		"state": models.ProductRetired,
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return &models.NotFoundError{Message: "product not found"}
	}
	ps.listings.Invalidate(ctx)
	return nil
}
