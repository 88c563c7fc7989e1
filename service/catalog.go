package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/apperr"
	"local_mart/database"
	"local_mart/database/dbHelper"
	"local_mart/model"
)

const (
	defaultMinOrderQty = 1
	defaultMaxOrderQty = 100
)

type CatalogService struct {
	db *sqlx.DB
}

func NewCatalogService(db *sqlx.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	list, err := dbHelper.ListCategories(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list categories")
	}
	return list, nil
}

func (s *CatalogService) SaveCategory(ctx context.Context, body model.CategoryRequest) (model.Category, error) {
	category, err := dbHelper.UpsertCategory(ctx, s.db, body)
	if err != nil {
		return model.Category{}, apperr.Internal(err, "failed to save category")
	}
	return category, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	list, err := dbHelper.ListProducts(ctx, s.db, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list products")
	}
	return list, nil
}

// GetProduct returns an active product.
func (s *CatalogService) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	product, err := dbHelper.GetProduct(ctx, s.db, productID)
	if database.IsNoRows(err) || (err == nil && !product.IsActive) {
		return model.Product{}, apperr.NotFound("product %d not found", productID)
	}
	if err != nil {
		return model.Product{}, apperr.Internal(err, "failed to load product")
	}
	return product, nil
}

// approvedSeller returns the seller record of userID, which must be approved.
func (s *CatalogService) approvedSeller(ctx context.Context, userID int64) (model.Seller, error) {
	seller, err := dbHelper.GetSellerByUserID(ctx, s.db, userID)
	if database.IsNoRows(err) {
		return model.Seller{}, apperr.Forbidden("seller profile not found")
	}
	if err != nil {
		return model.Seller{}, apperr.Internal(err, "failed to load seller")
	}
	if seller.ApprovalStatus != model.ApprovalApproved {
		return model.Seller{}, apperr.Forbidden("seller is not approved")
	}
	return seller, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, userID int64, body model.ProductRequest) (model.Product, error) {
	if body.MinOrderQty == 0 {
		body.MinOrderQty = defaultMinOrderQty
	}
	if body.MaxOrderQty == 0 {
		body.MaxOrderQty = defaultMaxOrderQty
	}
	if body.Price.IsNegative() {
		return model.Product{}, apperr.Validation("price must not be negative")
	}
	if body.OriginalPrice.Valid && body.OriginalPrice.Decimal.IsNegative() {
		return model.Product{}, apperr.Validation("original price must not be negative")
	}
	if body.MinOrderQty > body.MaxOrderQty {
		return model.Product{}, apperr.Validation("min order quantity must not exceed max order quantity")
	}

	seller, err := s.approvedSeller(ctx, userID)
	if err != nil {
		return model.Product{}, err
	}
	product, err := dbHelper.CreateProduct(ctx, s.db, seller.ID, body)
	if database.IsForeignKeyViolation(err) {
		return model.Product{}, apperr.Validation("category %d does not exist", body.CategoryID)
	}
	if err != nil {
		return model.Product{}, apperr.Internal(err, "failed to create product")
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, userID, productID int64, body model.ProductUpdateRequest) (model.Product, error) {
	if body.Price != nil && body.Price.IsNegative() {
		return model.Product{}, apperr.Validation("price must not be negative")
	}
	if body.MinOrderQty != nil && body.MaxOrderQty != nil && *body.MinOrderQty > *body.MaxOrderQty {
		return model.Product{}, apperr.Validation("min order quantity must not exceed max order quantity")
	}
	seller, err := s.approvedSeller(ctx, userID)
	if err != nil {
		return model.Product{}, err
	}
	product, err := dbHelper.UpdateSellerProduct(ctx, s.db, seller.ID, productID, body)
	if database.IsNoRows(err) {
		return model.Product{}, apperr.NotFound("product %d not found", productID)
	}
	if database.IsCheckViolation(err) {
		return model.Product{}, apperr.Validation("min order quantity must not exceed max order quantity")
	}
	if err != nil {
		return model.Product{}, apperr.Internal(err, "failed to update product")
	}
	return product, nil
}

// DeactivateProduct hides a product from the catalog. Products are never
// deleted since order items keep referring to them.
func (s *CatalogService) DeactivateProduct(ctx context.Context, userID, productID int64) error {
	seller, err := s.approvedSeller(ctx, userID)
	if err != nil {
		return err
	}
	affected, err := dbHelper.DeactivateSellerProduct(ctx, s.db, seller.ID, productID)
	if err != nil {
		return apperr.Internal(err, "failed to deactivate product")
	}
	if affected == 0 {
		return apperr.NotFound("product %d not found", productID)
	}
	return nil
}
