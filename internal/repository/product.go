package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"storeapi/internal/apperrors"
	"storeapi/internal/models"
)

type ProductRepository interface {
	CreateProduct(product *models.Product) error
	GetProducts() ([]*models.Product, error)
	GetProductByID(productID string) (*models.Product, error)
	UpdateProduct(product *models.Product) error
	DeleteProduct(productID string) error
}

type productRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProductRepository(db *sqlx.DB, logger *zap.Logger) ProductRepository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) CreateProduct(product *models.Product) error {
	query := `INSERT INTO products (product_id, name, price, size) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowx(query, product.ProductID, product.Name, product.Price, product.Size).StructScan(product)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperrors.Wrap(apperrors.KindValidation, "product already exists", err)
		}
		r.logger.Error("Failed to insert product", zap.Error(err))
		return err
	}
	return nil
}

func (r *productRepository) GetProducts() ([]*models.Product, error) {
	var products []*models.Product
	query := `SELECT id, product_id, name, price, size, created_at, updated_at FROM products ORDER BY created_at DESC`
	err := r.db.Select(&products, query)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(productID string) (*models.Product, error) {
	var product models.Product
	query := `SELECT id, product_id, name, price, size, created_at, updated_at FROM products WHERE product_id = $1`
	err := r.db.Get(&product, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "data not found", err)
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) UpdateProduct(product *models.Product) error {
	query := `UPDATE products SET name = $2, price = $3, size = $4, updated_at = NOW() WHERE product_id = $1`
	result, err := r.db.Exec(query, product.ProductID, product.Name, product.Price, product.Size)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Error(err))
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.New(apperrors.KindNotFound, "data not found")
	}
	return nil
}

func (r *productRepository) DeleteProduct(productID string) error {
	query := `DELETE FROM products WHERE product_id = $1`
	result, err := r.db.Exec(query, productID)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Error(err))
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.New(apperrors.KindNotFound, "data not found")
	}
	return nil
}
