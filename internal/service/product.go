package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeapi/internal/models"
	"storeapi/internal/notifier"
	"storeapi/internal/repository"
)

// ProductInput carries validated product fields. Nil pointers on update mean
// the field keeps its stored value.
type ProductInput struct {
	Name  *string
	Price *int64
	Size  *string
}

type ProductService interface {
	CreateProduct(name string, price int64, size string) (*models.Product, error)
	GetProducts() ([]*models.Product, error)
	GetProductByID(productID string) (*models.Product, error)
	UpdateProduct(productID string, input ProductInput) (*models.Product, error)
	DeleteProduct(productID string) error
}

type productService struct {
	products repository.ProductRepository
	notifier notifier.Notifier
	logger   *zap.Logger
}

func NewProductService(products repository.ProductRepository, notify notifier.Notifier, logger *zap.Logger) ProductService {
	return &productService{products: products, notifier: notify, logger: logger}
}

func (s *productService) CreateProduct(name string, price int64, size string) (*models.Product, error) {
	product := &models.Product{
		ProductID: uuid.NewString(),
		Name:      name,
		Price:     price,
		Size:      size,
	}

	if err := s.products.CreateProduct(product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created", zap.String("product_id", product.ProductID))
	if s.notifier != nil {
		s.notifier.Notify("New product added: " + product.Name)
	}
	return product, nil
}

func (s *productService) GetProducts() ([]*models.Product, error) {
	return s.products.GetProducts()
}

func (s *productService) GetProductByID(productID string) (*models.Product, error) {
	return s.products.GetProductByID(productID)
}

// UpdateProduct applies a partial update: only the provided fields change.
func (s *productService) UpdateProduct(productID string, input ProductInput) (*models.Product, error) {
	product, err := s.products.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Size != nil {
		product.Size = *input.Size
	}

	if err := s.products.UpdateProduct(product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) DeleteProduct(productID string) error {
	return s.products.DeleteProduct(productID)
}
