package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeapi/internal/apperrors"
	"storeapi/internal/service"
)

type ProductHandler interface {
	CreateProduct(c *gin.Context)
	GetProducts(c *gin.Context)
	GetProductByID(c *gin.Context)
	UpdateProduct(c *gin.Context)
	DeleteProduct(c *gin.Context)
}

type productHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService service.ProductService, logger *zap.Logger) ProductHandler {
	return &productHandler{productService: productService, logger: logger}
}

type CreateProductRequest struct {
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"required,gt=0"`
	Size  string `json:"size" binding:"required"`
}

type UpdateProductRequest struct {
	Name  *string `json:"name"`
	Price *int64  `json:"price" binding:"omitempty,gt=0"`
	Size  *string `json:"size"`
}

func (h *productHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("ERR: product - create", zap.Error(err))
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if _, err := h.productService.CreateProduct(req.Name, req.Price, req.Size); err != nil {
		h.logger.Error("ERR: product - create", zap.Error(err))
		respondError(c, apperrors.StatusCode(err), apperrors.MessageOf(err))
		return
	}

	respondOK(c, http.StatusCreated, "Add new product success", nil)
}

func (h *productHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetProducts()
	if err != nil {
		h.logger.Error("ERR: product - list", zap.Error(err))
		respondError(c, apperrors.StatusCode(err), apperrors.MessageOf(err))
		return
	}

	respondOK(c, http.StatusOK, "Get products success", products)
}

func (h *productHandler) GetProductByID(c *gin.Context) {
	product, err := h.productService.GetProductByID(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.StatusCode(err), apperrors.MessageOf(err))
		return
	}

	respondOK(c, http.StatusOK, "Get product success", product)
}

func (h *productHandler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("ERR: product - update", zap.Error(err))
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	input := service.ProductInput{Name: req.Name, Price: req.Price, Size: req.Size}
	if _, err := h.productService.UpdateProduct(c.Param("id"), input); err != nil {
		h.logger.Error("ERR: product - update", zap.Error(err))
		respondError(c, apperrors.StatusCode(err), apperrors.MessageOf(err))
		return
	}

	respondOK(c, http.StatusCreated, "Update product success", nil)
}

func (h *productHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Param("id")); err != nil {
		h.logger.Error("ERR: product - delete", zap.Error(err))
		respondError(c, apperrors.StatusCode(err), apperrors.MessageOf(err))
		return
	}

	respondOK(c, http.StatusOK, "Delete product success", nil)
}
