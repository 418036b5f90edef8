package handler

import (
	"net/http"
	"strconv"
	"time"

	"mall-service/internal/middleware"
	"mall-service/internal/model"
	"mall-service/pkg/logger"
	"mall-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductHandler serves the shop-owner product catalog endpoints
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler creates a ProductHandler
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ProductRequest defines the structure for product creation requests
type ProductRequest struct {
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// ListProducts returns the products of the caller's own shop. The shop is
// taken from the session claims, never from the request.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	claims, _ := middleware.ClaimsFromContext(c)
	if claims.ShopID == nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no shop associated with this account"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var products []model.Product
	result := h.db.WithContext(c.Request().Context()).
		Where("shop_id = ?", *claims.ShopID).
		Find(&products)
	if result.Error != nil {
		log.Error("Failed to retrieve products",
			zap.Uint("shop_id", *claims.ShopID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	prometheus.RecordProductOperation("list")
	return c.JSON(http.StatusOK, products)
}

// CreateProduct adds a product to the caller's own shop
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	claims, _ := middleware.ClaimsFromContext(c)
	if claims.ShopID == nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no shop associated with this account"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.ProductName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_name is required"})
	}

	// The shop always comes from the claims so owners cannot create
	// products for other shops
	product := model.Product{
		ShopID:        *claims.ShopID,
		Name:          req.ProductName,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := h.db.WithContext(c.Request().Context()).Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product",
			zap.String("product_name", req.ProductName),
			zap.Uint("shop_id", *claims.ShopID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.Uint("shop_id", product.ShopID))
	prometheus.RecordProductOperation("create")
	return c.JSON(http.StatusCreated, product)
}

// DeleteProduct removes a product only if it belongs to the caller's shop.
// Products of other shops are indistinguishable from missing ones.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)

	claims, _ := middleware.ClaimsFromContext(c)
	if claims.ShopID == nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no shop associated with this account"})
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := h.db.WithContext(c.Request().Context()).
		Where("id = ? AND shop_id = ?", uint(productID), *claims.ShopID).
		Delete(&model.Product{})
	if result.Error != nil {
		log.Error("Failed to delete product",
			zap.Uint64("product_id", productID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	log.Info("Product deleted",
		zap.Uint64("product_id", productID),
		zap.Uint("shop_id", *claims.ShopID))
	prometheus.RecordProductOperation("delete")
	return c.NoContent(http.StatusNoContent)
}
