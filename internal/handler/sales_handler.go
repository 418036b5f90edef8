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

// SalesHandler serves the staff sales endpoints
type SalesHandler struct {
	db *gorm.DB
}

// NewSalesHandler creates a SalesHandler
func NewSalesHandler(db *gorm.DB) *SalesHandler {
	return &SalesHandler{db: db}
}

// SaleRequest defines the structure for sale creation requests
type SaleRequest struct {
	ProductID    uint    `json:"product_id"`
	ShopID       uint    `json:"shop_id"`
	SaleDate     string  `json:"sale_date"`
	QuantitySold int     `json:"quantity_sold"`
	TotalAmount  float64 `json:"total_amount"`
}

// ListSales returns the sales of the requested shop, newest date first.
// The shop_id query parameter must match the caller's claim.
func (h *SalesHandler) ListSales(c echo.Context) error {
	log := logger.FromContext(c)

	claims, _ := middleware.ClaimsFromContext(c)
	shopID, err := strconv.ParseUint(c.QueryParam("shop_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shop_id query parameter is required"})
	}
	if claims.ShopID == nil || *claims.ShopID != uint(shopID) {
		log.Warn("Attempt to read another shop's sales",
			zap.Uint64("requested_shop_id", shopID),
			zap.Uint("employee_id", claims.EmployeeID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var sales []model.Sale
	result := h.db.WithContext(c.Request().Context()).
		Where("shop_id = ?", uint(shopID)).
		Order("sale_date DESC").
		Find(&sales)
	if result.Error != nil {
		log.Error("Failed to retrieve sales",
			zap.Uint64("shop_id", shopID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve sales"})
	}

	prometheus.RecordSalesOperation("list")
	return c.JSON(http.StatusOK, sales)
}

// CreateSale records a sale for the caller's shop. The referenced product
// must exist and belong to the same shop. Stock quantity is intentionally
// not decremented here.
func (h *SalesHandler) CreateSale(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	claims, _ := middleware.ClaimsFromContext(c)
	if claims.ShopID == nil || *claims.ShopID != req.ShopID {
		log.Warn("Attempt to record a sale for another shop",
			zap.Uint("requested_shop_id", req.ShopID),
			zap.Uint("employee_id", claims.EmployeeID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	saleDate, err := time.Parse(dateLayout, req.SaleDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sale_date must be YYYY-MM-DD"})
	}

	// The product must belong to the same shop as the sale
	var count int64
	if result := h.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND shop_id = ?", req.ProductID, req.ShopID).
		Count(&count); result.Error != nil {
		log.Error("Failed to verify product", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create sale"})
	}
	if count == 0 {
		log.Warn("Sale references a product outside the shop",
			zap.Uint("product_id", req.ProductID),
			zap.Uint("shop_id", req.ShopID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product"})
	}

	sale := model.Sale{
		ProductID:    req.ProductID,
		ShopID:       req.ShopID,
		SaleDate:     saleDate,
		QuantitySold: req.QuantitySold,
		TotalAmount:  req.TotalAmount,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := h.db.WithContext(ctx).Create(&sale)
	if result.Error != nil {
		log.Error("Failed to create sale",
			zap.Uint("shop_id", req.ShopID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create sale"})
	}

	log.Info("Sale recorded",
		zap.Uint("sale_id", sale.ID),
		zap.Uint("shop_id", sale.ShopID),
		zap.Uint("product_id", sale.ProductID))
	prometheus.RecordSalesOperation("create")
	return c.JSON(http.StatusCreated, sale)
}
