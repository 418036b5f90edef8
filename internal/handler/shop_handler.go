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

// ShopHandler serves the shop endpoints
type ShopHandler struct {
	db *gorm.DB
}

// NewShopHandler creates a ShopHandler
func NewShopHandler(db *gorm.DB) *ShopHandler {
	return &ShopHandler{db: db}
}

// ShopRequest defines the structure for shop creation/update requests
type ShopRequest struct {
	ShopName   string  `json:"shop_name"`
	Location   string  `json:"location"`
	SizeSqft   float64 `json:"size_sqft"`
	RentalRate float64 `json:"rental_rate"`
}

// ListShops returns all shops, each annotated with its live product count
func (h *ShopHandler) ListShops(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var shops []model.ShopWithProductCount
	result := h.db.WithContext(c.Request().Context()).
		Model(&model.Shop{}).
		Select("shops.*, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.shop_id = shops.id").
		Group("shops.id").
		Order("shops.id").
		Find(&shops)
	if result.Error != nil {
		log.Error("Failed to retrieve shops", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve shops"})
	}

	prometheus.RecordShopOperation("list")
	return c.JSON(http.StatusOK, shops)
}

// GetShop returns a single shop. Shop owners and staff may only fetch
// their own shop.
func (h *ShopHandler) GetShop(c echo.Context) error {
	log := logger.FromContext(c)

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shop id"})
	}

	claims, _ := middleware.ClaimsFromContext(c)
	if claims.ShopID == nil || *claims.ShopID != uint(shopID) {
		log.Warn("Attempt to read another shop",
			zap.Uint64("requested_shop_id", shopID),
			zap.Uint("employee_id", claims.EmployeeID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var shop model.Shop
	result := h.db.WithContext(c.Request().Context()).First(&shop, uint(shopID))
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		}
		log.Error("Failed to retrieve shop", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve shop"})
	}

	prometheus.RecordShopOperation("get")
	return c.JSON(http.StatusOK, shop)
}

// CreateShop adds a new shop
func (h *ShopHandler) CreateShop(c echo.Context) error {
	log := logger.FromContext(c)

	var req ShopRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.ShopName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shop_name is required"})
	}

	shop := model.Shop{
		Name:       req.ShopName,
		Location:   req.Location,
		SizeSqft:   req.SizeSqft,
		RentalRate: req.RentalRate,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := h.db.WithContext(c.Request().Context()).Create(&shop)
	if result.Error != nil {
		log.Error("Failed to create shop", zap.String("shop_name", req.ShopName), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create shop"})
	}

	log.Info("Shop created",
		zap.Uint("shop_id", shop.ID),
		zap.String("shop_name", shop.Name))
	prometheus.RecordShopOperation("create")
	return c.JSON(http.StatusCreated, shop)
}

// UpdateShop replaces the four mutable fields of a shop
func (h *ShopHandler) UpdateShop(c echo.Context) error {
	log := logger.FromContext(c)

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shop id"})
	}

	var req ShopRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	var shop model.Shop
	result := h.db.WithContext(c.Request().Context()).First(&shop, uint(shopID))
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		}
		log.Error("Failed to retrieve shop", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update shop"})
	}

	shop.Name = req.ShopName
	shop.Location = req.Location
	shop.SizeSqft = req.SizeSqft
	shop.RentalRate = req.RentalRate

	if result := h.db.WithContext(c.Request().Context()).Save(&shop); result.Error != nil {
		log.Error("Failed to update shop", zap.Uint("shop_id", shop.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update shop"})
	}

	log.Info("Shop updated", zap.Uint("shop_id", shop.ID))
	prometheus.RecordShopOperation("update")
	return c.JSON(http.StatusOK, shop)
}

// DeleteShop removes a shop together with all of its employees, products,
// footfall and sales records. The cascade runs in a single transaction so a
// failure partway through leaves nothing deleted.
func (h *ShopHandler) DeleteShop(c echo.Context) error {
	log := logger.FromContext(c)

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shop id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err = h.db.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&model.Employee{},
			&model.Product{},
			&model.Footfall{},
			&model.Sale{},
		}
		for _, dep := range dependents {
			if err := tx.Where("shop_id = ?", uint(shopID)).Delete(dep).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&model.Shop{}, uint(shopID))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		}
		log.Error("Shop delete cascade failed, rolled back",
			zap.Uint64("shop_id", shopID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete shop"})
	}

	log.Info("Shop deleted with dependent records", zap.Uint64("shop_id", shopID))
	prometheus.RecordShopOperation("delete")
	return c.NoContent(http.StatusNoContent)
}
