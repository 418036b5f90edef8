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

// dateLayout is the wire format for record and sale dates
const dateLayout = "2006-01-02"

// FootfallHandler serves the staff footfall endpoints
type FootfallHandler struct {
	db *gorm.DB
}

// NewFootfallHandler creates a FootfallHandler
func NewFootfallHandler(db *gorm.DB) *FootfallHandler {
	return &FootfallHandler{db: db}
}

// FootfallRequest defines the structure for footfall creation requests
type FootfallRequest struct {
	ShopID       uint   `json:"shop_id"`
	RecordDate   string `json:"record_date"`
	VisitorCount int    `json:"visitor_count"`
}

// ListFootfall returns the footfall records of the requested shop, newest
// date first. The shop_id query parameter must match the caller's claim.
func (h *FootfallHandler) ListFootfall(c echo.Context) error {
	log := logger.FromContext(c)

	claims, _ := middleware.ClaimsFromContext(c)
	shopID, err := strconv.ParseUint(c.QueryParam("shop_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shop_id query parameter is required"})
	}
	if claims.ShopID == nil || *claims.ShopID != uint(shopID) {
		log.Warn("Attempt to read another shop's footfall",
			zap.Uint64("requested_shop_id", shopID),
			zap.Uint("employee_id", claims.EmployeeID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var records []model.Footfall
	result := h.db.WithContext(c.Request().Context()).
		Where("shop_id = ?", uint(shopID)).
		Order("record_date DESC").
		Find(&records)
	if result.Error != nil {
		log.Error("Failed to retrieve footfall records",
			zap.Uint64("shop_id", shopID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve footfall records"})
	}

	prometheus.RecordFootfallOperation("list")
	return c.JSON(http.StatusOK, records)
}

// CreateFootfall appends a daily visitor count for the caller's shop
func (h *FootfallHandler) CreateFootfall(c echo.Context) error {
	log := logger.FromContext(c)

	var req FootfallRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	claims, _ := middleware.ClaimsFromContext(c)
	if claims.ShopID == nil || *claims.ShopID != req.ShopID {
		log.Warn("Attempt to record footfall for another shop",
			zap.Uint("requested_shop_id", req.ShopID),
			zap.Uint("employee_id", claims.EmployeeID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	recordDate, err := time.Parse(dateLayout, req.RecordDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "record_date must be YYYY-MM-DD"})
	}

	record := model.Footfall{
		ShopID:       req.ShopID,
		RecordDate:   recordDate,
		VisitorCount: req.VisitorCount,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := h.db.WithContext(c.Request().Context()).Create(&record)
	if result.Error != nil {
		log.Error("Failed to create footfall record",
			zap.Uint("shop_id", req.ShopID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create footfall record"})
	}

	log.Info("Footfall recorded",
		zap.Uint("shop_id", record.ShopID),
		zap.String("record_date", req.RecordDate),
		zap.Int("visitor_count", record.VisitorCount))
	prometheus.RecordFootfallOperation("create")
	return c.JSON(http.StatusCreated, record)
}
