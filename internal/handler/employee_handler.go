package handler

import (
	"net/http"
	"time"

	"mall-service/internal/model"
	"mall-service/pkg/logger"
	"mall-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EmployeeHandler serves employee account administration
type EmployeeHandler struct {
	db *gorm.DB
}

// NewEmployeeHandler creates an EmployeeHandler
func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

// EmployeeRequest defines the structure for employee creation requests
type EmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	ShopID    *uint  `json:"shop_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// CreateEmployee adds a new employee account. Email is the login key, so
// duplicates are rejected, and shop-bound roles must reference a real shop.
func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	role := model.Role(req.Role)
	if !role.Valid() {
		log.Warn("Unknown role in employee creation", zap.String("role", req.Role))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be malladmin, shopowner or staff"})
	}

	if role.RequiresShop() {
		if req.ShopID == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "shop_id is required for this role"})
		}
		var shop model.Shop
		if result := h.db.WithContext(ctx).First(&shop, *req.ShopID); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				log.Warn("Employee references unknown shop", zap.Uint("shop_id", *req.ShopID))
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "shop does not exist"})
			}
			log.Error("Failed to verify shop", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create employee"})
		}
	}

	// Check if an account already exists for this email
	defer prometheus.TrackDBOperation("insert")(time.Now())
	var count int64
	if result := h.db.WithContext(ctx).Model(&model.Employee{}).Where("email = ?", req.Email).Count(&count); result.Error != nil {
		log.Error("Failed to check email uniqueness", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create employee"})
	}
	if count > 0 {
		log.Warn("Email already registered", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create employee"})
	}

	employee := model.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		ShopID:    req.ShopID,
		Email:     req.Email,
		Password:  string(hashedPassword),
	}
	if role == model.RoleMallAdmin {
		// Mall administrators are not bound to a shop
		employee.ShopID = nil
	}

	if result := h.db.WithContext(ctx).Create(&employee); result.Error != nil {
		log.Error("Failed to create employee", zap.String("email", req.Email), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create employee"})
	}

	log.Info("Employee created",
		zap.Uint("employee_id", employee.ID),
		zap.String("email", employee.Email),
		zap.String("role", string(employee.Role)))
	return c.JSON(http.StatusCreated, employee)
}
