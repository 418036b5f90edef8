package handler

import (
	"net/http"
	"time"

	"mall-service/internal/model"
	"mall-service/pkg/jwtutil"
	"mall-service/pkg/logger"
	"mall-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves the login endpoint
type AuthHandler struct {
	db  *gorm.DB
	jwt *jwtutil.JWTUtil
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(db *gorm.DB, jwt *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwt}
}

// Login authenticates an employee by email and password and issues a
// session token carrying {employee_id, role, shop_id}
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLoginAttempt()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var employee model.Employee
	result := h.db.WithContext(c.Request().Context()).Where("email = ?", req.Email).First(&employee)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			log.Warn("Unknown login email", zap.String("email", req.Email))
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Error("Failed to look up employee", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	// Constant-time comparison against the stored bcrypt hash
	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.jwt.GenerateToken(employee.ID, string(employee.Role), employee.ShopID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("Employee logged in",
		zap.String("email", employee.Email),
		zap.String("role", string(employee.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"employee": map[string]interface{}{
			"id":      employee.ID,
			"email":   employee.Email,
			"role":    employee.Role,
			"shop_id": employee.ShopID,
		},
	})
}
