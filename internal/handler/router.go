package handler

import (
	mid "mall-service/internal/middleware"
	"mall-service/internal/model"
	"mall-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RegisterRoutes wires every API route with its auth and role middleware
func RegisterRoutes(e *echo.Echo, db *gorm.DB, jwt *jwtutil.JWTUtil) {
	authHandler := NewAuthHandler(db, jwt)
	shopHandler := NewShopHandler(db)
	employeeHandler := NewEmployeeHandler(db)
	productHandler := NewProductHandler(db)
	footfallHandler := NewFootfallHandler(db)
	salesHandler := NewSalesHandler(db)

	e.GET("/health", HealthCheck)

	api := e.Group("/api")
	api.POST("/login", authHandler.Login)

	shops := api.Group("/shops", mid.Auth(jwt))
	shops.GET("", shopHandler.ListShops, mid.RequireRole(model.RoleMallAdmin))
	shops.GET("/:id", shopHandler.GetShop, mid.RequireRole(model.RoleShopOwner, model.RoleStaff))
	shops.POST("", shopHandler.CreateShop, mid.RequireRole(model.RoleMallAdmin))
	shops.PUT("/:id", shopHandler.UpdateShop, mid.RequireRole(model.RoleMallAdmin))
	shops.DELETE("/:id", shopHandler.DeleteShop, mid.RequireRole(model.RoleMallAdmin))

	employees := api.Group("/employees", mid.Auth(jwt))
	employees.POST("", employeeHandler.CreateEmployee, mid.RequireRole(model.RoleMallAdmin))

	products := api.Group("/products", mid.Auth(jwt), mid.RequireRole(model.RoleShopOwner))
	products.GET("", productHandler.ListProducts)
	products.POST("", productHandler.CreateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)

	footfall := api.Group("/footfall", mid.Auth(jwt), mid.RequireRole(model.RoleStaff))
	footfall.GET("", footfallHandler.ListFootfall)
	footfall.POST("", footfallHandler.CreateFootfall)

	sales := api.Group("/sales", mid.Auth(jwt), mid.RequireRole(model.RoleStaff))
	sales.GET("", salesHandler.ListSales)
	sales.POST("", salesHandler.CreateSale)
}
