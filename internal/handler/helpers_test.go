package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"mall-service/internal/model"
	"mall-service/pkg/config"
	"mall-service/pkg/jwtutil"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSigningKey = "test-signing-key"

type testEnv struct {
	t   *testing.T
	db  *gorm.DB
	e   *echo.Echo
	jwt *jwtutil.JWTUtil
}

// newTestEnv wires the full route table against a fresh in-memory database
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every request on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Shop{},
		&model.Employee{},
		&model.Product{},
		&model.Footfall{},
		&model.Sale{},
	))

	jwt := jwtutil.New(&config.JWTConfig{SigningKey: testSigningKey, ExpirationHours: 1})

	e := echo.New()
	RegisterRoutes(e, db, jwt)

	return &testEnv{t: t, db: db, e: e, jwt: jwt}
}

func (env *testEnv) token(role model.Role, shopID *uint) string {
	env.t.Helper()
	token, err := env.jwt.GenerateToken(1, string(role), shopID)
	require.NoError(env.t, err)
	return token
}

// request performs a JSON request through the full middleware chain. The
// token is sent without a scheme prefix, the way the original client did.
func (env *testEnv) request(method, target, token string, body interface{}) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) createShop(name string) model.Shop {
	env.t.Helper()
	shop := model.Shop{Name: name, Location: "Ground floor", SizeSqft: 400, RentalRate: 1200}
	require.NoError(env.t, env.db.Create(&shop).Error)
	return shop
}

func (env *testEnv) createEmployee(email, password string, role model.Role, shopID *uint) model.Employee {
	env.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(env.t, err)
	employee := model.Employee{
		FirstName: "Test",
		LastName:  "Employee",
		Role:      role,
		ShopID:    shopID,
		Email:     email,
		Password:  string(hash),
	}
	require.NoError(env.t, env.db.Create(&employee).Error)
	return employee
}

func (env *testEnv) createProduct(shopID uint, name string) model.Product {
	env.t.Helper()
	product := model.Product{ShopID: shopID, Name: name, Category: "general", Price: 9.99, StockQuantity: 10}
	require.NoError(env.t, env.db.Create(&product).Error)
	return product
}

func (env *testEnv) createFootfall(shopID uint, date string, visitors int) model.Footfall {
	env.t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(env.t, err)
	record := model.Footfall{ShopID: shopID, RecordDate: day, VisitorCount: visitors}
	require.NoError(env.t, env.db.Create(&record).Error)
	return record
}

func (env *testEnv) createSale(shopID, productID uint, date string) model.Sale {
	env.t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(env.t, err)
	sale := model.Sale{ShopID: shopID, ProductID: productID, SaleDate: day, QuantitySold: 2, TotalAmount: 19.98}
	require.NoError(env.t, env.db.Create(&sale).Error)
	return sale
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}

func uintPtr(v uint) *uint {
	return &v
}
