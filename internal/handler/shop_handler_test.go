package handler

import (
	"fmt"
	"net/http"
	"testing"

	"mall-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListShopsWithProductCounts(t *testing.T) {
	env := newTestEnv(t)
	shopA := env.createShop("Alpha Books")
	shopB := env.createShop("Beta Toys")
	env.createProduct(shopA.ID, "Novel")
	env.createProduct(shopA.ID, "Atlas")

	rec := env.request(http.MethodGet, "/api/shops", env.token(model.RoleMallAdmin, nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var shops []model.ShopWithProductCount
	decodeBody(t, rec, &shops)
	require.Len(t, shops, 2)

	counts := map[uint]int64{}
	for _, s := range shops {
		counts[s.ID] = s.ProductCount
	}
	assert.Equal(t, int64(2), counts[shopA.ID])
	assert.Equal(t, int64(0), counts[shopB.ID])
}

func TestListShopsForbiddenForOtherRoles(t *testing.T) {
	env := newTestEnv(t)
	shop := env.createShop("Alpha Books")

	for _, role := range []model.Role{model.RoleShopOwner, model.RoleStaff} {
		rec := env.request(http.MethodGet, "/api/shops", env.token(role, uintPtr(shop.ID)), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, "role %s", role)
	}
}

func TestGetShopOwnAndForeign(t *testing.T) {
	env := newTestEnv(t)
	own := env.createShop("Alpha Books")
	other := env.createShop("Beta Toys")

	rec := env.request(http.MethodGet, fmt.Sprintf("/api/shops/%d", own.ID), env.token(model.RoleShopOwner, uintPtr(own.ID)), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Shop
	decodeBody(t, rec, &got)
	assert.Equal(t, own.Name, got.Name)

	rec = env.request(http.MethodGet, fmt.Sprintf("/api/shops/%d", other.ID), env.token(model.RoleStaff, uintPtr(own.ID)), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Mall admins use the list endpoint, not get-one
	rec = env.request(http.MethodGet, fmt.Sprintf("/api/shops/%d", own.ID), env.token(model.RoleMallAdmin, nil), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateShop(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodPost, "/api/shops", env.token(model.RoleMallAdmin, nil), map[string]interface{}{
		"shop_name":   "Gamma Shoes",
		"location":    "Level 2",
		"size_sqft":   650.5,
		"rental_rate": 2100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var shop model.Shop
	decodeBody(t, rec, &shop)
	assert.NotZero(t, shop.ID)
	assert.Equal(t, "Gamma Shoes", shop.Name)
	assert.Equal(t, 650.5, shop.SizeSqft)
}

func TestUpdateShop(t *testing.T) {
	env := newTestEnv(t)
	shop := env.createShop("Alpha Books")

	rec := env.request(http.MethodPut, fmt.Sprintf("/api/shops/%d", shop.ID), env.token(model.RoleMallAdmin, nil), map[string]interface{}{
		"shop_name":   "Alpha Books & Coffee",
		"location":    "Level 1",
		"size_sqft":   500,
		"rental_rate": 1500,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Shop
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Alpha Books & Coffee", updated.Name)
	assert.Equal(t, "Level 1", updated.Location)
}

func TestUpdateShopNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodPut, "/api/shops/9999", env.token(model.RoleMallAdmin, nil), map[string]interface{}{
		"shop_name": "Ghost Shop",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteShopCascades(t *testing.T) {
	env := newTestEnv(t)
	shop := env.createShop("Alpha Books")
	keep := env.createShop("Beta Toys")

	env.createEmployee("owner@mall.test", "pw", model.RoleShopOwner, uintPtr(shop.ID))
	env.createEmployee("staff@mall.test", "pw", model.RoleStaff, uintPtr(shop.ID))
	product := env.createProduct(shop.ID, "Novel")
	env.createFootfall(shop.ID, "2024-01-01", 120)
	env.createSale(shop.ID, product.ID, "2024-01-01")

	keepProduct := env.createProduct(keep.ID, "Plush Bear")

	rec := env.request(http.MethodDelete, fmt.Sprintf("/api/shops/%d", shop.ID), env.token(model.RoleMallAdmin, nil), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	for name, m := range map[string]interface{}{
		"employees": &model.Employee{},
		"products":  &model.Product{},
		"footfall":  &model.Footfall{},
		"sales":     &model.Sale{},
	} {
		var count int64
		require.NoError(t, env.db.Model(m).Where("shop_id = ?", shop.ID).Count(&count).Error)
		assert.Zero(t, count, "%s should be empty for the deleted shop", name)
	}

	var shopCount int64
	require.NoError(t, env.db.Model(&model.Shop{}).Where("id = ?", shop.ID).Count(&shopCount).Error)
	assert.Zero(t, shopCount)

	// Unrelated shop data survives
	var keptCount int64
	require.NoError(t, env.db.Model(&model.Product{}).Where("id = ?", keepProduct.ID).Count(&keptCount).Error)
	assert.Equal(t, int64(1), keptCount)
}

func TestDeleteShopRollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	shop := env.createShop("Alpha Books")
	env.createEmployee("owner@mall.test", "pw", model.RoleShopOwner, uintPtr(shop.ID))
	env.createProduct(shop.ID, "Novel")
	env.createFootfall(shop.ID, "2024-01-01", 120)

	// Force the fourth statement of the cascade to fail
	require.NoError(t, env.db.Migrator().DropTable(&model.Sale{}))

	rec := env.request(http.MethodDelete, fmt.Sprintf("/api/shops/%d", shop.ID), env.token(model.RoleMallAdmin, nil), nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// Nothing from the earlier statements may stick
	var employeeCount, productCount, footfallCount, shopCount int64
	require.NoError(t, env.db.Model(&model.Employee{}).Where("shop_id = ?", shop.ID).Count(&employeeCount).Error)
	require.NoError(t, env.db.Model(&model.Product{}).Where("shop_id = ?", shop.ID).Count(&productCount).Error)
	require.NoError(t, env.db.Model(&model.Footfall{}).Where("shop_id = ?", shop.ID).Count(&footfallCount).Error)
	require.NoError(t, env.db.Model(&model.Shop{}).Where("id = ?", shop.ID).Count(&shopCount).Error)
	assert.Equal(t, int64(1), employeeCount)
	assert.Equal(t, int64(1), productCount)
	assert.Equal(t, int64(1), footfallCount)
	assert.Equal(t, int64(1), shopCount)
}

func TestDeleteShopNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodDelete, "/api/shops/9999", env.token(model.RoleMallAdmin, nil), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
