package jwtutil

import (
	"testing"

	"mall-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	j := New(&config.JWTConfig{SigningKey: "k", ExpirationHours: 1})

	shopID := uint(7)
	token, err := j.GenerateToken(42, "staff", &shopID)
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.EmployeeID)
	assert.Equal(t, "staff", claims.Role)
	require.NotNil(t, claims.ShopID)
	assert.Equal(t, uint(7), *claims.ShopID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestTokenWithoutShop(t *testing.T) {
	j := New(&config.JWTConfig{SigningKey: "k", ExpirationHours: 1})

	token, err := j.GenerateToken(1, "malladmin", nil)
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ShopID)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	j := New(&config.JWTConfig{SigningKey: "k", ExpirationHours: 1})
	other := New(&config.JWTConfig{SigningKey: "other", ExpirationHours: 1})

	token, err := other.GenerateToken(1, "staff", nil)
	require.NoError(t, err)

	_, err = j.ValidateToken(token)
	assert.Error(t, err)
}
