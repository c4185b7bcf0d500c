package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/product-catalog/internal/model"
)

func runRole(t *testing.T, role any, allowed ...string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	if role != nil {
		c.Set(CtxRole, role)
	}

	called := false
	h := RequireRole(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func TestRequireRoleAllows(t *testing.T) {
	rec, called := runRole(t, model.RoleAdmin, model.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	rec, called := runRole(t, model.RoleUser, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	rec, called := runRole(t, nil, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestRequireRoleMultipleRoles(t *testing.T) {
	rec, called := runRole(t, model.RoleUser, model.RoleAdmin, model.RoleUser)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
