package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/p-miano/portfolio-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategorySharesRowAcrossUsers(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup("alice")
	_, bob := env.signup("bob")

	rec := env.do(http.MethodPost, "/api/categories", alice, map[string]string{"name": "  web  "})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"Web"}`, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/categories", bob, map[string]string{"name": "WEB"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"Web"}`, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/categories", alice, map[string]string{"name": "web"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	assert.EqualValues(t, 1, env.count("categories"))
	assert.EqualValues(t, 2, env.count("user_categories"))
}

func TestCreateCategoryValidation(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup("alice")

	tests := []struct {
		name string
		body any
	}{
		{"empty", map[string]string{"name": "   "}},
		{"too short", map[string]string{"name": " a "}},
		{"too long", map[string]string{"name": fmt.Sprintf("%051d", 0)}},
		{"missing", map[string]string{}},
		{"invalid utf-8", "{\"name\":\"\xff\xfe\"}"},
		{"replacement characters", map[string]string{"name": "\ufffd\ufffd"}},
		{"control character", map[string]string{"name": "we\x00b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/categories", alice, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[ErrorResponse](t, rec)
			assert.Equal(t, "validation failed", resp.Error)
			assert.Equal(t, "error", resp.Status)
			assert.NotEmpty(t, resp.Errors["name"])
		})
	}

	assert.EqualValues(t, 0, env.count("categories"))
}

func TestListCategoriesIsScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup("alice")
	_, bob := env.signup("bob")

	env.createCategory(alice, "mobile")
	env.createCategory(alice, "api")
	env.createCategory(bob, "desktop")

	rec := env.do(http.MethodGet, "/api/categories", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	categories := decode[[]CategoryResponse](t, rec)
	require.Len(t, categories, 2)
	assert.Equal(t, "Api", categories[0].Name)
	assert.Equal(t, "Mobile", categories[1].Name)
}

func TestGetCategory(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup("alice")
	_, bob := env.signup("bob")
	id := env.createCategory(alice, "web")

	rec := env.do(http.MethodGet, fmt.Sprintf("/api/categories/%d", id), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Web", decode[CategoryResponse](t, rec).Name)

	// not associated reads look like missing rows
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/categories/%d", id), bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/categories/999", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/categories/abc", alice, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCategory(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup("alice")
	_, bob := env.signup("bob")
	id := env.createCategory(alice, "web")
	env.createCategory(alice, "mobile")

	path := fmt.Sprintf("/api/categories/%d", id)

	rec := env.do(http.MethodPut, path, alice, map[string]string{"name": "web apps"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, path, alice, nil)
	assert.Equal(t, "Web Apps", decode[CategoryResponse](t, rec).Name)

	rec = env.do(http.MethodPut, path, alice, map[string]string{"name": "MOBILE"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodPut, path, bob, map[string]string{"name": "hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPut, "/api/categories/999", alice, map[string]string{"name": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCategoryWithProjectIsRejected(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup("alice")
	categoryID := env.createCategory(alice, "web")
	env.createProject(alice, projectBody(categoryID))

	rec := env.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", categoryID), alice, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, "associated projects")

	assert.EqualValues(t, 1, env.count("categories"))
	assert.EqualValues(t, 1, env.count("user_categories"))
}

func TestDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup("alice")
	_, bob := env.signup("bob")
	_, carol := env.signup("carol")

	shared := env.createCategory(alice, "web")
	env.createCategory(bob, "web")
	own := env.createCategory(alice, "desktop")

	// other users keep the shared row
	rec := env.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", shared), alice, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.EqualValues(t, 2, env.count("categories"))

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/categories/%d", shared), bob, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the last association removes the row
	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", own), alice, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.EqualValues(t, 1, env.count("categories"))

	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", shared), carol, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", own), alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCategoryUsedByAnotherUsersProject(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup("alice")
	bobID, bob := env.signup("bob")

	categoryID := env.createCategory(alice, "web")
	require.Equal(t, categoryID, env.createCategory(bob, "web"))
	project := env.createProject(bob, projectBody(categoryID))
	path := fmt.Sprintf("/api/categories/%d", categoryID)

	rec := env.do(http.MethodDelete, path, alice, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, env.count("categories"))
	assert.EqualValues(t, 1, env.count("user_categories"))

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Web", decode[ProjectResponse](t, rec).CategoryName)

	// with bob's link gone only his project keeps the row
	require.Equal(t, categoryID, env.createCategory(alice, "web"))
	require.NoError(t, env.db.Associations(models.CategoryAssociation).Remove(context.Background(), bobID, categoryID))

	rec = env.do(http.MethodDelete, path, alice, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, env.count("categories"))
	assert.EqualValues(t, 0, env.count("user_categories"))
	assert.EqualValues(t, 1, env.count("projects"))
}
