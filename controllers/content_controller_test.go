package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihirwe-dev/gura-express-api/config"
	"github.com/ihirwe-dev/gura-express-api/models"
	"github.com/ihirwe-dev/gura-express-api/tests/testutil"
)

func TestHeroContentCRUD(t *testing.T) {
	db := testutil.OpenTestDB(t)
	config.SetDB(db)
	super := testutil.CreateUser(t, db, "super@example.com", models.RoleSuperAdmin, models.VerificationVerified)

	router := testutil.NewTestRouter()
	router.GET("/hero", ListHeroContent)
	router.POST("/super-admin/hero", testutil.AuthAs(super), UpsertHeroContent)
	router.DELETE("/super-admin/hero/:id", testutil.AuthAs(super), DeleteHeroContent)

	// Create a slide
	w := requestJSON(router, http.MethodPost, "/super-admin/hero", map[string]interface{}{
		"title":         "Shop China, delivered to Kigali",
		"display_order": 1,
		"is_active":     true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeBody(t, w)["data"].(map[string]interface{})
	slideID := created["id"].(string)
	require.NotEmpty(t, slideID)

	// Update it by id
	w = requestJSON(router, http.MethodPost, "/super-admin/hero", map[string]interface{}{
		"id":    slideID,
		"title": "Updated headline",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Public listing shows the active slide
	w = requestJSON(router, http.MethodGet, "/hero", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Updated headline", data[0].(map[string]interface{})["title"])

	// Delete removes it from the listing
	w = requestJSON(router, http.MethodDelete, "/super-admin/hero/"+slideID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = requestJSON(router, http.MethodGet, "/hero", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["data"])
}

func TestListHeroContentHidesInactive(t *testing.T) {
	db := testutil.OpenTestDB(t)
	config.SetDB(db)

	require.NoError(t, db.Create(&models.HeroContent{Title: "Visible", IsActive: true, DisplayOrder: 2}).Error)
	hidden := models.HeroContent{Title: "Hidden", DisplayOrder: 1}
	require.NoError(t, db.Create(&hidden).Error)
	require.NoError(t, db.Model(&hidden).Update("is_active", false).Error)

	router := testutil.NewTestRouter()
	router.GET("/hero", ListHeroContent)

	w := requestJSON(router, http.MethodGet, "/hero", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Visible", data[0].(map[string]interface{})["title"])
}

func TestAboutUsUpsertIsSingleton(t *testing.T) {
	db := testutil.OpenTestDB(t)
	config.SetDB(db)

	router := testutil.NewTestRouter()
	router.GET("/about", GetAboutUs)
	router.POST("/super-admin/about", UpsertAboutUs)

	w := requestJSON(router, http.MethodPost, "/super-admin/about", map[string]string{
		"title":   "About us",
		"content": "We buy from China so you don't have to.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// A second upsert replaces the block instead of adding one
	w = requestJSON(router, http.MethodPost, "/super-admin/about", map[string]string{
		"title":   "About Gura Express",
		"content": "Cross-border purchasing for Rwanda.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.AboutUs{}).Count(&count)
	assert.EqualValues(t, 1, count)

	w = requestJSON(router, http.MethodGet, "/about", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "About Gura Express", data["title"])
}

func TestCompanyCRUD(t *testing.T) {
	db := testutil.OpenTestDB(t)
	config.SetDB(db)

	router := testutil.NewTestRouter()
	router.GET("/companies", ListCompanies)
	router.POST("/super-admin/companies", UpsertCompany)
	router.DELETE("/super-admin/companies/:id", DeleteCompany)

	w := requestJSON(router, http.MethodPost, "/super-admin/companies", map[string]interface{}{
		"name":      "Taobao",
		"is_active": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	companyID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = requestJSON(router, http.MethodGet, "/companies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeBody(t, w)["data"].([]interface{}), 1)

	w = requestJSON(router, http.MethodDelete, "/super-admin/companies/"+companyID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = requestJSON(router, http.MethodGet, "/companies", nil)
	assert.Empty(t, decodeBody(t, w)["data"])
}

func TestTermsPolicyByType(t *testing.T) {
	db := testutil.OpenTestDB(t)
	config.SetDB(db)

	router := testutil.NewTestRouter()
	router.GET("/terms/:type", GetTermsPolicy)
	router.POST("/super-admin/terms", UpsertTermsPolicy)

	w := requestJSON(router, http.MethodPost, "/super-admin/terms", map[string]string{
		"type":    "privacy",
		"title":   "Privacy Policy",
		"content": "We keep your data in Rwanda.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Re-upserting the same type overwrites, keyed by type
	w = requestJSON(router, http.MethodPost, "/super-admin/terms", map[string]string{
		"type":    "privacy",
		"title":   "Privacy Policy v2",
		"content": "Updated.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.TermsPolicy{}).Count(&count)
	assert.EqualValues(t, 1, count)

	w = requestJSON(router, http.MethodGet, "/terms/privacy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Privacy Policy v2", decodeBody(t, w)["data"].(map[string]interface{})["title"])

	// Missing type
	w = requestJSON(router, http.MethodGet, "/terms/cookies", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Type is required on upsert
	w = requestJSON(router, http.MethodPost, "/super-admin/terms", map[string]string{
		"title": "No type",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
