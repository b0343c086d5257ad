package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cityvoice/cityvoice-backend/internal/http/middleware"
	"github.com/cityvoice/cityvoice-backend/internal/models"
)

func TestReportHandler_Create_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ReportHandler{reports: nil}
	r.POST("/reports", handler.Create)

	body := strings.NewReader(`{"title":"Яма","description":"Описание проблемы на дороге","category":"cat1"}`)
	req, _ := http.NewRequest("POST", "/reports", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportHandler_Get_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ReportHandler{reports: nil}
	r.GET("/reports/:id", middleware.IDValidator("id"), handler.Get)

	req, _ := http.NewRequest("GET", "/reports/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_Get_NegativeID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ReportHandler{reports: nil}
	r.GET("/reports/:id", middleware.IDValidator("id"), handler.Get)

	req, _ := http.NewRequest("GET", "/reports/-3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_Update_InvalidBody_WithAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uuid.New())
		c.Set(middleware.ContextUserNameKey, "Иван Петров")
		c.Set(middleware.ContextRoleKey, models.RoleResident)
		c.Next()
	})
	handler := &ReportHandler{reports: nil}
	r.PUT("/reports/:id", middleware.IDValidator("id"), handler.Update)

	req, _ := http.NewRequest("PUT", "/reports/1", strings.NewReader("не json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_Create_InvalidPhotoID_WithAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uuid.New())
		c.Set(middleware.ContextUserNameKey, "Иван Петров")
		c.Set(middleware.ContextRoleKey, models.RoleResident)
		c.Next()
	})
	handler := &ReportHandler{reports: nil}
	r.POST("/reports", handler.Create)

	body := strings.NewReader(`{"title":"Яма на дороге","description":"Описание проблемы на дороге","category":"cat1","photo_id":"не-uuid"}`)
	req, _ := http.NewRequest("POST", "/reports", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_List_BadUserIDFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ReportHandler{reports: nil}
	r.GET("/reports", handler.List)

	req, _ := http.NewRequest("GET", "/reports?user_id=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_UpdateStatus_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ReportHandler{reports: nil}
	r.PUT("/reports/:id/status", middleware.IDValidator("id"), handler.UpdateStatus)

	body := strings.NewReader(`{"status":"resolved"}`)
	req, _ := http.NewRequest("PUT", "/reports/1/status", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware_BlocksResident(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uuid.New())
		c.Set(middleware.ContextRoleKey, models.RoleResident)
		c.Next()
	})
	r.Use(middleware.AdminMiddleware())
	r.PUT("/reports/:id/status", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("PUT", "/reports/1/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddleware_AllowsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uuid.New())
		c.Set(middleware.ContextRoleKey, models.RoleAdmin)
		c.Next()
	})
	r.Use(middleware.AdminMiddleware())
	r.PUT("/reports/:id/status", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("PUT", "/reports/1/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
