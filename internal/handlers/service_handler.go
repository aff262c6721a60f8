package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// List returns the active service catalog, optionally filtered by kind
// (?tipo=) or name (?query=).
func (h *ServiceHandler) List(c *gin.Context) {
	kind := strings.ToLower(strings.TrimSpace(c.Query("tipo")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("active = ?", true)

	if kind != "" {
		q = q.Where("LOWER(kind) = ?", kind)
	}
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, httperr.Store("list_services", err))
		return
	}

	httpresp.List(c, services)
}
