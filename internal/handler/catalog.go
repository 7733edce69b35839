package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/ticketera/internal/catalog"
	"github.com/opsdesk/ticketera/internal/model"
)

func (h *Handler) Origins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"origins": catalog.Origins()})
}

func (h *Handler) Origin(c *gin.Context) {
	origin := model.Origin(c.Param("origin"))
	if !catalog.Valid(origin) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown origin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"origin":       origin,
		"extra_fields": catalog.ExtraFieldsFor(origin),
		"reasons":      catalog.ReasonsFor(origin),
	})
}
