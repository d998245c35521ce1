package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/service"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/response"
)

// ReferenceHandler serves the read-only lookup tables.
type ReferenceHandler struct {
	referenceSvc service.ReferenceService
}

// NewReferenceHandler creates a ReferenceHandler.
func NewReferenceHandler(referenceSvc service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceSvc: referenceSvc}
}

// ListThematicAreas lists all thematic areas.
// GET /api/v1/thematic-areas
func (h *ReferenceHandler) ListThematicAreas(c *gin.Context) {
	areas, err := h.referenceSvc.ListThematicAreas(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"thematic_areas": areas})
}

// GetThematicArea returns one thematic area.
// GET /api/v1/thematic-areas/:id
func (h *ReferenceHandler) GetThematicArea(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "thematic area id is required")
		return
	}

	area, err := h.referenceSvc.GetThematicArea(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrThematicAreaNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, area)
}

// ListCenters lists all service centers.
// GET /api/v1/centers
func (h *ReferenceHandler) ListCenters(c *gin.Context) {
	centers, err := h.referenceSvc.ListCenters(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"centers": centers})
}

// GetCenter returns one service center.
// GET /api/v1/centers/:id
func (h *ReferenceHandler) GetCenter(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "center id is required")
		return
	}

	center, err := h.referenceSvc.GetCenter(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCenterNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, center)
}
