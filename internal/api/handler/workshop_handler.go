package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/service"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/response"
)

// WorkshopHandler is the workshop module HTTP handler.
type WorkshopHandler struct {
	workshopSvc service.WorkshopService
}

// NewWorkshopHandler creates a WorkshopHandler.
func NewWorkshopHandler(workshopSvc service.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{workshopSvc: workshopSvc}
}

// CreateWorkshop creates a workshop.
// POST /api/v1/workshops
func (h *WorkshopHandler) CreateWorkshop(c *gin.Context) {
	var req dto.CreateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	workshop, err := h.workshopSvc.Create(c.Request.Context(), &req, actorID)
	if err != nil {
		h.handleWorkshopError(c, err)
		return
	}

	response.Created(c, workshop)
}

// GetWorkshop returns one workshop.
// GET /api/v1/workshops/:id
func (h *WorkshopHandler) GetWorkshop(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	workshop, err := h.workshopSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleWorkshopError(c, err)
		return
	}

	response.OK(c, workshop)
}

// ListWorkshops lists workshops, optionally filtered by center and status.
// GET /api/v1/workshops?center_id=&status=
func (h *WorkshopHandler) ListWorkshops(c *gin.Context) {
	workshops, err := h.workshopSvc.List(c.Request.Context(), c.Query("center_id"), c.Query("status"))
	if err != nil {
		h.handleWorkshopError(c, err)
		return
	}

	response.OK(c, gin.H{"workshops": workshops})
}

// ListAvailableWorkshops lists active workshops with open seats.
// GET /api/v1/workshops/available
func (h *WorkshopHandler) ListAvailableWorkshops(c *gin.Context) {
	workshops, err := h.workshopSvc.ListAvailable(c.Request.Context())
	if err != nil {
		h.handleWorkshopError(c, err)
		return
	}

	response.OK(c, gin.H{"workshops": workshops})
}

// ListMyWorkshops lists the workshops visible to the caller.
// GET /api/v1/workshops/mine
func (h *WorkshopHandler) ListMyWorkshops(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	workshops, err := h.workshopSvc.ListMine(c.Request.Context(), actorID, model.UserRole(role))
	if err != nil {
		h.handleWorkshopError(c, err)
		return
	}

	response.OK(c, gin.H{"workshops": workshops})
}

// UpdateWorkshop partially updates a workshop.
// PUT /api/v1/workshops/:id
func (h *WorkshopHandler) UpdateWorkshop(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	var req dto.UpdateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	workshop, err := h.workshopSvc.Update(c.Request.Context(), id, &req, actorID)
	if err != nil {
		h.handleWorkshopError(c, err)
		return
	}

	response.OK(c, workshop)
}

// AssignProfessional reassigns the workshop's professional.
// PUT /api/v1/workshops/:id/professional
func (h *WorkshopHandler) AssignProfessional(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	var req dto.AssignProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	workshop, err := h.workshopSvc.AssignProfessional(c.Request.Context(), id, req.ProfessionalID, actorID)
	if err != nil {
		h.handleWorkshopError(c, err)
		return
	}

	response.OK(c, workshop)
}

// DeleteWorkshop deletes a workshop without enrollments.
// DELETE /api/v1/workshops/:id
func (h *WorkshopHandler) DeleteWorkshop(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	if err := h.workshopSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleWorkshopError(c, err)
		return
	}

	response.NoContent(c)
}

// handleWorkshopError maps workshop business errors to HTTP responses.
func (h *WorkshopHandler) handleWorkshopError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkshopNotFound),
		errors.Is(err, service.ErrThematicAreaNotFound),
		errors.Is(err, service.ErrCenterNotFound),
		errors.Is(err, service.ErrProfessionalNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotProfessional),
		errors.Is(err, service.ErrWorkshopInvalidCapacity),
		errors.Is(err, service.ErrWorkshopInvalidWeekDays),
		errors.Is(err, service.ErrWorkshopInvalidTime),
		errors.Is(err, service.ErrWorkshopInvalidDate),
		errors.Is(err, service.ErrWorkshopInvalidStatus),
		errors.Is(err, service.ErrCapacityBelowEnrolled):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrWorkshopHasEnrollments):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c)
	}
}
