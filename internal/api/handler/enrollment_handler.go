package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/service"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/response"
)

// EnrollmentHandler is the enrollment module HTTP handler.
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler creates an EnrollmentHandler.
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// Enroll enrolls a user in a workshop, or queues them when it is full.
// POST /api/v1/workshop-users/enroll
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.enrollmentSvc.Enroll(c.Request.Context(), &req, actorID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.Created(c, result)
}

// Unenroll removes an enrollment with a mandatory reason.
// DELETE /api/v1/workshop-users/:id
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "enrollment id is required")
		return
	}

	var req dto.UnenrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "a removal reason is required")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.enrollmentSvc.Unenroll(c.Request.Context(), id, req.Reason, actorID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// WorkshopStudents lists a workshop's active enrollees and waitlist.
// GET /api/v1/workshop-users/workshop/:id
func (h *EnrollmentHandler) WorkshopStudents(c *gin.Context) {
	workshopID := c.Param("id")
	if workshopID == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	result, err := h.enrollmentSvc.WorkshopStudents(c.Request.Context(), workshopID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// WorkshopWaitlist lists a workshop's waitlist in position order.
// GET /api/v1/workshop-users/workshop/:id/waitlist
func (h *EnrollmentHandler) WorkshopWaitlist(c *gin.Context) {
	workshopID := c.Param("id")
	if workshopID == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	waitlist, err := h.enrollmentSvc.WorkshopWaitlist(c.Request.Context(), workshopID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"waitlist": waitlist})
}

// UserWorkshops lists a user's active and waitlisted enrollments.
// GET /api/v1/workshop-users/user/:id
func (h *EnrollmentHandler) UserWorkshops(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.BadRequest(c, "user id is required")
		return
	}

	result, err := h.enrollmentSvc.UserWorkshops(c.Request.Context(), userID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// handleEnrollmentError maps enrollment business errors to HTTP responses.
func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound),
		errors.Is(err, service.ErrEnrollUserNotFound),
		errors.Is(err, service.ErrWorkshopNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrWorkshopNotActive),
		errors.Is(err, service.ErrUnenrollReasonRequired):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c)
	}
}
