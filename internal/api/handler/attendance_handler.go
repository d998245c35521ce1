package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/service"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/response"
)

// AttendanceHandler is the attendance module HTTP handler.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// TakeAttendance records a session's attendance in one batch.
// POST /api/v1/attendance/session/:id
func (h *AttendanceHandler) TakeAttendance(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		response.BadRequest(c, "session id is required")
		return
	}

	var req dto.TakeAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "an attendances array is required, each entry with user_id and present")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.Take(c.Request.Context(), sessionID, &req, actorID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, result)
}

// GetSessionAttendance returns a session's recorded attendance.
// GET /api/v1/attendance/session/:id
func (h *AttendanceHandler) GetSessionAttendance(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		response.BadRequest(c, "session id is required")
		return
	}

	result, err := h.attendanceSvc.SessionAttendance(c.Request.Context(), sessionID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateAttendance corrects existing records of a session.
// PUT /api/v1/attendance/session/:id
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		response.BadRequest(c, "session id is required")
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "an attendances array is required, each entry with user_id")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.Update(c.Request.Context(), sessionID, &req, actorID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetUserHistory returns a user's attendance across one workshop.
// GET /api/v1/attendance/user/:userId/workshop/:workshopId
func (h *AttendanceHandler) GetUserHistory(c *gin.Context) {
	userID := c.Param("userId")
	workshopID := c.Param("workshopId")
	if userID == "" || workshopID == "" {
		response.BadRequest(c, "user id and workshop id are required")
		return
	}

	result, err := h.attendanceSvc.UserHistory(c.Request.Context(), userID, workshopID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetWorkshopReport returns the workshop attendance report.
// GET /api/v1/attendance/workshop/:id/report
func (h *AttendanceHandler) GetWorkshopReport(c *gin.Context) {
	workshopID := c.Param("id")
	if workshopID == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	result, err := h.attendanceSvc.WorkshopReport(c.Request.Context(), workshopID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetMyWorkshopsAttendance returns the caller's cross-workshop summary.
// GET /api/v1/attendance/my-workshops
func (h *AttendanceHandler) GetMyWorkshopsAttendance(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.ProfessionalSummary(c.Request.Context(), actorID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// handleAttendanceError maps attendance business errors to HTTP responses.
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrWorkshopNotFound),
		errors.Is(err, service.ErrAttendanceUserNotFound),
		errors.Is(err, service.ErrAttendanceNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAttendanceOnCancelled),
		errors.Is(err, service.ErrUserNotEnrolled),
		errors.Is(err, service.ErrDuplicateAttendanceUser),
		errors.Is(err, service.ErrAttendanceAlreadyTaken):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
