package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/service"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/response"
)

// SessionHandler is the session module HTTP handler.
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// CreateSession schedules a session.
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), &req, actorID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// GetSession returns one session.
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "session id is required")
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// ListWorkshopSessions lists a workshop's sessions in chronological order.
// GET /api/v1/sessions/workshop/:id
func (h *SessionHandler) ListWorkshopSessions(c *gin.Context) {
	workshopID := c.Param("id")
	if workshopID == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	sessions, err := h.sessionSvc.ListByWorkshop(c.Request.Context(), workshopID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"sessions": sessions})
}

// ListMySessions lists the sessions visible to the caller.
// GET /api/v1/sessions/mine
func (h *SessionHandler) ListMySessions(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	sessions, err := h.sessionSvc.ListMine(c.Request.Context(), actorID, model.UserRole(role))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"sessions": sessions})
}

// UpdateSession partially updates a session, re-checking overlaps when
// the timing changes.
// PUT /api/v1/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "session id is required")
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), id, &req, actorID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// CompleteSession marks a session completed.
// POST /api/v1/sessions/:id/complete
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "session id is required")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Complete(c.Request.Context(), id, actorID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// CancelSession cancels a session with a mandatory reason.
// POST /api/v1/sessions/:id/cancel
func (h *SessionHandler) CancelSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "session id is required")
		return
	}

	var req dto.CancelSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "a cancellation reason is required")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Cancel(c.Request.Context(), id, req.Reason, actorID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// DeleteSession deletes a session without attendance records.
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "session id is required")
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.NoContent(c)
}

// handleSessionError maps session business errors to HTTP responses.
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrWorkshopNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSessionInvalidDate),
		errors.Is(err, service.ErrSessionBeforeWorkshop),
		errors.Is(err, service.ErrSessionAfterWorkshop),
		errors.Is(err, service.ErrSessionInvalidTime),
		errors.Is(err, service.ErrSessionInvalidStatus),
		errors.Is(err, service.ErrSessionAlreadyCompleted),
		errors.Is(err, service.ErrCancelReasonRequired):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrSessionOverlap),
		errors.Is(err, service.ErrSessionHasAttendance):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c)
	}
}
