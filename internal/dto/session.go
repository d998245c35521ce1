package dto

// ── Session module DTOs ──

// CreateSessionRequest schedules one class occurrence of a workshop.
type CreateSessionRequest struct {
	WorkshopID     string `json:"workshop_id"     binding:"required,uuid"`
	Date           string `json:"date"            binding:"required"` // "2025-10-15"
	StartTime      string `json:"start_time"      binding:"required"` // "09:00"
	EndTime        string `json:"end_time"        binding:"required"`
	Topic          string `json:"topic"`
	Observations   string `json:"observations"`
	ProfessionalID string `json:"professional_id" binding:"required,uuid"`
	Status         string `json:"status"          binding:"omitempty,oneof=scheduled completed cancelled rescheduled"`
}

// UpdateSessionRequest partially updates a session.
type UpdateSessionRequest struct {
	Date           *string `json:"date"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Topic          *string `json:"topic"`
	Observations   *string `json:"observations"`
	ProfessionalID *string `json:"professional_id" binding:"omitempty,uuid"`
	Status         *string `json:"status"          binding:"omitempty,oneof=scheduled completed cancelled rescheduled"`
}

// CancelSessionRequest carries the mandatory cancellation reason.
type CancelSessionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SessionResponse is the public shape of a session.
type SessionResponse struct {
	ID             string `json:"id"`
	WorkshopID     string `json:"workshop_id"`
	WorkshopName   string `json:"workshop_name,omitempty"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Topic          string `json:"topic,omitempty"`
	Observations   string `json:"observations,omitempty"`
	ProfessionalID string `json:"professional_id"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
