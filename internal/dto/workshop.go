package dto

// ── Workshop module DTOs ──

// CreateWorkshopRequest creates a workshop. Dates are "YYYY-MM-DD",
// times "HH:MM" (24h), week_days a comma list of L,M,X,J,V,S,D.
type CreateWorkshopRequest struct {
	Name            string `json:"name"             binding:"required,min=2,max=200"`
	Description     string `json:"description"`
	ThematicAreaID  string `json:"thematic_area_id" binding:"required,uuid"`
	CenterID        string `json:"center_id"        binding:"required,uuid"`
	ProfessionalID  string `json:"professional_id"  binding:"required,uuid"`
	MaxCapacity     int    `json:"max_capacity"     binding:"required"`
	StartTime       string `json:"start_time"       binding:"required"`
	EndTime         string `json:"end_time"         binding:"required"`
	WeekDays        string `json:"week_days"        binding:"required"`
	StartDate       string `json:"start_date"       binding:"required"`
	EndDate         string `json:"end_date"`
	Location        string `json:"location"`
	SessionDuration *int   `json:"session_duration"`
	Status          string `json:"status"           binding:"omitempty,oneof=pending active paused finished"`
	Observations    string `json:"observations"`
}

// UpdateWorkshopRequest partially updates a workshop. Nil fields are
// left untouched.
type UpdateWorkshopRequest struct {
	Name            *string `json:"name"             binding:"omitempty,min=2,max=200"`
	Description     *string `json:"description"`
	ThematicAreaID  *string `json:"thematic_area_id" binding:"omitempty,uuid"`
	CenterID        *string `json:"center_id"        binding:"omitempty,uuid"`
	ProfessionalID  *string `json:"professional_id"  binding:"omitempty,uuid"`
	MaxCapacity     *int    `json:"max_capacity"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	WeekDays        *string `json:"week_days"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"` // empty string clears the end date
	Location        *string `json:"location"`
	SessionDuration *int    `json:"session_duration"`
	Status          *string `json:"status"           binding:"omitempty,oneof=pending active paused finished"`
	Observations    *string `json:"observations"`
}

// AssignProfessionalRequest reassigns the workshop's default professional.
type AssignProfessionalRequest struct {
	ProfessionalID string `json:"professional_id" binding:"required,uuid"`
}

// WorkshopResponse is the public shape of a workshop.
type WorkshopResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	ThematicAreaID  string `json:"thematic_area_id"`
	CenterID        string `json:"center_id"`
	ProfessionalID  string `json:"professional_id"`
	MaxCapacity     int    `json:"max_capacity"`
	CurrentCapacity int    `json:"current_capacity"`
	AvailableSpots  int    `json:"available_spots"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	WeekDays        string `json:"week_days"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date,omitempty"`
	Location        string `json:"location,omitempty"`
	SessionDuration *int   `json:"session_duration,omitempty"`
	Status          string `json:"status"`
	Observations    string `json:"observations,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
