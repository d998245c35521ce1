package dto

// ── Enrollment module DTOs ──

// EnrollRequest enrolls a user into a workshop.
type EnrollRequest struct {
	UserID     string `json:"user_id"     binding:"required,uuid"`
	WorkshopID string `json:"workshop_id" binding:"required,uuid"`
}

// UnenrollRequest carries the mandatory removal reason.
type UnenrollRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// EnrollmentResponse is the public shape of an enrollment.
type EnrollmentResponse struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	UserName         string `json:"user_name,omitempty"`
	WorkshopID       string `json:"workshop_id"`
	AssignedBy       string `json:"assigned_by"`
	AssignmentDate   string `json:"assignment_date"`
	WaitlistPosition *int   `json:"waitlist_position,omitempty"`
	InWaitlist       bool   `json:"in_waitlist"`
}

// WorkshopCapacity summarizes a workshop's seat accounting; returned
// alongside enrollment mutations.
type WorkshopCapacity struct {
	WorkshopID      string `json:"workshop_id"`
	Name            string `json:"name"`
	CurrentCapacity int    `json:"current_capacity"`
	MaxCapacity     int    `json:"max_capacity"`
	AvailableSpots  int    `json:"available_spots"`
}

// EnrollResponse is returned by the enroll operation.
type EnrollResponse struct {
	Enrollment       EnrollmentResponse `json:"enrollment"`
	InWaitlist       bool               `json:"in_waitlist"`
	WaitlistPosition *int               `json:"waitlist_position,omitempty"`
	Workshop         WorkshopCapacity   `json:"workshop"`
}

// PromotedUser identifies the waitlisted user promoted by an unenroll.
type PromotedUser struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// UnenrollResponse is returned by the unenroll operation.
type UnenrollResponse struct {
	Reason   string           `json:"reason"`
	Workshop WorkshopCapacity `json:"workshop"`
	Promoted *PromotedUser    `json:"promoted_from_waitlist,omitempty"`
}

// WorkshopStudentsResponse lists active and waitlisted enrollments of a
// workshop.
type WorkshopStudentsResponse struct {
	Workshop WorkshopCapacity     `json:"workshop"`
	Enrolled []EnrollmentResponse `json:"enrolled"`
	Waitlist []EnrollmentResponse `json:"waitlist"`
}

// UserWorkshopsResponse lists a user's enrollments split by state.
type UserWorkshopsResponse struct {
	UserID   string               `json:"user_id"`
	UserName string               `json:"user_name"`
	Active   []EnrollmentResponse `json:"active"`
	Waitlist []EnrollmentResponse `json:"waitlist"`
}
