package model

import "time"

// Enrollment relates one user to one workshop (workshop_users in the
// schema). A NULL WaitlistPosition means the enrollment is active and
// counts against the workshop's CurrentCapacity; otherwise the user is
// queued at a 1-based, gapless position. At most one row per
// (user, workshop) pair exists at a time.
type Enrollment struct {
	EnrollmentID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	UserID             string     `gorm:"type:uuid;not null;index:idx_enrollment_pair,unique,composite:pair" json:"user_id"`
	WorkshopID         string     `gorm:"type:uuid;not null;index:idx_enrollment_pair,unique,composite:pair" json:"workshop_id"`
	AssignedBy         string     `gorm:"type:uuid;not null"                 json:"assigned_by"`
	AssignmentDate     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"assignment_date"`
	UnassignmentReason *string    `gorm:"type:text"                          json:"unassignment_reason,omitempty"`
	UnassignmentDate   *time.Time `json:"unassignment_date,omitempty"`
	WaitlistPosition   *int       `json:"waitlist_position,omitempty"`
	BaseModel

	User     *SystemUser `gorm:"foreignKey:UserID;references:UserID"         json:"user,omitempty"`
	Workshop *Workshop   `gorm:"foreignKey:WorkshopID;references:WorkshopID" json:"workshop,omitempty"`
}

func (Enrollment) TableName() string { return "workshop_users" }

// Waitlisted reports whether the enrollment is queued rather than active.
func (e *Enrollment) Waitlisted() bool { return e.WaitlistPosition != nil }
