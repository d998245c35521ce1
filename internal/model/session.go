package model

import "time"

// SessionStatus lifecycle of a single class occurrence.
type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionCompleted   SessionStatus = "completed"
	SessionCancelled   SessionStatus = "cancelled"
	SessionRescheduled SessionStatus = "rescheduled"
)

// Valid reports whether s is one of the closed session statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled, SessionRescheduled:
		return true
	}
	return false
}

// Session is one concrete class occurrence of a workshop. No two
// sessions of the same workshop may overlap on the same date; the
// [StartTime, EndTime) interval is half-open, so touching edges are
// allowed.
type Session struct {
	SessionID      string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	WorkshopID     string        `gorm:"type:uuid;not null"                             json:"workshop_id"`
	Date           time.Time     `gorm:"type:date;not null"                             json:"date"`
	StartTime      string        `gorm:"type:time;not null"                             json:"start_time"`
	EndTime        string        `gorm:"type:time;not null"                             json:"end_time"`
	Topic          string        `gorm:"type:varchar(255)"                              json:"topic,omitempty"`
	Observations   string        `gorm:"type:text"                                      json:"observations,omitempty"`
	ProfessionalID string        `gorm:"type:uuid;not null"                             json:"professional_id"`
	Status         SessionStatus `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"`
	BaseModel

	Workshop     *Workshop   `gorm:"foreignKey:WorkshopID;references:WorkshopID" json:"workshop,omitempty"`
	Professional *SystemUser `gorm:"foreignKey:ProfessionalID;references:UserID" json:"professional,omitempty"`
}

func (Session) TableName() string { return "sessions" }

// Overlaps reports whether two half-open time ranges on the same date
// collide. Times are "HH:MM" strings, comparable lexicographically.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}
