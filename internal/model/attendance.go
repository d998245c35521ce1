package model

import "time"

// Attendance is one present/absent record for an enrolled user in a
// session. At most one row per (session, user) pair; rows are created
// once in a batch and only individually updated afterwards.
type Attendance struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	SessionID    string    `gorm:"type:uuid;not null;index:idx_attendance_pair,unique,composite:pair" json:"session_id"`
	UserID       string    `gorm:"type:uuid;not null;index:idx_attendance_pair,unique,composite:pair" json:"user_id"`
	Present      bool      `gorm:"not null;default:false"             json:"present"`
	Observations *string   `gorm:"type:text"                          json:"observations,omitempty"`
	RecordedBy   string    `gorm:"type:uuid;not null"                 json:"recorded_by"`
	RecordedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"recorded_at"`

	Session *Session    `gorm:"foreignKey:SessionID;references:SessionID" json:"session,omitempty"`
	User    *SystemUser `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
}

func (Attendance) TableName() string { return "attendances" }
