package dto

// ── Reporting DTOs (derived, read-only) ──

// UserAttendanceHistory is a user's attendance across one workshop.
type UserAttendanceHistory struct {
	UserID           string               `json:"user_id"`
	UserName         string               `json:"user_name"`
	WorkshopID       string               `json:"workshop_id"`
	WorkshopName     string               `json:"workshop_name"`
	TotalSessions    int                  `json:"total_sessions"`
	SessionsRecorded int                  `json:"sessions_recorded"`
	Stats            AttendanceStats      `json:"stats"`
	Attendances      []AttendanceResponse `json:"attendances"`
}

// UserReportRow is one enrolled user's line in a workshop report.
type UserReportRow struct {
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name"`
	TotalSessions  int     `json:"total_sessions"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// WorkshopReport ranks enrolled users by attendance rate. LowAttendance
// holds users below 60% among those with at least one recorded session.
type WorkshopReport struct {
	WorkshopID    string          `json:"workshop_id"`
	WorkshopName  string          `json:"workshop_name"`
	TotalSessions int             `json:"total_sessions"`
	TotalStudents int             `json:"total_students"`
	Students      []UserReportRow `json:"students"`
	TopStudents   []UserReportRow `json:"top_students"`
	LowAttendance []UserReportRow `json:"low_attendance"`
}

// SessionSummaryRow is one completed session inside a professional's
// cross-workshop summary.
type SessionSummaryRow struct {
	SessionID      string  `json:"session_id"`
	WorkshopID     string  `json:"workshop_id"`
	WorkshopName   string  `json:"workshop_name"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Topic          string  `json:"topic,omitempty"`
	TotalStudents  int     `json:"total_students"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	AttendanceRate float64 `json:"attendance_rate"`
	RecordedAt     string  `json:"recorded_at,omitempty"`
}

// ProfessionalSummaryStats aggregates a professional's recorded sessions.
type ProfessionalSummaryStats struct {
	TotalSessions         int     `json:"total_sessions"`
	TotalWorkshops        int     `json:"total_workshops"`
	TotalAttendances      int     `json:"total_attendances"`
	TotalPresent          int     `json:"total_present"`
	TotalAbsent           int     `json:"total_absent"`
	AverageAttendanceRate float64 `json:"average_attendance_rate"`
}

// WorkshopRef is a compact workshop reference used inside reports.
type WorkshopRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProfessionalSummary is the professional's cross-workshop view of all
// sessions with recorded attendance.
type ProfessionalSummary struct {
	Workshops []WorkshopRef            `json:"workshops"`
	Sessions  []SessionSummaryRow      `json:"sessions_with_attendance"`
	Stats     ProfessionalSummaryStats `json:"stats"`
}
