package dto

// ── Attendance module DTOs ──

// AttendanceEntry is one user's record inside a batch submission.
type AttendanceEntry struct {
	UserID       string  `json:"user_id" binding:"required,uuid"`
	Present      *bool   `json:"present" binding:"required"`
	Observations *string `json:"observations"`
}

// TakeAttendanceRequest records attendance for a whole session in one
// batch. The initial recording is one-shot; corrections go through the
// update path.
type TakeAttendanceRequest struct {
	Attendances []AttendanceEntry `json:"attendances" binding:"required,min=1,dive"`
}

// UpdateAttendanceEntry corrects an existing record. Nil fields are
// left untouched.
type UpdateAttendanceEntry struct {
	UserID       string  `json:"user_id" binding:"required,uuid"`
	Present      *bool   `json:"present"`
	Observations *string `json:"observations"`
}

// UpdateAttendanceRequest corrects existing records of a session.
type UpdateAttendanceRequest struct {
	Attendances []UpdateAttendanceEntry `json:"attendances" binding:"required,min=1,dive"`
}

// AttendanceResponse is the public shape of one attendance record.
type AttendanceResponse struct {
	ID           string `json:"id"`
	SessionID    string `json:"session_id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name,omitempty"`
	Present      bool   `json:"present"`
	Observations string `json:"observations,omitempty"`
	RecordedBy   string `json:"recorded_by"`
	RecordedAt   string `json:"recorded_at"`
}

// AttendanceStats aggregates a set of attendance records. Rate is
// present/total*100 rounded to 2 decimals, 0 when total is 0.
type AttendanceStats struct {
	Total          int     `json:"total"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// SessionAttendanceResponse is the result of taking or reading a
// session's attendance.
type SessionAttendanceResponse struct {
	SessionID   string               `json:"session_id"`
	Stats       AttendanceStats      `json:"stats"`
	Attendances []AttendanceResponse `json:"attendances"`
}
