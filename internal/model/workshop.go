package model

import (
	"strings"
	"time"
)

// WorkshopStatus lifecycle of a workshop.
type WorkshopStatus string

const (
	WorkshopPending  WorkshopStatus = "pending"
	WorkshopActive   WorkshopStatus = "active"
	WorkshopPaused   WorkshopStatus = "paused"
	WorkshopFinished WorkshopStatus = "finished"
)

// Valid reports whether s is one of the closed workshop statuses.
func (s WorkshopStatus) Valid() bool {
	switch s {
	case WorkshopPending, WorkshopActive, WorkshopPaused, WorkshopFinished:
		return true
	}
	return false
}

// WeekdayCodes are the accepted weekday letters (Monday..Sunday).
var WeekdayCodes = []string{"L", "M", "X", "J", "V", "S", "D"}

// ValidWeekDays reports whether every comma-separated code in days is
// one of the seven weekday letters.
func ValidWeekDays(days string) bool {
	if days == "" {
		return false
	}
	for _, d := range strings.Split(days, ",") {
		d = strings.TrimSpace(d)
		ok := false
		for _, c := range WeekdayCodes {
			if d == c {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Workshop is a recurring class program at a center. CurrentCapacity is
// owned by the enrollment engine: nothing else may write it.
type Workshop struct {
	WorkshopID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"workshop_id"`
	Name           string `gorm:"type:varchar(200);not null"                     json:"name"`
	Description    string `gorm:"type:text"                                      json:"description,omitempty"`
	ThematicAreaID string `gorm:"type:uuid;not null"                             json:"thematic_area_id"`
	CenterID       string `gorm:"type:uuid;not null"                             json:"center_id"`
	ProfessionalID string `gorm:"type:uuid;not null"                             json:"professional_id"`

	MaxCapacity     int `gorm:"not null;default:30"  json:"max_capacity"`
	CurrentCapacity int `gorm:"not null;default:0"   json:"current_capacity"`

	StartTime string     `gorm:"type:time;not null"        json:"start_time"` // "09:00"
	EndTime   string     `gorm:"type:time;not null"        json:"end_time"`
	WeekDays  string     `gorm:"type:varchar(20);not null" json:"week_days"` // "L,M,X,J,V,S,D" subset
	StartDate time.Time  `gorm:"type:date;not null"        json:"start_date"`
	EndDate   *time.Time `gorm:"type:date"                 json:"end_date,omitempty"`

	Location        string         `gorm:"type:varchar(200)"                           json:"location,omitempty"`
	SessionDuration *int           `json:"session_duration,omitempty"` // minutes
	Status          WorkshopStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Observations    string         `gorm:"type:text"                                   json:"observations,omitempty"`
	BaseModel

	ThematicArea *ThematicArea `gorm:"foreignKey:ThematicAreaID;references:ThematicAreaID" json:"thematic_area,omitempty"`
	Center       *Center       `gorm:"foreignKey:CenterID;references:CenterID"             json:"center,omitempty"`
	Professional *SystemUser   `gorm:"foreignKey:ProfessionalID;references:UserID"         json:"professional,omitempty"`
}

func (Workshop) TableName() string { return "workshops" }

// AvailableSpots is the number of active seats still open.
func (w *Workshop) AvailableSpots() int { return w.MaxCapacity - w.CurrentCapacity }
