package model

// ThematicArea classifies workshops (physiotherapy, memory, crafts...).
// Reference data: read-only lookups here.
type ThematicArea struct {
	ThematicAreaID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"thematic_area_id"`
	Name           string `gorm:"type:varchar(100);not null"                     json:"name"`
	Description    string `gorm:"type:text"                                      json:"description,omitempty"`
	BaseModel
}

func (ThematicArea) TableName() string { return "thematic_areas" }
