package model

// Center is a physical service center ("CSS") a workshop belongs to.
// Reference data: read-only lookups here.
type Center struct {
	CenterID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"center_id"`
	Name     string `gorm:"type:varchar(200);not null"                     json:"name"`
	Address  string `gorm:"type:varchar(255)"                              json:"address,omitempty"`
	BaseModel
}

func (Center) TableName() string { return "centers" }
