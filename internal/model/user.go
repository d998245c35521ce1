package model

// UserRole is the role assigned by the identity service.
type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleCoordinator  UserRole = "coordinator"
	RoleProfessional UserRole = "professional"
	RoleTechnician   UserRole = "technician"
	RoleClient       UserRole = "client"
)

// SystemUser mirrors the identity service's user record. The identity
// service owns the full lifecycle; this backend only reads it to
// resolve roles and enrollment targets.
type SystemUser struct {
	UserID   string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name     string   `gorm:"type:varchar(100);not null"                     json:"name"`
	LastName string   `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Email    string   `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'client'"     json:"role"`
	CenterID *string  `gorm:"type:uuid"                                      json:"center_id,omitempty"`
	BaseModel

	Center *Center `gorm:"foreignKey:CenterID;references:CenterID" json:"center,omitempty"`
}

func (SystemUser) TableName() string { return "system_users" }

// FullName joins first and last name for display and log output.
func (u *SystemUser) FullName() string { return u.Name + " " + u.LastName }
