package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants (seeded by migration in this order)
const (
	RoleIDAdmin        = 1
	RoleIDDoctor       = 2
	RoleIDReceptionist = 3
	RoleIDPatient      = 4
)

// Role name constants
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
	RolePatient      = "patient"
)

// RoleIDFromName maps a role name to its seeded ID, 0 if unknown.
func RoleIDFromName(name string) int {
	switch name {
	case RoleAdmin:
		return RoleIDAdmin
	case RoleDoctor:
		return RoleIDDoctor
	case RoleReceptionist:
		return RoleIDReceptionist
	case RolePatient:
		return RoleIDPatient
	}
	return 0
}

// RoleNameFromID maps a seeded role ID back to its name.
func RoleNameFromID(id int) string {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDDoctor:
		return RoleDoctor
	case RoleIDReceptionist:
		return RoleReceptionist
	case RoleIDPatient:
		return RolePatient
	}
	return ""
}

// IsStaff reports whether the role may manage patient records.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleDoctor || role == RoleReceptionist
}
