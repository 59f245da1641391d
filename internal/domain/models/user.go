package models

import (
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
)

// User is a registered participant. The role tag replaces a class hierarchy:
// every constructor pins exactly one role.
type User struct {
	Name       string `json:"name"`
	Class      string `json:"class"`
	Identifier string `json:"identifier"` // email or student number, see config APP_IDENTIFIER
	role       types.UserRole
}

// NewDriver returns a user with the Driver role.
func NewDriver(name, class, identifier string) *User {
	return &User{
		Name:       name,
		Class:      class,
		Identifier: identifier,
		role:       types.DriverRole,
	}
}

func (u *User) Role() types.UserRole {
	return u.role
}

// Profile returns a plain field copy of the user.
func (u *User) Profile() Profile {
	return Profile{
		Name:       u.Name,
		Class:      u.Class,
		Identifier: u.Identifier,
	}
}

// Profile is the editable field snapshot kept in the session under "user".
type Profile struct {
	Name       string `json:"name"`
	Class      string `json:"class"`
	Identifier string `json:"identifier"`
}

// DriverRecord is the serialized form of a registered driver.
type DriverRecord struct {
	Name       string         `json:"name"`
	Class      string         `json:"class"`
	Identifier string         `json:"identifier"`
	Role       types.UserRole `json:"role"`
}

func (u *User) Record() DriverRecord {
	return DriverRecord{
		Name:       u.Name,
		Class:      u.Class,
		Identifier: u.Identifier,
		Role:       u.role,
	}
}
