package users

import "time"

// Role define el rol del usuario dentro de la plataforma.
// @Enum user, ngo, admin
type Role string

const (
	RoleUser  Role = "user"
	RoleNGO   Role = "ngo"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleNGO, RoleAdmin:
		return true
	default:
		return false
	}
}

// User es una cuenta registrada (reportante, ONG o admin).
// Password siempre es el hash, nunca el texto plano.
type User struct {
	ID       int
	Username string
	Password string
	Email    string
	Name     string
	Role     Role

	Phone   *string
	Address *string

	CreatedAt time.Time
}

// Insert son los campos que provee quien crea el usuario.
// ID y CreatedAt los asigna el storage.
type Insert struct {
	Username string
	Password string
	Email    string
	Name     string
	Role     Role
	Phone    *string
	Address  *string
}

// Patch: nil = no tocar. ID, Username y CreatedAt no son editables.
type Patch struct {
	Password *string
	Email    *string
	Name     *string
	Role     *Role
	Phone    *string
	Address  *string
}

// Apply mezcla los campos presentes sobre u.
func (p Patch) Apply(u *User) {
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Phone != nil {
		v := *p.Phone
		u.Phone = &v
	}
	if p.Address != nil {
		v := *p.Address
		u.Address = &v
	}
}
