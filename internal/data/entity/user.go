package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
