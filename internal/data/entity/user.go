package entity

import "time"

type User struct {
	Base
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	PasswordHash    string     `db:"password"`
	IsAdmin         bool       `db:"is_admin"`
	IsActive        bool       `db:"is_active"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
}

func (u *User) EmailVerified() bool {
	return u.EmailVerifiedAt != nil
}
