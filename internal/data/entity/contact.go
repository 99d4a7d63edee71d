package entity

import "github.com/google/uuid"

type ContactStatus string

const (
	ContactStatusUnread  ContactStatus = "unread"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

type Contact struct {
	Base
	UserID  *uuid.UUID    `db:"user_id"`
	Name    string        `db:"name"`
	Email   string        `db:"email"`
	Phone   *string       `db:"phone"`
	Subject string        `db:"subject"`
	Message string        `db:"message"`
	Status  ContactStatus `db:"status"`
}
