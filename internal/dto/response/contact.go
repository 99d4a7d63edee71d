package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type ContactResponse struct {
	ID        string               `json:"id"`
	UserID    *string              `json:"user_id,omitempty"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     *string              `json:"phone,omitempty"`
	Subject   string               `json:"subject"`
	Message   string               `json:"message"`
	Status    entity.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func ContactToResponse(contact *entity.Contact) ContactResponse {
	resp := ContactResponse{
		ID:        contact.ID.String(),
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Subject:   contact.Subject,
		Message:   contact.Message,
		Status:    contact.Status,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
	if contact.UserID != nil {
		userID := contact.UserID.String()
		resp.UserID = &userID
	}
	return resp
}

func ContactsToResponse(contacts []*entity.Contact) []ContactResponse {
	return mapSlice(contacts, ContactToResponse)
}
