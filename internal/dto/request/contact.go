package request

type ContactRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Subject string  `json:"subject" validate:"required,min=1,max=255"`
	Message string  `json:"message" validate:"required,min=1,max=5000"`
}

type ContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read replied"`
}
