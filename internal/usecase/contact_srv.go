package usecase

import (
	"context"
	"fmt"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContactService interface {
	// SubmitContact stores the inquiry and relays a contact.submitted event.
	SubmitContact(ctx context.Context, userID *uuid.UUID, req *request.ContactRequest) (*response.ContactResponse, error)

	// Admin
	GetContacts(ctx context.Context, req *request.PaginatedRequest, status *string) (*response.PaginatedResponse[response.ContactResponse], error)
	GetContact(ctx context.Context, contactID string) (*response.ContactResponse, error)
	UpdateContactStatus(ctx context.Context, contactID string, req *request.ContactStatusRequest) (*response.ContactResponse, error)
	DeleteContact(ctx context.Context, contactID string) error
}

type contactService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewContactService(repo *repository.Repository, notifier Notifier, log *zap.Logger) ContactService {
	return &contactService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "contact")),
	}
}

func (s *contactService) SubmitContact(ctx context.Context, userID *uuid.UUID, req *request.ContactRequest) (*response.ContactResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	contact := &entity.Contact{
		Base:    entity.NewBase(),
		UserID:  userID,
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
		Status:  entity.ContactStatusUnread,
	}

	if err := s.repo.Contact.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.log.Info("Contact submitted", zap.String("contact_id", contact.ID.String()))
	s.notifier.ContactSubmitted(ctx, contact)

	resp := response.ContactToResponse(contact)
	return &resp, nil
}

func (s *contactService) GetContacts(ctx context.Context, req *request.PaginatedRequest, status *string) (*response.PaginatedResponse[response.ContactResponse], error) {
	var filter *entity.ContactStatus
	if status != nil {
		if err := utils.Validate(&request.ContactStatusRequest{Status: *status}); err != nil {
			return nil, err
		}
		st := entity.ContactStatus(*status)
		filter = &st
	}

	contacts, err := s.repo.Contact.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get contacts: %w", err)
	}

	total, err := s.repo.Contact.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}

	return response.NewPaginatedResponse(response.ContactsToResponse(contacts), req.Page, req.Limit(), total), nil
}

func (s *contactService) GetContact(ctx context.Context, contactID string) (*response.ContactResponse, error) {
	id, err := parseID(contactID, "contact")
	if err != nil {
		return nil, err
	}

	contact, err := s.repo.Contact.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact %s: %w", id, err)
	}
	if contact == nil {
		return nil, utils.NotFound("contact")
	}

	resp := response.ContactToResponse(contact)
	return &resp, nil
}

func (s *contactService) UpdateContactStatus(ctx context.Context, contactID string, req *request.ContactStatusRequest) (*response.ContactResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(contactID, "contact")
	if err != nil {
		return nil, err
	}

	if err := s.repo.Contact.UpdateStatus(ctx, id, entity.ContactStatus(req.Status)); err != nil {
		return nil, err
	}

	return s.GetContact(ctx, contactID)
}

func (s *contactService) DeleteContact(ctx context.Context, contactID string) error {
	id, err := parseID(contactID, "contact")
	if err != nil {
		return err
	}
	return s.repo.Contact.Delete(ctx, id)
}
