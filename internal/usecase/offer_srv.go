package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OfferService interface {
	// GetOffers lists offers; availableOnly keeps active, unexpired ones.
	GetOffers(ctx context.Context, req *request.PaginatedRequest, availableOnly bool) (*response.PaginatedResponse[response.OfferResponse], error)
	GetOffer(ctx context.Context, idOrSlug string, availableOnly bool) (*response.OfferResponse, error)
	CreateOffer(ctx context.Context, req *request.OfferRequest) (*response.OfferResponse, error)
	UpdateOffer(ctx context.Context, offerID string, req *request.OfferUpdateRequest) (*response.OfferResponse, error)
	DeleteOffer(ctx context.Context, offerID string) error
}

type offerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOfferService(repo *repository.Repository, log *zap.Logger) OfferService {
	return &offerService{
		repo: repo,
		log:  log.With(zap.String("service", "offer")),
	}
}

func (s *offerService) GetOffers(ctx context.Context, req *request.PaginatedRequest, availableOnly bool) (*response.PaginatedResponse[response.OfferResponse], error) {
	offers, err := s.repo.Offer.FindAll(ctx, availableOnly, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get offers: %w", err)
	}

	total, err := s.repo.Offer.CountAll(ctx, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("count offers: %w", err)
	}

	return response.NewPaginatedResponse(response.OffersToResponse(offers), req.Page, req.Limit(), total), nil
}

func (s *offerService) GetOffer(ctx context.Context, idOrSlug string, availableOnly bool) (*response.OfferResponse, error) {
	var (
		offer *entity.Offer
		err   error
	)
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		offer, err = s.repo.Offer.FindByID(ctx, id)
	} else {
		offer, err = s.repo.Offer.FindBySlug(ctx, strings.ToLower(idOrSlug))
	}
	if err != nil {
		return nil, fmt.Errorf("get offer %s: %w", idOrSlug, err)
	}
	if offer == nil || (availableOnly && !offer.Available(time.Now())) {
		return nil, utils.NotFound("offer")
	}

	resp := response.OfferToResponse(offer)
	return &resp, nil
}

func (s *offerService) slugFor(ctx context.Context, title string, excludeID *uuid.UUID) (string, error) {
	return uniqueSlug(ctx, title, "offer", func(ctx context.Context, slug string) (bool, error) {
		return s.repo.Offer.SlugExists(ctx, slug, excludeID)
	})
}

func (s *offerService) CreateOffer(ctx context.Context, req *request.OfferRequest) (*response.OfferResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	slug, err := s.slugFor(ctx, req.Title, nil)
	if err != nil {
		return nil, fmt.Errorf("generate slug: %w", err)
	}

	offer := &entity.Offer{
		Base:               entity.NewBase(),
		Title:              strings.TrimSpace(req.Title),
		Slug:               slug,
		Description:        req.Description,
		ImageURL:           req.ImageURL,
		DiscountCode:       req.DiscountCode,
		DiscountPercentage: req.DiscountPercentage,
		ExpiresAt:          req.ExpiresAt,
		IsActive:           true,
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	if err := s.repo.Offer.Create(ctx, offer); err != nil {
		return nil, err
	}

	s.log.Info("Offer created", zap.String("offer_id", offer.ID.String()), zap.String("slug", offer.Slug))

	resp := response.OfferToResponse(offer)
	return &resp, nil
}

func (s *offerService) UpdateOffer(ctx context.Context, offerID string, req *request.OfferUpdateRequest) (*response.OfferResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(offerID, "offer")
	if err != nil {
		return nil, err
	}

	offer, err := s.repo.Offer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get offer %s: %w", id, err)
	}
	if offer == nil {
		return nil, utils.NotFound("offer")
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != offer.Title {
		offer.Title = strings.TrimSpace(*req.Title)
		if offer.Slug, err = s.slugFor(ctx, offer.Title, &offer.ID); err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}
	}
	if req.Description != nil {
		offer.Description = req.Description
	}
	if req.ImageURL != nil {
		offer.ImageURL = req.ImageURL
	}
	if req.DiscountCode != nil {
		offer.DiscountCode = req.DiscountCode
	}
	if req.DiscountPercentage != nil {
		offer.DiscountPercentage = req.DiscountPercentage
	}
	if req.ExpiresAt != nil {
		offer.ExpiresAt = req.ExpiresAt
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	offer.Touch()
	if err := s.repo.Offer.Update(ctx, offer); err != nil {
		return nil, err
	}

	resp := response.OfferToResponse(offer)
	return &resp, nil
}

func (s *offerService) DeleteOffer(ctx context.Context, offerID string) error {
	id, err := parseID(offerID, "offer")
	if err != nil {
		return err
	}
	return s.repo.Offer.Delete(ctx, id)
}
