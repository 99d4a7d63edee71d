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

// TenantService manages tenants and their seat types.
type TenantService interface {
	GetTenants(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TenantResponse], error)
	GetTenant(ctx context.Context, tenantID string) (*response.TenantResponse, error)
	CreateTenant(ctx context.Context, req *request.TenantRequest) (*response.TenantResponse, error)
	UpdateTenant(ctx context.Context, tenantID string, req *request.TenantUpdateRequest) (*response.TenantResponse, error)

	GetSeatTypes(ctx context.Context, req *request.PaginatedRequest, tenantID *string) (*response.PaginatedResponse[response.SeatTypeResponse], error)
	GetSeatType(ctx context.Context, seatTypeID string) (*response.SeatTypeResponse, error)
	CreateSeatType(ctx context.Context, req *request.SeatTypeRequest) (*response.SeatTypeResponse, error)
	UpdateSeatType(ctx context.Context, seatTypeID string, req *request.SeatTypeUpdateRequest) (*response.SeatTypeResponse, error)
	DeleteSeatType(ctx context.Context, seatTypeID string) error
}

type tenantService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTenantService(repo *repository.Repository, log *zap.Logger) TenantService {
	return &tenantService{
		repo: repo,
		log:  log.With(zap.String("service", "tenant")),
	}
}

func (s *tenantService) GetTenants(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TenantResponse], error) {
	tenants, err := s.repo.Tenant.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get tenants: %w", err)
	}

	total, err := s.repo.Tenant.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tenants: %w", err)
	}

	return response.NewPaginatedResponse(response.TenantsToResponse(tenants), req.Page, req.Limit(), total), nil
}

func (s *tenantService) findTenant(ctx context.Context, tenantID string) (*entity.Tenant, error) {
	id, err := parseID(tenantID, "tenant")
	if err != nil {
		return nil, err
	}

	tenant, err := s.repo.Tenant.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tenant %s: %w", id, err)
	}
	if tenant == nil {
		return nil, utils.NotFound("tenant")
	}
	return tenant, nil
}

func (s *tenantService) GetTenant(ctx context.Context, tenantID string) (*response.TenantResponse, error) {
	tenant, err := s.findTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := response.TenantToResponse(tenant)
	return &resp, nil
}

func (s *tenantService) CreateTenant(ctx context.Context, req *request.TenantRequest) (*response.TenantResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	tenant := &entity.Tenant{
		Base:               entity.NewBase(),
		Name:               strings.TrimSpace(req.Name),
		Domain:             req.Domain,
		SubscriptionStatus: entity.SubscriptionActive,
		Config:             req.Config,
	}
	if req.SubscriptionStatus != nil {
		tenant.SubscriptionStatus = entity.SubscriptionStatus(*req.SubscriptionStatus)
	}

	if err := s.repo.Tenant.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.log.Info("Tenant created", zap.String("tenant_id", tenant.ID.String()), zap.String("name", tenant.Name))

	resp := response.TenantToResponse(tenant)
	return &resp, nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, tenantID string, req *request.TenantUpdateRequest) (*response.TenantResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	tenant, err := s.findTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = strings.TrimSpace(*req.Name)
	}
	if req.Domain != nil {
		tenant.Domain = req.Domain
	}
	if req.SubscriptionStatus != nil {
		tenant.SubscriptionStatus = entity.SubscriptionStatus(*req.SubscriptionStatus)
	}
	if req.Config != nil {
		tenant.Config = req.Config
	}

	tenant.Touch()
	if err := s.repo.Tenant.Update(ctx, tenant); err != nil {
		return nil, err
	}

	resp := response.TenantToResponse(tenant)
	return &resp, nil
}

func (s *tenantService) GetSeatTypes(ctx context.Context, req *request.PaginatedRequest, tenantID *string) (*response.PaginatedResponse[response.SeatTypeResponse], error) {
	tenant, err := parseOptionalID(tenantID, "tenant_id")
	if err != nil {
		return nil, err
	}

	seatTypes, err := s.repo.SeatType.FindAll(ctx, tenant, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get seat types: %w", err)
	}

	total, err := s.repo.SeatType.CountAll(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("count seat types: %w", err)
	}

	return response.NewPaginatedResponse(response.SeatTypesToResponse(seatTypes), req.Page, req.Limit(), total), nil
}

func (s *tenantService) findSeatType(ctx context.Context, seatTypeID string) (*entity.SeatType, error) {
	id, err := parseID(seatTypeID, "seat type")
	if err != nil {
		return nil, err
	}

	seatType, err := s.repo.SeatType.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seat type %s: %w", id, err)
	}
	if seatType == nil {
		return nil, utils.NotFound("seat type")
	}
	return seatType, nil
}

func (s *tenantService) GetSeatType(ctx context.Context, seatTypeID string) (*response.SeatTypeResponse, error) {
	seatType, err := s.findSeatType(ctx, seatTypeID)
	if err != nil {
		return nil, err
	}

	resp := response.SeatTypeToResponse(seatType)
	return &resp, nil
}

func (s *tenantService) CreateSeatType(ctx context.Context, req *request.SeatTypeRequest) (*response.SeatTypeResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	tenantID, err := parseOptionalID(req.TenantID, "tenant_id")
	if err != nil {
		return nil, err
	}
	if tenantID == nil {
		tenant, err := s.repo.Tenant.FindOrCreateDefault(ctx)
		if err != nil {
			return nil, fmt.Errorf("default tenant: %w", err)
		}
		tenantID = &tenant.ID
	}

	seatType := &entity.SeatType{
		Base:            entity.NewBase(),
		TenantID:        *tenantID,
		Name:            strings.ToLower(strings.TrimSpace(req.Name)),
		PriceMultiplier: req.PriceMultiplier.Round(2),
	}

	if err := s.repo.SeatType.Create(ctx, seatType); err != nil {
		return nil, err
	}

	resp := response.SeatTypeToResponse(seatType)
	return &resp, nil
}

func (s *tenantService) UpdateSeatType(ctx context.Context, seatTypeID string, req *request.SeatTypeUpdateRequest) (*response.SeatTypeResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	seatType, err := s.findSeatType(ctx, seatTypeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		seatType.Name = strings.ToLower(strings.TrimSpace(*req.Name))
	}
	if req.PriceMultiplier != nil {
		seatType.PriceMultiplier = req.PriceMultiplier.Round(2)
	}

	seatType.Touch()
	if err := s.repo.SeatType.Update(ctx, seatType); err != nil {
		return nil, err
	}

	resp := response.SeatTypeToResponse(seatType)
	return &resp, nil
}

func (s *tenantService) DeleteSeatType(ctx context.Context, seatTypeID string) error {
	id, err := uuid.Parse(seatTypeID)
	if err != nil {
		return utils.NotFound("seat type")
	}
	return s.repo.SeatType.Delete(ctx, id)
}
