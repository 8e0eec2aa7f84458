// FILE: internal/service/property_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"huntstay-be/internal/dto"
	"huntstay-be/internal/entity"
	"huntstay-be/internal/pkg/apperror"
	"huntstay-be/internal/pkg/logger"
	"huntstay-be/internal/repository/specification"
	"huntstay-be/internal/repository/unitofwork"
	"huntstay-be/pkg/cache"

	"github.com/google/uuid"
)

type IPropertyService interface {
	Create(ctx context.Context, providerId uuid.UUID, req *dto.PropertyCreateRequest) (*dto.PropertyResponse, error)
	Update(ctx context.Context, actorId uuid.UUID, role string, propertyId uuid.UUID, req *dto.PropertyUpdateRequest) (*dto.PropertyResponse, error)
	Submit(ctx context.Context, providerId uuid.UUID, propertyId uuid.UUID) (*dto.PropertyResponse, error)
	Approve(ctx context.Context, propertyId uuid.UUID) (*dto.PropertyResponse, error)
	Reject(ctx context.Context, propertyId uuid.UUID, reason string) (*dto.PropertyResponse, error)
	SetListed(ctx context.Context, actorId uuid.UUID, role string, propertyId uuid.UUID, listed bool) (*dto.PropertyResponse, error)
	GetByID(ctx context.Context, propertyId uuid.UUID) (*dto.PropertyResponse, error)
	ListPublic(ctx context.Context, query *dto.PropertyListQuery) ([]*dto.PropertyResponse, error)
	ListByProvider(ctx context.Context, providerId uuid.UUID) ([]*dto.PropertyResponse, error)
}

type propertyService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.PropertyCache
	log        logger.ILogger
}

func NewPropertyService(uowFactory unitofwork.RepositoryFactory, propertyCache *cache.PropertyCache, log logger.ILogger) IPropertyService {
	return &propertyService{
		uowFactory: uowFactory,
		cache:      propertyCache,
		log:        log,
	}
}

// validateCatalog enforces the package/accommodation rules the schema-less
// storage cannot: positive price, capacity and duration, unique package ids.
func validateCatalog(packages []entity.HuntingPackage) error {
	seen := make(map[string]bool, len(packages))
	for i := range packages {
		pkg := &packages[i]
		if pkg.Name == "" {
			return apperror.Validation("INVALID_PACKAGE", "package name is required")
		}
		if pkg.Price <= 0 {
			return apperror.Validation("INVALID_PACKAGE", fmt.Sprintf("package %q must have a positive price", pkg.Name))
		}
		if pkg.MaxHunters <= 0 {
			return apperror.Validation("INVALID_PACKAGE", fmt.Sprintf("package %q must allow at least one hunter", pkg.Name))
		}
		if pkg.Duration <= 0 {
			return apperror.Validation("INVALID_PACKAGE", fmt.Sprintf("package %q must have a positive duration", pkg.Name))
		}
		if seen[pkg.Id] {
			return apperror.Validation("INVALID_PACKAGE", fmt.Sprintf("duplicate package id %q", pkg.Id))
		}
		seen[pkg.Id] = true
	}
	return nil
}

func packagesFromDTO(in []dto.HuntingPackageDTO) []entity.HuntingPackage {
	out := make([]entity.HuntingPackage, 0, len(in))
	for _, p := range in {
		id := p.Id
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, entity.HuntingPackage{
			Id:                  id,
			Name:                p.Name,
			Price:               p.Price,
			MaxHunters:          p.MaxHunters,
			Duration:            p.Duration,
			HuntingType:         p.HuntingType,
			AccommodationStatus: p.AccommodationStatus,
		})
	}
	return out
}

func accommodationsFromDTO(in []dto.AccommodationDTO) []entity.Accommodation {
	out := make([]entity.Accommodation, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Accommodation{Type: a.Type, Name: a.Name})
	}
	return out
}

func toPropertyResponse(p *entity.Property) *dto.PropertyResponse {
	packages := make([]dto.HuntingPackageDTO, 0, len(p.HuntingPackages))
	for _, pkg := range p.HuntingPackages {
		packages = append(packages, dto.HuntingPackageDTO{
			Id:                  pkg.Id,
			Name:                pkg.Name,
			Price:               pkg.Price,
			MaxHunters:          pkg.MaxHunters,
			Duration:            pkg.Duration,
			HuntingType:         pkg.HuntingType,
			AccommodationStatus: pkg.AccommodationStatus,
		})
	}
	accommodations := make([]dto.AccommodationDTO, 0, len(p.Accommodations))
	for _, a := range p.Accommodations {
		accommodations = append(accommodations, dto.AccommodationDTO{Type: a.Type, Name: a.Name})
	}

	return &dto.PropertyResponse{
		Id:                  p.Id,
		ProviderId:          p.ProviderId,
		Name:                p.Name,
		Description:         p.Description,
		Address:             p.Address,
		City:                p.City,
		State:               p.State,
		ZipCode:             p.ZipCode,
		Latitude:            p.Latitude,
		Longitude:           p.Longitude,
		TotalAcres:          p.TotalAcres,
		Rules:               p.Rules,
		SafetyInfo:          p.SafetyInfo,
		LicenseRequirements: p.LicenseRequirements,
		SeasonInfo:          p.SeasonInfo,
		HuntingPackages:     packages,
		Accommodations:      accommodations,
		ImageURLs:           p.ImageURLs,
		Status:              string(p.Status),
		IsListed:            p.IsListed,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func (s *propertyService) Create(ctx context.Context, providerId uuid.UUID, req *dto.PropertyCreateRequest) (*dto.PropertyResponse, error) {
	packages := packagesFromDTO(req.HuntingPackages)
	if err := validateCatalog(packages); err != nil {
		return nil, err
	}

	property := &entity.Property{
		Id:                  uuid.New(),
		ProviderId:          providerId,
		Name:                req.Name,
		Description:         req.Description,
		Address:             req.Address,
		City:                req.City,
		State:               req.State,
		ZipCode:             req.ZipCode,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		TotalAcres:          req.TotalAcres,
		Rules:               req.Rules,
		SafetyInfo:          req.SafetyInfo,
		LicenseRequirements: req.LicenseRequirements,
		SeasonInfo:          req.SeasonInfo,
		HuntingPackages:     packages,
		Accommodations:      accommodationsFromDTO(req.Accommodations),
		ImageURLs:           req.ImageURLs,
		Status:              entity.PropertyStatusDraft,
		IsListed:            false,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PropertyRepository().Create(ctx, property); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("property", "property created", map[string]interface{}{
		"property_id": property.Id,
		"provider_id": providerId,
	})

	return toPropertyResponse(property), nil
}

func (s *propertyService) Update(ctx context.Context, actorId uuid.UUID, role string, propertyId uuid.UUID, req *dto.PropertyUpdateRequest) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindByID(ctx, propertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}
	if role != string(entity.RoleAdmin) && property.ProviderId != actorId {
		return nil, apperror.Forbidden("you do not own this property")
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.State != nil {
		property.State = *req.State
	}
	if req.ZipCode != nil {
		property.ZipCode = *req.ZipCode
	}
	if req.Latitude != nil {
		property.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		property.Longitude = *req.Longitude
	}
	if req.TotalAcres != nil {
		property.TotalAcres = *req.TotalAcres
	}
	if req.Rules != nil {
		property.Rules = *req.Rules
	}
	if req.SafetyInfo != nil {
		property.SafetyInfo = *req.SafetyInfo
	}
	if req.LicenseRequirements != nil {
		property.LicenseRequirements = *req.LicenseRequirements
	}
	if req.SeasonInfo != nil {
		property.SeasonInfo = *req.SeasonInfo
	}
	if req.HuntingPackages != nil {
		packages := packagesFromDTO(req.HuntingPackages)
		if err := validateCatalog(packages); err != nil {
			return nil, err
		}
		property.HuntingPackages = packages
	}
	if req.Accommodations != nil {
		property.Accommodations = accommodationsFromDTO(req.Accommodations)
	}
	if req.ImageURLs != nil {
		property.ImageURLs = req.ImageURLs
	}

	// Existing bookings are unaffected: they carry an immutable snapshot.
	property.UpdatedAt = time.Now()

	if err := uow.PropertyRepository().Update(ctx, property); err != nil {
		return nil, apperror.Internal(err)
	}
	s.cache.Invalidate(ctx, propertyId.String())

	return toPropertyResponse(property), nil
}

func (s *propertyService) Submit(ctx context.Context, providerId uuid.UUID, propertyId uuid.UUID) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindByID(ctx, propertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}
	if property.ProviderId != providerId {
		return nil, apperror.Forbidden("you do not own this property")
	}
	if property.Status != entity.PropertyStatusDraft && property.Status != entity.PropertyStatusRejected {
		return nil, apperror.Conflict("INVALID_STATUS", "only draft or rejected properties can be submitted for review")
	}
	if len(property.HuntingPackages) == 0 {
		return nil, apperror.Validation("INVALID_PACKAGE", "at least one hunting package is required before submission")
	}

	property.Status = entity.PropertyStatusPending
	property.UpdatedAt = time.Now()

	if err := uow.PropertyRepository().Update(ctx, property); err != nil {
		return nil, apperror.Internal(err)
	}
	s.cache.Invalidate(ctx, propertyId.String())

	return toPropertyResponse(property), nil
}

func (s *propertyService) Approve(ctx context.Context, propertyId uuid.UUID) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindByID(ctx, propertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}
	if property.Status != entity.PropertyStatusPending {
		return nil, apperror.Conflict("INVALID_STATUS", "only pending properties can be approved")
	}

	property.Status = entity.PropertyStatusApproved
	property.IsListed = true
	property.UpdatedAt = time.Now()

	if err := uow.PropertyRepository().Update(ctx, property); err != nil {
		return nil, apperror.Internal(err)
	}
	s.cache.Invalidate(ctx, propertyId.String())

	s.log.Info("property", "property approved", map[string]interface{}{"property_id": propertyId})
	return toPropertyResponse(property), nil
}

func (s *propertyService) Reject(ctx context.Context, propertyId uuid.UUID, reason string) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindByID(ctx, propertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}
	if property.Status != entity.PropertyStatusPending {
		return nil, apperror.Conflict("INVALID_STATUS", "only pending properties can be rejected")
	}

	property.Status = entity.PropertyStatusRejected
	property.IsListed = false
	property.UpdatedAt = time.Now()

	if err := uow.PropertyRepository().Update(ctx, property); err != nil {
		return nil, apperror.Internal(err)
	}
	s.cache.Invalidate(ctx, propertyId.String())

	s.log.Info("property", "property rejected", map[string]interface{}{
		"property_id": propertyId,
		"reason":      reason,
	})
	return toPropertyResponse(property), nil
}

func (s *propertyService) SetListed(ctx context.Context, actorId uuid.UUID, role string, propertyId uuid.UUID, listed bool) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindByID(ctx, propertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}
	if role != string(entity.RoleAdmin) && property.ProviderId != actorId {
		return nil, apperror.Forbidden("you do not own this property")
	}
	if listed && property.Status != entity.PropertyStatusApproved {
		return nil, apperror.Conflict("INVALID_STATUS", "only approved properties can be listed")
	}

	property.IsListed = listed
	property.UpdatedAt = time.Now()

	if err := uow.PropertyRepository().Update(ctx, property); err != nil {
		return nil, apperror.Internal(err)
	}
	s.cache.Invalidate(ctx, propertyId.String())

	return toPropertyResponse(property), nil
}

func (s *propertyService) GetByID(ctx context.Context, propertyId uuid.UUID) (*dto.PropertyResponse, error) {
	if cached, found := s.cache.Get(ctx, propertyId.String()); found {
		return toPropertyResponse(cached), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	property, err := uow.PropertyRepository().FindByID(ctx, propertyId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if property == nil {
		return nil, apperror.NotFound("PROPERTY_NOT_FOUND", "property not found")
	}

	s.cache.Set(ctx, property)
	return toPropertyResponse(property), nil
}

func (s *propertyService) ListPublic(ctx context.Context, query *dto.PropertyListQuery) ([]*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.Filter("status", string(entity.PropertyStatusApproved)),
		specification.Filter("is_listed", true),
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if query.City != "" {
		specs = append(specs, specification.Filter("city", query.City))
	}
	if query.State != "" {
		specs = append(specs, specification.Filter("state", query.State))
	}
	if query.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: query.Offset})
	}

	properties, err := uow.PropertyRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := make([]*dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		res = append(res, toPropertyResponse(p))
	}
	return res, nil
}

func (s *propertyService) ListByProvider(ctx context.Context, providerId uuid.UUID) ([]*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	properties, err := uow.PropertyRepository().FindAll(ctx,
		specification.Filter("provider_id", providerId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := make([]*dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		res = append(res, toPropertyResponse(p))
	}
	return res, nil
}
