package mapper

import (
	"encoding/json"

	"huntstay-be/internal/entity"
	"huntstay-be/internal/model"

	"gorm.io/datatypes"
)

type PropertyMapper struct{}

func NewPropertyMapper() *PropertyMapper {
	return &PropertyMapper{}
}

func (m *PropertyMapper) ToEntity(p *model.Property) *entity.Property {
	if p == nil {
		return nil
	}

	var packages []entity.HuntingPackage
	if len(p.HuntingPackages) > 0 {
		_ = json.Unmarshal(p.HuntingPackages, &packages)
	}
	var accommodations []entity.Accommodation
	if len(p.Accommodations) > 0 {
		_ = json.Unmarshal(p.Accommodations, &accommodations)
	}
	var imageURLs []string
	if len(p.ImageURLs) > 0 {
		_ = json.Unmarshal(p.ImageURLs, &imageURLs)
	}

	return &entity.Property{
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
		ImageURLs:           imageURLs,
		Status:              entity.PropertyStatus(p.Status),
		IsListed:            p.IsListed,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func (m *PropertyMapper) ToModel(p *entity.Property) *model.Property {
	if p == nil {
		return nil
	}

	packages, _ := json.Marshal(p.HuntingPackages)
	accommodations, _ := json.Marshal(p.Accommodations)
	imageURLs, _ := json.Marshal(p.ImageURLs)

	return &model.Property{
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
		HuntingPackages:     datatypes.JSON(packages),
		Accommodations:      datatypes.JSON(accommodations),
		ImageURLs:           datatypes.JSON(imageURLs),
		Status:              string(p.Status),
		IsListed:            p.IsListed,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
