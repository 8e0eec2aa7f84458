// FILE: internal/dto/property_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type HuntingPackageDTO struct {
	Id                  string  `json:"id,omitempty"`
	Name                string  `json:"name" validate:"required"`
	Price               float64 `json:"price" validate:"required,gt=0"`
	MaxHunters          int     `json:"max_hunters" validate:"required,gt=0"`
	Duration            int     `json:"duration" validate:"required,gt=0"`
	HuntingType         string  `json:"hunting_type" validate:"required"`
	AccommodationStatus string  `json:"accommodation_status" validate:"omitempty,oneof=included not_included optional"`
}

type AccommodationDTO struct {
	Type string `json:"type" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type PropertyCreateRequest struct {
	Name                string              `json:"name" validate:"required,min=3"`
	Description         string              `json:"description"`
	Address             string              `json:"address" validate:"required"`
	City                string              `json:"city" validate:"required"`
	State               string              `json:"state" validate:"required"`
	ZipCode             string              `json:"zip_code" validate:"required"`
	Latitude            float64             `json:"latitude" validate:"min=-90,max=90"`
	Longitude           float64             `json:"longitude" validate:"min=-180,max=180"`
	TotalAcres          float64             `json:"total_acres" validate:"gte=0"`
	Rules               string              `json:"rules"`
	SafetyInfo          string              `json:"safety_info"`
	LicenseRequirements string              `json:"license_requirements"`
	SeasonInfo          string              `json:"season_info"`
	HuntingPackages     []HuntingPackageDTO `json:"hunting_packages" validate:"dive"`
	Accommodations      []AccommodationDTO  `json:"accommodations" validate:"dive"`
	ImageURLs           []string            `json:"image_urls"`
}

type PropertyUpdateRequest struct {
	Name                *string             `json:"name,omitempty" validate:"omitempty,min=3"`
	Description         *string             `json:"description,omitempty"`
	Address             *string             `json:"address,omitempty"`
	City                *string             `json:"city,omitempty"`
	State               *string             `json:"state,omitempty"`
	ZipCode             *string             `json:"zip_code,omitempty"`
	Latitude            *float64            `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude           *float64            `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	TotalAcres          *float64            `json:"total_acres,omitempty" validate:"omitempty,gte=0"`
	Rules               *string             `json:"rules,omitempty"`
	SafetyInfo          *string             `json:"safety_info,omitempty"`
	LicenseRequirements *string             `json:"license_requirements,omitempty"`
	SeasonInfo          *string             `json:"season_info,omitempty"`
	HuntingPackages     []HuntingPackageDTO `json:"hunting_packages,omitempty" validate:"omitempty,dive"`
	Accommodations      []AccommodationDTO  `json:"accommodations,omitempty" validate:"omitempty,dive"`
	ImageURLs           []string            `json:"image_urls,omitempty"`
}

type PropertyRejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type PropertyResponse struct {
	Id                  uuid.UUID           `json:"id"`
	ProviderId          uuid.UUID           `json:"provider_id"`
	Name                string              `json:"name"`
	Description         string              `json:"description,omitempty"`
	Address             string              `json:"address"`
	City                string              `json:"city"`
	State               string              `json:"state"`
	ZipCode             string              `json:"zip_code"`
	Latitude            float64             `json:"latitude"`
	Longitude           float64             `json:"longitude"`
	TotalAcres          float64             `json:"total_acres"`
	Rules               string              `json:"rules,omitempty"`
	SafetyInfo          string              `json:"safety_info,omitempty"`
	LicenseRequirements string              `json:"license_requirements,omitempty"`
	SeasonInfo          string              `json:"season_info,omitempty"`
	HuntingPackages     []HuntingPackageDTO `json:"hunting_packages"`
	Accommodations      []AccommodationDTO  `json:"accommodations"`
	ImageURLs           []string            `json:"image_urls"`
	Status              string              `json:"status"`
	IsListed            bool                `json:"is_listed"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

type PropertyListQuery struct {
	City   string `query:"city"`
	State  string `query:"state"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}
