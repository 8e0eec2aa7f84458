// FILE: internal/entity/property_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type PropertyStatus string

const (
	PropertyStatusDraft    PropertyStatus = "draft"
	PropertyStatusPending  PropertyStatus = "pending"
	PropertyStatusApproved PropertyStatus = "approved"
	PropertyStatusRejected PropertyStatus = "rejected"
)

const AccommodationIncluded = "included"

// HuntingPackage is one bookable offering on a property. The catalog is
// stored schema-less (JSONB) and validated at the application boundary,
// so every field here must be checked when the provider writes it.
type HuntingPackage struct {
	Id                  string  `json:"id"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	MaxHunters          int     `json:"max_hunters"`
	Duration            int     `json:"duration"`
	HuntingType         string  `json:"hunting_type"`
	AccommodationStatus string  `json:"accommodation_status"`
}

type Accommodation struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type Property struct {
	Id                  uuid.UUID
	ProviderId          uuid.UUID
	Name                string
	Description         string
	Address             string
	City                string
	State               string
	ZipCode             string
	Latitude            float64
	Longitude           float64
	TotalAcres          float64
	Rules               string
	SafetyInfo          string
	LicenseRequirements string
	SeasonInfo          string
	HuntingPackages     []HuntingPackage
	Accommodations      []Accommodation
	ImageURLs           []string
	Status              PropertyStatus
	IsListed            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// FindPackage resolves a package by id or, failing that, by name.
func (p *Property) FindPackage(packageId, packageName string) *HuntingPackage {
	for i := range p.HuntingPackages {
		pkg := &p.HuntingPackages[i]
		if (packageId != "" && pkg.Id == packageId) || (packageName != "" && pkg.Name == packageName) {
			return pkg
		}
	}
	return nil
}

// Bookable reports whether guests may create bookings against this property.
func (p *Property) Bookable() bool {
	return p.Status == PropertyStatusApproved && p.IsListed
}
