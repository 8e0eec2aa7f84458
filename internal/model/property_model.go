package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property stores the package and accommodation catalogs as JSONB. The
// records are validated at the service boundary, not by the schema.
type Property struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProviderId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name                string         `gorm:"type:varchar(255);not null"`
	Description         string         `gorm:"type:text"`
	Address             string         `gorm:"type:varchar(255);not null"`
	City                string         `gorm:"type:varchar(255)"`
	State               string         `gorm:"type:varchar(255)"`
	ZipCode             string         `gorm:"type:varchar(20)"`
	Latitude            float64        `gorm:"type:decimal(9,6)"`
	Longitude           float64        `gorm:"type:decimal(9,6)"`
	TotalAcres          float64        `gorm:"type:decimal(12,2)"`
	Rules               string         `gorm:"type:text"`
	SafetyInfo          string         `gorm:"type:text"`
	LicenseRequirements string         `gorm:"type:text"`
	SeasonInfo          string         `gorm:"type:text"`
	HuntingPackages     datatypes.JSON `gorm:"type:jsonb"`
	Accommodations      datatypes.JSON `gorm:"type:jsonb"`
	ImageURLs           datatypes.JSON `gorm:"type:jsonb"`
	Status              string         `gorm:"type:varchar(20);not null;default:'draft';index"`
	IsListed            bool           `gorm:"default:false"`
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (Property) TableName() string {
	return "properties"
}
