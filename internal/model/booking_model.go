package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking rows carry the frozen property snapshot as JSONB so that later
// property edits never leak into an existing booking record.
//
// The overlap invariant (one active booking per property per date range) is
// additionally enforced by an exclusion constraint installed by cmd/migrate.
type Booking struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PropertyId uuid.UUID `gorm:"type:uuid;not null;index"`
	GuestId    uuid.UUID `gorm:"type:uuid;not null;index"`

	CheckInDate  time.Time `gorm:"not null;index"`
	CheckOutDate time.Time `gorm:"not null"`
	GuestCount   int       `gorm:"not null;default:1"`

	LeadHunterName  string `gorm:"type:varchar(255)"`
	LeadHunterPhone string `gorm:"type:varchar(50)"`
	LeadHunterEmail string `gorm:"type:varchar(255)"`

	PackageId       string `gorm:"type:varchar(100);not null"`
	PackageName     string `gorm:"type:varchar(255);not null"`
	PackageType     string `gorm:"type:varchar(100)"`
	PackageDuration int    `gorm:"default:1"`

	PackagePrice float64 `gorm:"type:decimal(10,2);not null"`
	ServiceFee   float64 `gorm:"type:decimal(10,2);not null"`
	Taxes        float64 `gorm:"type:decimal(10,2);not null"`
	TotalPrice   float64 `gorm:"type:decimal(10,2);not null"`

	AccommodationIncluded bool   `gorm:"default:false"`
	AccommodationType     string `gorm:"type:varchar(100)"`
	AccommodationName     string `gorm:"type:varchar(255)"`

	SpecialRequests string `gorm:"type:text"`
	BookingNotes    string `gorm:"type:text"`
	BookingSource   string `gorm:"type:varchar(50);default:'web'"`
	ReferralCode    string `gorm:"type:varchar(100)"`

	PropertySnapshot datatypes.JSON `gorm:"type:jsonb"`

	BookingDeadline          time.Time `gorm:"not null"`
	ProviderResponseDeadline *time.Time

	Status             string `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus      string `gorm:"type:varchar(30);not null;default:'pending'"`
	CancellationReason string `gorm:"type:text"`

	ConfirmedAt *time.Time
	CancelledAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Payments []Payment `gorm:"foreignKey:BookingId"`
}

func (Booking) TableName() string {
	return "bookings"
}
