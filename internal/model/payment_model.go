package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingId     uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderId       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	TransactionId string    `gorm:"type:varchar(100);index"`
	Amount        float64   `gorm:"type:decimal(10,2);not null"`
	Currency      string    `gorm:"type:varchar(3);not null;default:'USD'"`
	Status        string    `gorm:"type:varchar(30);not null;default:'pending';index"`
	PaymentMethod string    `gorm:"type:varchar(50);default:'card'"`
	CardBrand     string    `gorm:"type:varchar(50)"`
	CardLast4     string    `gorm:"type:varchar(4)"`

	CaptureDeadline time.Time `gorm:"not null"`

	AuthorizedAt *time.Time
	CapturedAt   *time.Time
	CancelledAt  *time.Time
	CompletedAt  *time.Time

	FailureReason      string  `gorm:"type:text"`
	CancellationReason string  `gorm:"type:text"`
	RefundId           string  `gorm:"type:varchar(100)"`
	RefundReason       string  `gorm:"type:text"`
	RefundAmount       float64 `gorm:"type:decimal(10,2);default:0"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Payment) TableName() string {
	return "payments"
}
