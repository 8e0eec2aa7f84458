// FILE: internal/service/pricing_service.go
package service

import (
	"fmt"

	"huntstay-be/internal/dto"
	"huntstay-be/internal/entity"
	"huntstay-be/internal/pkg/apperror"

	"github.com/shopspring/decimal"
)

// PriceTolerance is the maximum absolute difference allowed between the
// client-submitted total and the server-computed total.
const PriceTolerance = 0.01

type IPricingService interface {
	Quote(pkg *entity.HuntingPackage, guestCount int) dto.PricingBreakdown
	Validate(clientTotal float64, quote dto.PricingBreakdown) error
}

// pricingService computes all money amounts with decimal arithmetic and
// rounds each component to 2 decimal places independently. The total is the
// sum of the rounded components, never a re-rounded raw sum.
type pricingService struct {
	serviceFeeRate decimal.Decimal
	taxRate        decimal.Decimal
}

func NewPricingService(serviceFeeRate, taxRate float64) IPricingService {
	return &pricingService{
		serviceFeeRate: decimal.NewFromFloat(serviceFeeRate),
		taxRate:        decimal.NewFromFloat(taxRate),
	}
}

func (s *pricingService) Quote(pkg *entity.HuntingPackage, guestCount int) dto.PricingBreakdown {
	packagePrice := decimal.NewFromFloat(pkg.Price).
		Mul(decimal.NewFromInt(int64(guestCount))).
		Round(2)

	serviceFee := packagePrice.Mul(s.serviceFeeRate).Round(2)
	// Taxes apply to the package price alone; the service fee is not a
	// taxable part of the stay.
	taxes := packagePrice.Mul(s.taxRate).Round(2)
	total := packagePrice.Add(serviceFee).Add(taxes)

	return dto.PricingBreakdown{
		PackagePrice: packagePrice.InexactFloat64(),
		ServiceFee:   serviceFee.InexactFloat64(),
		Taxes:        taxes.InexactFloat64(),
		TotalPrice:   total.InexactFloat64(),
	}
}

func (s *pricingService) Validate(clientTotal float64, quote dto.PricingBreakdown) error {
	diff := decimal.NewFromFloat(clientTotal).
		Sub(decimal.NewFromFloat(quote.TotalPrice)).
		Abs()

	if diff.GreaterThan(decimal.NewFromFloat(PriceTolerance)) {
		return apperror.Validation("PRICE_MISMATCH",
			fmt.Sprintf("submitted total %.2f does not match computed total %.2f", clientTotal, quote.TotalPrice))
	}
	return nil
}

// MinorUnits converts a major-unit amount to integer minor units (cents)
// for the processor wire format.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
