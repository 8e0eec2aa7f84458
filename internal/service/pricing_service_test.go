// FILE: internal/service/pricing_service_test.go
package service

import (
	"testing"

	"huntstay-be/internal/entity"
	"huntstay-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingQuote(t *testing.T) {
	svc := NewPricingService(0.10, 0.08)

	tests := []struct {
		name      string
		price     float64
		guests    int
		wantPkg   float64
		wantFee   float64
		wantTaxes float64
		wantTotal float64
	}{
		{
			name:      "whole dollar base",
			price:     100,
			guests:    2,
			wantPkg:   200.00,
			wantFee:   20.00,
			wantTaxes: 16.00,
			wantTotal: 236.00,
		},
		{
			name:      "single guest",
			price:     925,
			guests:    1,
			wantPkg:   925.00,
			wantFee:   92.50,
			wantTaxes: 74.00,
			wantTotal: 1091.50,
		},
		{
			name:   "fee needs rounding",
			price:  33.33,
			guests: 3,
			// 99.99 * 0.10 = 9.999 -> 10.00; 99.99 * 0.08 = 7.9992 -> 8.00
			wantPkg:   99.99,
			wantFee:   10.00,
			wantTaxes: 8.00,
			wantTotal: 117.99,
		},
		{
			name:      "fractional cents in base price",
			price:     10.005,
			guests:    2,
			wantPkg:   20.01,
			wantFee:   2.00,
			wantTaxes: 1.60,
			wantTotal: 23.61,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			quote := svc.Quote(&entity.HuntingPackage{Price: tc.price}, tc.guests)
			assert.Equal(t, tc.wantPkg, quote.PackagePrice)
			assert.Equal(t, tc.wantFee, quote.ServiceFee)
			assert.Equal(t, tc.wantTaxes, quote.Taxes)
			assert.Equal(t, tc.wantTotal, quote.TotalPrice)
		})
	}
}

// The total must be the sum of the already-rounded components, not a
// re-rounding of the raw sum.
func TestPricingTotalIsSumOfRoundedComponents(t *testing.T) {
	svc := NewPricingService(0.10, 0.08)

	quote := svc.Quote(&entity.HuntingPackage{Price: 33.33}, 3)
	assert.InDelta(t, quote.PackagePrice+quote.ServiceFee+quote.Taxes, quote.TotalPrice, 1e-9)
}

func TestPricingValidateTolerance(t *testing.T) {
	svc := NewPricingService(0.10, 0.08)
	quote := svc.Quote(&entity.HuntingPackage{Price: 100}, 2) // 236.00

	assert.NoError(t, svc.Validate(236.00, quote))
	assert.NoError(t, svc.Validate(236.01, quote), "within tolerance high")
	assert.NoError(t, svc.Validate(235.99, quote), "within tolerance low")

	err := svc.Validate(236.02, quote)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, "PRICE_MISMATCH"))
	assert.Equal(t, apperror.KindValidation, apperror.From(err).Kind)

	err = svc.Validate(235.98, quote)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, "PRICE_MISMATCH"))
}

func TestPricingZeroRates(t *testing.T) {
	svc := NewPricingService(0, 0)

	quote := svc.Quote(&entity.HuntingPackage{Price: 49.99}, 2)
	assert.Equal(t, 99.98, quote.PackagePrice)
	assert.Equal(t, 0.00, quote.ServiceFee)
	assert.Equal(t, 0.00, quote.Taxes)
	assert.Equal(t, 99.98, quote.TotalPrice)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(23600), MinorUnits(236.00))
	assert.Equal(t, int64(100), MinorUnits(1))
	assert.Equal(t, int64(0), MinorUnits(0))
	assert.Equal(t, int64(1099), MinorUnits(10.99))
	// 19.995 carries a half cent; round half away from zero.
	assert.Equal(t, int64(2000), MinorUnits(19.995))
}
