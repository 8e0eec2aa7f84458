// FILE: pkg/gateway/midtrans_test.go
package gateway

import (
	"crypto/sha512"
	"fmt"
	"testing"
)

func sign(serverKey, orderID, statusCode, grossAmount string) string {
	return fmt.Sprintf("%x", sha512.Sum512([]byte(orderID+statusCode+grossAmount+serverKey)))
}

func TestVerifySignature(t *testing.T) {
	const serverKey = "SB-Mid-server-abc123"

	tests := []struct {
		name        string
		orderID     string
		statusCode  string
		grossAmount string
		signature   string
		want        bool
	}{
		{
			name:        "valid signature",
			orderID:     "order-1",
			statusCode:  "200",
			grossAmount: "237.60",
			signature:   sign(serverKey, "order-1", "200", "237.60"),
			want:        true,
		},
		{
			name:        "wrong amount",
			orderID:     "order-1",
			statusCode:  "200",
			grossAmount: "237.60",
			signature:   sign(serverKey, "order-1", "200", "999.00"),
			want:        false,
		},
		{
			name:        "wrong order",
			orderID:     "order-1",
			statusCode:  "200",
			grossAmount: "237.60",
			signature:   sign(serverKey, "order-2", "200", "237.60"),
			want:        false,
		},
		{
			name:        "empty signature",
			orderID:     "order-1",
			statusCode:  "200",
			grossAmount: "237.60",
			signature:   "",
			want:        false,
		},
		{
			name:        "signed with another server key",
			orderID:     "order-1",
			statusCode:  "200",
			grossAmount: "237.60",
			signature:   sign("some-other-key", "order-1", "200", "237.60"),
			want:        false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := VerifySignature(serverKey, tc.orderID, tc.statusCode, tc.grossAmount, tc.signature)
			if got != tc.want {
				t.Errorf("VerifySignature() = %v, want %v", got, tc.want)
			}
		})
	}
}
