package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

// Exercises the booking + payment flow end to end against a running server
// seeded with `go run cmd/seed/main.go`.
const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func dataField(body []byte, field string) string {
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	if data, ok := parsed["data"].(map[string]interface{}); ok {
		if v, ok := data[field].(string); ok {
			return v
		}
	}
	return ""
}

func login(email, password string) string {
	resp, body, err := sendRequest("POST", "/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	if err != nil || resp.StatusCode != 200 {
		color.Red("Login failed for %s", email)
		os.Exit(1)
	}
	return dataField(body, "access_token")
}

func main() {
	color.Cyan("🚀 Starting Booking & Payment API Test\n")

	// 1. Register a fresh guest and log everyone in
	color.Yellow("\n[SETUP] 1. Register guest, login guest + outfitter")
	guestEmail := fmt.Sprintf("guest-%d@huntstay.test", os.Getpid())
	resp, body, err := sendRequest("POST", "/auth/register", "", map[string]interface{}{
		"full_name": "Smoke Test Guest",
		"email":     guestEmail,
		"password":  "guest-password",
		"phone":     "+1-555-0100",
		"role":      "user",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	guestToken := login(guestEmail, "guest-password")
	providerToken := login("outfitter@huntstay.test", "outfitter-password")

	// 2. Browse the public catalog
	color.Yellow("\n[GUEST] 2. List public properties")
	resp, body, err = sendRequest("GET", "/properties?city=Kerrville", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var listResp map[string]interface{}
	json.Unmarshal(body, &listResp)
	var propertyID, packageID string
	var packagePrice float64
	if items, ok := listResp["data"].([]interface{}); ok && len(items) > 0 {
		property := items[0].(map[string]interface{})
		propertyID = property["id"].(string)
		if pkgs, ok := property["hunting_packages"].([]interface{}); ok && len(pkgs) > 0 {
			pkg := pkgs[0].(map[string]interface{})
			packageID = pkg["id"].(string)
			packagePrice, _ = pkg["price"].(float64)
		}
	}
	if propertyID == "" || packageID == "" {
		color.Red("No seeded property found; run cmd/seed first")
		os.Exit(1)
	}
	fmt.Printf("Property: %s, Package: %s ($%.2f)\n", propertyID, packageID, packagePrice)

	// 3. Check availability
	color.Yellow("\n[GUEST] 3. Check availability")
	resp, body, err = sendRequest("GET", "/properties/"+propertyID+"/availability?check_in_date=2026-11-10&check_out_date=2026-11-13", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var availResp map[string]interface{}
	json.Unmarshal(body, &availResp)
	prettyPrint(availResp)

	// 4. Create the booking (server quotes a 10% fee plus 8% tax on the
	// package price)
	color.Yellow("\n[GUEST] 4. Create booking")
	pkgTotal := packagePrice * 2
	fee := pkgTotal * 0.10
	taxes := pkgTotal * 0.08
	resp, body, err = sendRequest("POST", "/bookings", guestToken, map[string]interface{}{
		"property_id":        propertyID,
		"check_in_date":      "2026-11-10",
		"check_out_date":     "2026-11-13",
		"guest_count":        2,
		"lead_hunter_name":   "Smoke Test Guest",
		"lead_hunter_phone":  "+1-555-0100",
		"lead_hunter_email":  guestEmail,
		"package_id":         packageID,
		"client_total_price": pkgTotal + fee + taxes,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	bookingID := dataField(body, "id")
	if bookingID == "" {
		var createResp map[string]interface{}
		json.Unmarshal(body, &createResp)
		prettyPrint(createResp)
		color.Red("Booking was not created")
		os.Exit(1)
	}
	fmt.Printf("Booking ID: %s\n", bookingID)

	// 5. Authorize payment (sandbox card token required for a real charge)
	color.Yellow("\n[GUEST] 5. Authorize payment")
	cardToken := os.Getenv("MIDTRANS_CARD_TOKEN")
	if cardToken == "" {
		color.Red("Skipping payment flow: MIDTRANS_CARD_TOKEN not set")
	} else {
		resp, body, err = sendRequest("POST", "/payment/authorize", guestToken, map[string]interface{}{
			"booking_id": bookingID,
			"card_token": cardToken,
		})
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", resp.Status)
		paymentID := dataField(body, "payment_id")
		fmt.Printf("Payment ID: %s\n", paymentID)

		// 5a. Poll the processor for the authorization result
		color.Yellow("\n[GUEST] 5a. Confirm authorization")
		resp, body, err = sendRequest("POST", "/payment/"+paymentID+"/confirm", guestToken, nil)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			var confirmResp map[string]interface{}
			json.Unmarshal(body, &confirmResp)
			prettyPrint(confirmResp)
		}

		// 6. Outfitter accepts: capture confirms the booking
		color.Yellow("\n[OUTFITTER] 6. Capture payment (accept booking)")
		resp, body, err = sendRequest("POST", "/payment/booking/"+bookingID+"/capture", providerToken, nil)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			var captureResp map[string]interface{}
			json.Unmarshal(body, &captureResp)
			prettyPrint(captureResp)
		}
	}

	// 7. Guest reads the booking back
	color.Yellow("\n[GUEST] 7. Get booking")
	resp, body, err = sendRequest("GET", "/bookings/"+bookingID, guestToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var bookingResp map[string]interface{}
	json.Unmarshal(body, &bookingResp)
	prettyPrint(bookingResp)

	// 8. Outfitter checks property statistics
	color.Yellow("\n[OUTFITTER] 8. Booking statistics")
	resp, body, err = sendRequest("GET", "/properties/"+propertyID+"/statistics", providerToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var statsResp map[string]interface{}
		json.Unmarshal(body, &statsResp)
		prettyPrint(statsResp)
	}

	// 9. Cleanup: cancel the booking while still inside the window
	color.Yellow("\n[GUEST] 9. Cancel booking")
	resp, body, err = sendRequest("POST", "/bookings/"+bookingID+"/cancel", guestToken, map[string]interface{}{
		"reason": "smoke test cleanup",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var cancelResp map[string]interface{}
		json.Unmarshal(body, &cancelResp)
		prettyPrint(cancelResp)
	}

	color.Cyan("\n✅ Test Sequence Complete")
}
