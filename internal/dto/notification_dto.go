// FILE: internal/dto/notification_dto.go
package dto

// BookingNotificationMessage is the payload on the in-process notification
// topic. The consumer turns it into a guest-facing email.
type BookingNotificationMessage struct {
	Kind         string `json:"kind"` // booking_created | booking_confirmed | booking_cancelled | payment_refunded
	Email        string `json:"email"`
	PropertyName string `json:"property_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Reason       string `json:"reason,omitempty"`
	Amount       string `json:"amount,omitempty"`
}
