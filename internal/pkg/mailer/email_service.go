// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBookingCreated(toEmail, propertyName, checkIn, checkOut string) error
	SendBookingConfirmed(toEmail, propertyName, checkIn, checkOut string) error
	SendBookingCancelled(toEmail, propertyName, reason string) error
	SendPaymentRefunded(toEmail, propertyName, amount string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string // Added to construct links
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	// Get Frontend URL from ENV or default to a safe placeholder
	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendBookingCreated(toEmail, propertyName, checkIn, checkOut string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Booking Request Received</h2>
			<p>Your booking request for <strong>%s</strong> (%s to %s) has been received.</p>
			<p>The outfitter has 5 days to confirm. We'll email you as soon as they respond.</p>
			<a href="%s/bookings" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">View My Bookings</a>
		</div>
	`, propertyName, checkIn, checkOut, s.frontendURL)

	return s.send(toEmail, "Your booking request is in", body)
}

func (s *emailService) SendBookingConfirmed(toEmail, propertyName, checkIn, checkOut string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Booking Confirmed!</h2>
			<p>Your booking at <strong>%s</strong> is confirmed for %s to %s.</p>
			<p>Your payment has been captured. Pack your gear!</p>
			<a href="%s/bookings" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">View Booking</a>
		</div>
	`, propertyName, checkIn, checkOut, s.frontendURL)

	return s.send(toEmail, "Booking confirmed", body)
}

func (s *emailService) SendBookingCancelled(toEmail, propertyName, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Booking Cancelled</h2>
			<p>Your booking at <strong>%s</strong> has been cancelled.</p>
			<p>Reason: %s</p>
			<p>Any authorized payment hold has been released. If payment was already captured, a refund is on its way.</p>
		</div>
	`, propertyName, reason)

	return s.send(toEmail, "Booking cancelled", body)
}

func (s *emailService) SendPaymentRefunded(toEmail, propertyName, amount string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Refund Processed</h2>
			<p>A refund of <strong>%s</strong> for your booking at <strong>%s</strong> has been processed.</p>
			<p>Depending on your bank, it can take 5-10 business days to appear on your statement.</p>
		</div>
	`, amount, propertyName)

	return s.send(toEmail, "Your refund is on its way", body)
}
