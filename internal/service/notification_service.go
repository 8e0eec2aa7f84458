// FILE: internal/service/notification_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"huntstay-be/internal/dto"
	"huntstay-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type INotificationService interface {
	Consume(ctx context.Context) error
}

// notificationService drains the in-process notification topic and sends the
// matching email. Failures are logged and acked; booking flow never blocks
// on mail delivery.
type notificationService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	mailer    mailer.IEmailService
}

func NewNotificationService(pubSub *gochannel.GoChannel, topicName string, emailService mailer.IEmailService) INotificationService {
	return &notificationService{
		pubSub:    pubSub,
		topicName: topicName,
		mailer:    emailService,
	}
}

func (ns *notificationService) Consume(ctx context.Context) error {
	messages, err := ns.pubSub.Subscribe(ctx, ns.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ns.processMessage(msg)
		}
	}()

	return nil
}

func (ns *notificationService) processMessage(msg *message.Message) {
	var payload dto.BookingNotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal notification message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if payload.Email == "" {
		msg.Ack()
		return
	}

	var err error
	switch payload.Kind {
	case "booking_created":
		err = ns.mailer.SendBookingCreated(payload.Email, payload.PropertyName, payload.CheckInDate, payload.CheckOutDate)
	case "booking_confirmed":
		err = ns.mailer.SendBookingConfirmed(payload.Email, payload.PropertyName, payload.CheckInDate, payload.CheckOutDate)
	case "booking_cancelled":
		err = ns.mailer.SendBookingCancelled(payload.Email, payload.PropertyName, payload.Reason)
	case "payment_refunded":
		err = ns.mailer.SendPaymentRefunded(payload.Email, payload.PropertyName, payload.Amount)
	default:
		log.Printf("[WARN] Unknown notification kind %q", payload.Kind)
	}

	if err != nil {
		log.Printf("[ERROR] Failed to send %q notification to %s: %v", payload.Kind, payload.Email, err)
	}

	msg.Ack()
}
