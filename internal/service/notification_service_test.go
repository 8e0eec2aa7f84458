// FILE: internal/service/notification_service_test.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"huntstay-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	Kind string
	To   string
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentEmail
	sendErr error
}

func (m *fakeMailer) record(kind, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{Kind: kind, To: to})
	return m.sendErr
}

func (m *fakeMailer) emails() []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentEmail(nil), m.sent...)
}

func (m *fakeMailer) SendBookingCreated(to, propertyName, checkIn, checkOut string) error {
	return m.record("booking_created", to)
}

func (m *fakeMailer) SendBookingConfirmed(to, propertyName, checkIn, checkOut string) error {
	return m.record("booking_confirmed", to)
}

func (m *fakeMailer) SendBookingCancelled(to, propertyName, reason string) error {
	return m.record("booking_cancelled", to)
}

func (m *fakeMailer) SendPaymentRefunded(to, propertyName, amount string) error {
	return m.record("payment_refunded", to)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestNotificationConsumeDispatchesEmails(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	mail := &fakeMailer{}
	consumer := NewNotificationService(pubSub, "test.notifications", mail)
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("test.notifications", pubSub)
	publish := func(msg dto.BookingNotificationMessage) {
		payload, err := json.Marshal(msg)
		require.NoError(t, err)
		require.NoError(t, publisher.Publish(context.Background(), payload))
	}

	publish(dto.BookingNotificationMessage{Kind: "booking_created", Email: "a@example.com", PropertyName: "Ranch"})
	publish(dto.BookingNotificationMessage{Kind: "booking_confirmed", Email: "a@example.com", PropertyName: "Ranch"})
	publish(dto.BookingNotificationMessage{Kind: "payment_refunded", Email: "a@example.com", Amount: "100.00 USD"})

	waitFor(t, func() bool { return len(mail.emails()) == 3 })

	kinds := make([]string, 0, 3)
	for _, e := range mail.emails() {
		kinds = append(kinds, e.Kind)
		assert.Equal(t, "a@example.com", e.To)
	}
	assert.ElementsMatch(t, []string{"booking_created", "booking_confirmed", "payment_refunded"}, kinds)
}

func TestNotificationConsumeSkipsBadMessages(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	mail := &fakeMailer{}
	consumer := NewNotificationService(pubSub, "test.notifications", mail)
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("test.notifications", pubSub)

	// Garbage and address-less messages are acked without a send attempt;
	// a valid one after them still goes through.
	require.NoError(t, publisher.Publish(context.Background(), []byte("not-json")))
	empty, _ := json.Marshal(dto.BookingNotificationMessage{Kind: "booking_created"})
	require.NoError(t, publisher.Publish(context.Background(), empty))
	ok, _ := json.Marshal(dto.BookingNotificationMessage{Kind: "booking_cancelled", Email: "b@example.com", Reason: "weather"})
	require.NoError(t, publisher.Publish(context.Background(), ok))

	waitFor(t, func() bool { return len(mail.emails()) == 1 })
	assert.Equal(t, "booking_cancelled", mail.emails()[0].Kind)
}

func TestNotificationSendFailureStillAcks(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	mail := &fakeMailer{sendErr: errors.New("smtp down")}
	consumer := NewNotificationService(pubSub, "test.notifications", mail)
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("test.notifications", pubSub)
	payload, _ := json.Marshal(dto.BookingNotificationMessage{Kind: "booking_created", Email: "c@example.com"})
	require.NoError(t, publisher.Publish(context.Background(), payload))

	// The failed send is acked, not redelivered.
	waitFor(t, func() bool { return len(mail.emails()) == 1 })
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, mail.emails(), 1)
}
