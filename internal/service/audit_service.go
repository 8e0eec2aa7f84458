// FILE: internal/service/audit_service.go
package service

import (
	"context"

	"huntstay-be/internal/pkg/logger"
	"huntstay-be/pkg/events"
	pktNats "huntstay-be/pkg/nats"
)

type IAuditService interface {
	Start() error
}

// auditService drains the durable event stream into an append-only audit
// log. Booking and payment state changes stay reconstructable even if the
// request logs rotate away.
type auditService struct {
	subscriber *pktNats.Subscriber
	log        logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, auditLogger logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		log:        auditLogger,
	}
}

func (s *auditService) Start() error {
	return s.subscriber.Subscribe("events.>", "audit-log", func(ctx context.Context, event events.Event) error {
		s.log.Info("audit", event.EventType(), event.Payload())
		return nil
	})
}
