package bootstrap

import (
	"context"
	"log"
	"time"

	"huntstay-be/internal/config"
	"huntstay-be/internal/controller"
	"huntstay-be/internal/pkg/logger"
	"huntstay-be/internal/pkg/mailer"
	"huntstay-be/internal/repository/unitofwork"
	"huntstay-be/internal/service"
	"huntstay-be/pkg/cache"
	"huntstay-be/pkg/gateway"

	pktNats "huntstay-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const notificationTopic = "booking.notifications"

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	PropertyController controller.IPropertyController
	BookingController  controller.IBookingController
	PaymentController  controller.IPaymentController

	// Background Services (Exposed for main.go to run)
	NotificationService service.INotificationService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}
	propertyCache := cache.NewPropertyCache(rdb, time.Duration(cfg.Booking.PropertyCacheTTLSeconds)*time.Second)

	// Payment processor
	paymentGateway := gateway.NewMidtransGateway(cfg.Payment.MidtransServerKey, cfg.Payment.Production)

	// 3. Services
	publisherService := service.NewPublisherService(notificationTopic, pubSub)
	notificationService := service.NewNotificationService(pubSub, notificationTopic, emailService)

	// Durable audit trail of booking/payment events
	if natsSub != nil {
		auditLogger := logger.NewIsolatedLogger("logs/audit.log")
		auditService := service.NewAuditService(natsSub, auditLogger)
		if err := auditService.Start(); err != nil {
			log.Printf("[WARN] Failed to start audit consumer: %v", err)
		}
	}

	pricingService := service.NewPricingService(cfg.Booking.ServiceFeeRate, cfg.Booking.TaxRate)
	authService := service.NewAuthService(uowFactory, sysLogger)
	propertyService := service.NewPropertyService(uowFactory, propertyCache, sysLogger)

	bookingService := service.NewBookingService(
		uowFactory,
		pricingService,
		publisherService,
		natsPub,
		service.BookingSettings{
			CancellationLeadDays: cfg.Booking.CancellationLeadDays,
		},
		sysLogger,
	)

	paymentService := service.NewPaymentService(
		uowFactory,
		paymentGateway,
		publisherService,
		natsPub,
		service.PaymentSettings{
			Currency:             cfg.Payment.Currency,
			CaptureWindowDays:    cfg.Booking.CaptureWindowDays,
			ProviderResponseDays: cfg.Booking.ProviderResponseDays,
			ServerKey:            cfg.Payment.MidtransServerKey,
		},
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		PropertyController: controller.NewPropertyController(propertyService),
		BookingController:  controller.NewBookingController(bookingService),
		PaymentController:  controller.NewPaymentController(paymentService),

		NotificationService: notificationService,
	}
}
