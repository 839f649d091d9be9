package services

import (
	"time"

	"staydesk/repository"
	"staydesk/services/logger"
	"staydesk/services/notification"
	"staydesk/services/payment"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container giữ các service đã nối dây cho controllers và jobs
type Container struct {
	DB    *gorm.DB
	Redis *redis.Client

	Properties   repository.PropertyRepository
	Inventory    repository.InventoryRepository
	Reservations repository.ReservationRepository
	Payments     repository.PaymentRepository
	Operators    repository.OperatorRepository
	EmailLogs    *repository.GormEmailLogRepository
	Reviews      repository.ReviewRepository

	Gateway   payment.Gateway
	Publisher notification.Publisher

	Availability   *AvailabilityService
	Bookings       *BookingService
	Facade         *BookingFacade
	ReservationSvc *ReservationService
	InventorySvc   *InventoryService
	PropertySvc    *PropertyService
	ReviewSvc      *ReviewService
	Auth           *AuthService
	Tokens         *TokenIssuer
	WebhookSecret  string
}

type ContainerOptions struct {
	DB                  *gorm.DB
	Redis               *redis.Client
	Gateway             payment.Gateway
	Publisher           notification.Publisher
	Logger              logger.Logger
	JWTSecret           string
	JWTTTL              time.Duration
	CacheTTL            time.Duration
	InventoryWindowDays int
	WebhookSecret       string
	Now                 func() time.Time
}

// NewContainer tạo repositories và services dùng chung một *gorm.DB
func NewContainer(opts ContainerOptions) *Container {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	if opts.Gateway == nil {
		opts.Gateway = payment.NewManualGateway()
	}
	if opts.Publisher == nil {
		opts.Publisher = notification.NopPublisher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Container{
		DB:            opts.DB,
		Redis:         opts.Redis,
		Properties:    repository.NewGormPropertyRepository(opts.DB),
		Inventory:     repository.NewGormInventoryRepository(opts.DB),
		Reservations:  repository.NewGormReservationRepository(opts.DB),
		Payments:      repository.NewGormPaymentRepository(opts.DB),
		Operators:     repository.NewGormOperatorRepository(opts.DB),
		EmailLogs:     repository.NewGormEmailLogRepository(opts.DB),
		Reviews:       repository.NewGormReviewRepository(opts.DB),
		Gateway:       opts.Gateway,
		Publisher:     opts.Publisher,
		WebhookSecret: opts.WebhookSecret,
	}

	c.Availability = NewAvailabilityService(AvailabilityServiceOptions{
		Properties: c.Properties,
		Inventory:  c.Inventory,
		Redis:      opts.Redis,
		CacheTTL:   opts.CacheTTL,
		Logger:     opts.Logger,
	})
	codes := NewCodeGenerator(c.Reservations)
	c.Bookings = NewBookingService(BookingServiceOptions{
		Availability: c.Availability,
		Inventory:    c.Inventory,
		Reservations: c.Reservations,
		Codes:        codes,
		Publisher:    opts.Publisher,
		Logger:       opts.Logger,
	})
	c.Facade = NewBookingFacade(c.Availability, c.Bookings, opts.Gateway, opts.Logger)
	c.ReviewSvc = NewReviewService(ReviewServiceOptions{
		DB:        opts.DB,
		Reviews:   c.Reviews,
		EmailLogs: c.EmailLogs,
		Publisher: opts.Publisher,
		Logger:    opts.Logger,
		Now:       opts.Now,
	})
	c.ReservationSvc = NewReservationService(ReservationServiceOptions{
		DB:           opts.DB,
		Reservations: c.Reservations,
		Payments:     c.Payments,
		Reverser:     NewInventoryReverser(c.Inventory),
		Availability: c.Availability,
		Reviews:      c.ReviewSvc,
		Gateway:      opts.Gateway,
		Publisher:    opts.Publisher,
		Logger:       opts.Logger,
		Now:          opts.Now,
	})
	c.InventorySvc = NewInventoryService(InventoryServiceOptions{
		Properties:   c.Properties,
		Inventory:    c.Inventory,
		Availability: c.Availability,
		WindowDays:   opts.InventoryWindowDays,
		Logger:       opts.Logger,
		Now:          opts.Now,
	})
	c.PropertySvc = NewPropertyService(opts.DB, c.Properties, c.InventorySvc, opts.Logger)
	c.Tokens = NewTokenIssuer(opts.JWTSecret, opts.JWTTTL)
	c.Auth = NewAuthService(c.Operators, c.Tokens, opts.Logger)
	return c
}
