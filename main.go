package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staydesk/config"
	_ "staydesk/docs"
	"staydesk/jobs"
	"staydesk/routes"
	"staydesk/services"
	"staydesk/services/logger"
	"staydesk/services/notification"
	"staydesk/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func emailSender(cfg *config.Config, log logger.Logger) notification.Sender {
	if cfg.SMTPHost == "" {
		return &notification.LogSender{Logger: log}
	}
	return &notification.SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}
}

func main() {
	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	cfg := config.AppConfig
	appLog := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))

	if err := validator.RegisterGinRules(); err != nil {
		log.Fatalf("Failed to register validation rules: %v", err)
	}

	dispatcher := notification.NewDispatcher(notification.DispatcherOptions{
		Workers:   cfg.NotificationWorkers,
		QueueSize: cfg.NotificationQueueSize,
		Logger:    appLog.Named("notify"),
	})

	ct := services.NewContainer(services.ContainerOptions{
		DB:                  config.DB,
		Redis:               config.RedisClient,
		Publisher:           dispatcher,
		Logger:              appLog,
		JWTSecret:           cfg.JWTSecret,
		JWTTTL:              cfg.JWTTTL,
		CacheTTL:            cfg.AvailabilityCacheTTL,
		InventoryWindowDays: cfg.InventoryWindowDays,
		WebhookSecret:       cfg.WebhookSecret,
	})

	dispatcher.Register(notification.NewEmailHandler(emailSender(cfg, appLog), ct.EmailLogs, appLog.Named("email")).WithBaseURL(cfg.PublicBaseURL))
	dispatcher.Register(notification.NewBroadcaster(m))
	dispatcher.Start()

	if err := ct.Auth.BootstrapAdmin(context.Background(), cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin: %v", err)
	}

	if err := jobs.InitCronJobs(c, jobs.Schedule{
		Backfill:      cfg.CronBackfill,
		PreArrival:    cfg.CronPreArrival,
		ReviewRequest: cfg.CronReviewRequest,
	}, &jobs.Jobs{
		Backfiller:    ct.InventorySvc,
		PreArrival:    ct.ReservationSvc,
		ReviewRequest: ct.ReviewSvc,
		Logger:        appLog.Named("cron"),
	}); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	routes.SetupRoutes(router, ct, m, appLog)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Println("Server starting on port " + cfg.Port + "...")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	<-c.Stop().Done()
	m.Close()
	dispatcher.Stop()
}
