package main

import (
	"github.com/chessdesk/tournament-booking/config"
	"github.com/chessdesk/tournament-booking/internal/gateway"
	"github.com/chessdesk/tournament-booking/internal/handler"
	"github.com/chessdesk/tournament-booking/internal/middleware"
	"github.com/chessdesk/tournament-booking/internal/notifier"
	"github.com/chessdesk/tournament-booking/internal/repository"
	"github.com/chessdesk/tournament-booking/internal/service"
	"github.com/chessdesk/tournament-booking/internal/settings"
	"github.com/chessdesk/tournament-booking/pkg/database"
	"github.com/chessdesk/tournament-booking/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: notification and audit events
	var n notifier.Notifier = notifier.NoopNotifier{}
	pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		logrus.WithError(err).Warn("RabbitMQ unavailable, notifications disabled")
	} else {
		defer pub.Close()
		n = notifier.NewRabbitNotifier(pub)
	}

	// Redis-backed settings snapshot (platform fee, reference prefix)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	settingsStore := settings.NewStore(redisClient, cfg.SettingsTTL, settings.Snapshot{
		OfflinePlatformFee: cfg.OfflinePlatformFee,
		BookingRefPrefix:   cfg.BookingRefPrefix,
	})

	// Payment gateway
	gw := gateway.NewRazorpayGateway(cfg.GatewayKeyID, cfg.GatewaySecret, cfg.GatewayURL)

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Services
	eventSvc := service.NewEventService(eventRepo, n)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo, participantRepo, paymentRepo, settingsStore, n)
	paymentSvc := service.NewPaymentService(paymentRepo, bookingRepo, bookingSvc, gw, n)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logrus.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Info("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "tournament-booking"})
	})

	handler.NewEventHandler(eventSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewPaymentHandler(paymentSvc).RegisterRoutes(e)

	logrus.Infof("tournament booking service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
