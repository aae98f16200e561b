package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/onboarding_service/config"
	"github.com/SundayYogurt/onboarding_service/infra/queue"
	"github.com/SundayYogurt/onboarding_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/onboarding_service/internal/services"
	"github.com/SundayYogurt/onboarding_service/pkg/logger"
)

func main() {
	// ---------- Load Config ----------
	cfg := config.LoadConfig()

	appLog, err := logger.New(cfg.Env, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer appLog.Sync()

	if cfg.KafkaBroker == "" {
		appLog.Fatal("KAFKA_BROKER is required for the mailer")
	}
	appLog.Info("mail service starting",
		"broker", cfg.KafkaBroker,
		"topic", cfg.KafkaTopic,
		"group_id", cfg.KafkaGroupID,
	)

	// ---------- Init Service ----------
	mailService := services.NewMailService(
		cfg.GmailUser,
		cfg.GmailAppPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.MailSubject,
		cfg.PortalBaseURL,
		appLog,
	)

	// ---------- Init Handler ----------
	handler := handlers.NewMailHandler(mailService, appLog)

	// ---------- Init Kafka Consumer ----------
	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
		appLog,
	)

	// ---------- Start Listening ----------
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLog.Info("mail service listening for events")
	if err := consumer.Listen(ctx); err != nil {
		appLog.Error("consumer stopped", "error", err)
	}
}
