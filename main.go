package main

import (
	"log"

	"github.com/SundayYogurt/onboarding_service/config"
	"github.com/SundayYogurt/onboarding_service/internal/api"
	"github.com/SundayYogurt/onboarding_service/pkg/logger"
)

func main() {
	//load configuration
	cfg := config.LoadConfig()

	appLog, err := logger.New(cfg.Env, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer appLog.Sync()

	if err := api.StartServer(cfg, appLog); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}
