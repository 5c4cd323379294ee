package main

import (
	"roomdesk/config"
	"roomdesk/di"
	"roomdesk/shared/logger"
	"roomdesk/shared/timezone"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	// Setup logs and falls back to UTC on its own.
	_ = timezone.Setup(cfg.App.Timezone)

	app := di.InitializeService()
	app.Run()
}
