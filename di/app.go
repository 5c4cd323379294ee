package di

import (
	"context"

	"roomdesk/infras/kafka"
	"roomdesk/infras/otel"
	pageService "roomdesk/internal/domains/page/service"
	"roomdesk/transport/http"

	"github.com/rs/zerolog/log"
)

// App is the assembled process: the HTTP server plus the parts that outlive a request.
type App struct {
	HTTP  *http.HTTP
	Page  pageService.Page
	Kafka kafka.Client
	Otel  otel.Otel
}

// Run serves until a termination signal arrives, then closes every open page session
// and flushes the producers.
func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.Page.RunSweeper(ctx)

	a.HTTP.Serve()

	cancel()
	a.Page.Shutdown()

	if err := a.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka writer")
	}

	if err := a.Otel.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to shut down tracer provider")
	}
}
