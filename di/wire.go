//go:build wireinject
// +build wireinject

package di

import (
	"roomdesk/config"
	"roomdesk/infras/backend"
	"roomdesk/infras/jwt"
	"roomdesk/infras/kafka"
	"roomdesk/infras/otel"
	"roomdesk/infras/postgres"
	"roomdesk/infras/redis"
	pageHandler "roomdesk/internal/handlers/page"
	receiptHandler "roomdesk/internal/handlers/receipt"
	"roomdesk/shared/cache"
	"roomdesk/transport/http"
	"roomdesk/transport/http/middleware"
	"roomdesk/transport/http/router"

	pageEvent "roomdesk/internal/domains/page/event"
	pageRepository "roomdesk/internal/domains/page/repository"
	pageService "roomdesk/internal/domains/page/service"

	receiptRepository "roomdesk/internal/domains/receipt/repository"
	receiptService "roomdesk/internal/domains/receipt/service"

	"github.com/google/wire"
	"github.com/jonboulle/clockwork"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	backend.New,
	clockwork.NewRealClock,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var receiptDomain = wire.NewSet(
	receiptRepository.New,
	receiptService.New,
)

var pageDomain = wire.NewSet(
	pageRepository.New,
	pageEvent.New,
	pageService.New,
)

var domains = wire.NewSet(
	receiptDomain,
	pageDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	pageHandler.New,
	receiptHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
