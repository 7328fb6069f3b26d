//go:build wireinject
// +build wireinject

package di

import (
	"parish/config"
	"parish/infras/jwt"
	"parish/infras/kafka"
	"parish/infras/otel"
	"parish/infras/postgres"
	"parish/infras/redis"
	"parish/permissions"
	"parish/shared/cache"
	"parish/transport/http"
	"parish/transport/http/middleware"
	"parish/transport/http/router"

	"github.com/google/wire"

	appointmentNotifier "parish/internal/domains/appointment/notifier"
	appointmentRepository "parish/internal/domains/appointment/repository"
	appointmentService "parish/internal/domains/appointment/service"
	sacramentRepository "parish/internal/domains/sacrament/repository"
	sacramentService "parish/internal/domains/sacrament/service"
	slotRepository "parish/internal/domains/slot/repository"
	slotService "parish/internal/domains/slot/service"

	appointmentHandler "parish/internal/handlers/appointment"
	sacramentHandler "parish/internal/handlers/sacrament"
	slotHandler "parish/internal/handlers/slot"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var sacramentDomain = wire.NewSet(
	sacramentRepository.New,
	sacramentService.New,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentNotifier.New,
	appointmentService.New,
)

var domains = wire.NewSet(
	sacramentDomain,
	slotDomain,
	appointmentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	sacramentHandler.New,
	slotHandler.New,
	appointmentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
