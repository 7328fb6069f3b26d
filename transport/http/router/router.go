package router

import (
	"parish/internal/handlers/appointment"
	"parish/internal/handlers/sacrament"
	"parish/internal/handlers/slot"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Sacrament   sacrament.Handler
	Slot        slot.Handler
	Appointment appointment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Sacrament.Router(routerGroup)
		r.DomainHandlers.Slot.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
