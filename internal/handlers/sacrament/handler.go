package sacrament

import (
	"net/http"
	"parish/infras/otel"
	"parish/internal/domains/sacrament/model"
	"parish/internal/domains/sacrament/model/dto"
	"parish/internal/domains/sacrament/service"
	"parish/shared/constant"
	gDto "parish/shared/dto"
	"parish/shared/validator"
	"parish/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.SacramentType
	otel    otel.Otel
}

func New(service service.SacramentType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sacrament-types", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSacramentTypes)
		routerGroup.Get("/{id}", handler.GetSacramentTypeByID)
		routerGroup.Post("/", handler.CreateSacramentType)
		routerGroup.Patch("/{id}", handler.UpdateSacramentType)
		routerGroup.Delete("/{id}", handler.DeleteSacramentType)
	})
}

// CreateSacramentType handles the creation of a new sacrament type.
// @Summary Create a new sacrament type
// @Description Create a new sacrament type in the parish catalog.
// @Tags SacramentType
// @Accept json
// @Produce json
// @Param request body dto.CreateSacramentTypeRequest true "Create Sacrament Type Request"
// @Success 201 {object} response.Message "Sacrament type created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sacrament-types [post]
// @Security BearerAuth
func (handler *Handler) CreateSacramentType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSacramentType")
	defer scope.End()

	req := dto.CreateSacramentTypeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create sacrament type")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Sacrament type created successfully")

	response.WithMessage(writer, http.StatusCreated, "Sacrament type created successfully")
}

// GetSacramentTypes retrieves the sacrament type catalog.
// @Summary Get all sacrament types
// @Description Retrieve all sacrament types with optional filtering and pagination.
// @Tags SacramentType
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.SacramentTypeResponse] "List of sacrament types"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sacrament-types [get]
func (handler *Handler) GetSacramentTypes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSacramentTypes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	sacramentTypes, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sacrament types")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sacrament types retrieved successfully")

	response.WithJSON(w, http.StatusOK, sacramentTypes)
}

// GetSacramentTypeByID retrieves a sacrament type by its ID.
// @Summary Get a sacrament type by ID
// @Description Retrieve a sacrament type by its unique identifier.
// @Tags SacramentType
// @Accept json
// @Produce json
// @Param id path string true "Sacrament Type ID"
// @Success 200 {object} response.Data[dto.SacramentTypeResponse] "Sacrament type details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sacrament-types/{id} [get]
func (handler *Handler) GetSacramentTypeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSacramentTypeByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	sacramentType, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sacrament type by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sacrament type retrieved successfully")

	response.WithJSON(w, http.StatusOK, sacramentType)
}

// UpdateSacramentType updates an existing sacrament type.
// @Summary Update a sacrament type
// @Description Update a sacrament type's name or description.
// @Tags SacramentType
// @Accept json
// @Produce json
// @Param id path string true "Sacrament Type ID"
// @Param request body dto.UpdateSacramentTypeRequest true "Update Sacrament Type Request"
// @Success 200 {object} response.Message "Sacrament type updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sacrament-types/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSacramentType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSacramentType")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateSacramentTypeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update sacrament type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sacrament type updated successfully")

	response.WithMessage(w, http.StatusOK, "Sacrament type updated successfully")
}

// DeleteSacramentType deletes a sacrament type.
// @Summary Delete a sacrament type
// @Description Delete a sacrament type. Fails while time slots or appointments still reference it.
// @Tags SacramentType
// @Accept json
// @Produce json
// @Param id path string true "Sacrament Type ID"
// @Success 200 {object} response.Message "Sacrament type deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sacrament-types/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSacramentType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSacramentType")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete sacrament type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sacrament type deleted successfully")

	response.WithMessage(w, http.StatusOK, "Sacrament type deleted successfully")
}
