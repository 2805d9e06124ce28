package role

import (
	"net/http"

	"bistro/infras/otel"
	"bistro/internal/domains/role/model"
	"bistro/internal/domains/role/model/dto"
	"bistro/internal/domains/role/service"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/validator"
	"bistro/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Role
	otel    otel.Otel
}

func New(service service.Role, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/roles", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRole)
		routerGroup.Get("/", handler.GetRoles)
		routerGroup.Get("/{id}", handler.GetRoleByID)
		routerGroup.Patch("/{id}", handler.UpdateRole)
		routerGroup.Delete("/{id}", handler.DeleteRole)
	})
}

// CreateRole creates a role with its permissions.
// @Summary Create a role
// @Tags Role
// @Accept json
// @Produce json
// @Param request body dto.CreateRoleRequest true "Create Role Request"
// @Success 201 {object} response.Data[dto.RoleResponse] "Created role"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/roles [post]
// @Security BearerAuth
func (handler *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRole")
	defer scope.End()

	req := dto.CreateRoleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	role, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create role")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Role " + role.Name + " created by user " + user)

	response.WithJSON(w, http.StatusCreated, role)
}

// GetRoles lists roles with their permissions.
// @Summary Get all roles
// @Tags Role
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Search by name"
// @Success 200 {object} response.Data[dto.GetRolesResponse] "List of roles"
// @Failure 500 {object} response.Error
// @Router /v1/roles [get]
// @Security BearerAuth
func (handler *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	roles, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get roles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, roles)
}

// GetRoleByID retrieves a role.
// @Summary Get a role by ID
// @Tags Role
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} response.Data[dto.RoleResponse] "Role details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/roles/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoleByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "role"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	role, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get role by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, role)
}

// UpdateRole renames a role or replaces its permissions.
// @Summary Update a role by ID
// @Tags Role
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body dto.UpdateRoleRequest true "Update Role Request"
// @Success 200 {object} response.Message "Role updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/roles/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRole")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "role"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdateRoleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update role")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Role updated successfully")
}

// DeleteRole deletes a role no user is assigned to.
// @Summary Delete a role by ID
// @Tags Role
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} response.Message "Role deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/roles/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRole")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "role"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete role")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Role deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Role deleted successfully")
}
