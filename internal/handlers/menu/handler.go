package menu

import (
	"net/http"
	"strconv"

	"bistro/infras/otel"
	"bistro/internal/domains/menu/model"
	"bistro/internal/domains/menu/model/dto"
	"bistro/internal/domains/menu/service"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/validator"
	"bistro/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	category service.Category
	item     service.Item
	otel     otel.Otel
}

func New(category service.Category, item service.Item, otel otel.Otel) Handler {
	return Handler{
		category: category,
		item:     item,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/menu", func(menuRouter chi.Router) {
		menuRouter.Route("/categories", func(routerGroup chi.Router) {
			routerGroup.Post("/", handler.CreateCategory)
			routerGroup.Get("/", handler.GetCategories)
			routerGroup.Get("/{id}", handler.GetCategoryByID)
			routerGroup.Patch("/{id}", handler.UpdateCategory)
			routerGroup.Delete("/{id}", handler.DeleteCategory)
		})

		menuRouter.Route("/items", func(routerGroup chi.Router) {
			routerGroup.Post("/", handler.CreateItem)
			routerGroup.Get("/", handler.GetItems)
			routerGroup.Get("/{id}", handler.GetItemByID)
			routerGroup.Patch("/{id}", handler.UpdateItem)
			routerGroup.Delete("/{id}", handler.DeleteItem)
		})
	})
}

// CreateCategory handles the creation of a new menu category.
// @Summary Create a menu category
// @Description Create a new menu category with a unique name.
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Create Category Request"
// @Success 201 {object} response.Data[dto.CategoryResponse] "Created category"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/categories [post]
// @Security BearerAuth
func (handler *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCategory")
	defer scope.End()

	req := dto.CreateCategoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	category, err := handler.category.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create menu category")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Menu category created successfully")

	response.WithJSON(w, http.StatusCreated, category)
}

// GetCategories retrieves all menu categories.
// @Summary Get all menu categories
// @Description Retrieve menu categories with optional name search and pagination.
// @Tags Menu
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Search by name"
// @Success 200 {object} response.Data[dto.GetCategoriesResponse] "List of categories"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/categories [get]
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldCategoryName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategoryName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.CategoryTableName,
		})
	}

	categories, err := handler.category.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu categories")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, categories)
}

// GetCategoryByID retrieves a menu category by its ID.
// @Summary Get a menu category by ID
// @Tags Menu
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Data[dto.CategoryResponse] "Category details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/categories/{id} [get]
func (handler *Handler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategoryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "menu category"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	category, err := handler.category.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu category by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, category)
}

// UpdateCategory updates a menu category.
// @Summary Update a menu category by ID
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Update Category Request"
// @Success 200 {object} response.Message "Menu category updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/categories/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCategory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "menu category"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdateCategoryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.category.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update menu category")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Menu category updated successfully")

	response.WithMessage(w, http.StatusOK, "Menu category updated successfully")
}

// DeleteCategory deletes a menu category that no item references.
// @Summary Delete a menu category by ID
// @Tags Menu
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Message "Menu category deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/categories/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCategory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "menu category"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.category.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete menu category")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Menu category deleted successfully")

	response.WithMessage(w, http.StatusOK, "Menu category deleted successfully")
}

// CreateItem handles the creation of a new menu item.
// @Summary Create a menu item
// @Description Create a new menu item in an existing category.
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Create Item Request"
// @Success 201 {object} response.Data[dto.ItemResponse] "Created item"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/items [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	req := dto.CreateItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.item.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create menu item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Menu item created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, item)
}

// GetItems retrieves menu items page by page.
// @Summary Get menu items
// @Description Retrieve menu items with pagination, sorting and filters. Infinite scroll requests successive pages.
// @Tags Menu
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category_id query string false "Filter by category ID"
// @Param availability query bool false "Filter by availability"
// @Param name query string false "Search by name"
// @Success 200 {object} response.Data[dto.GetItemsResponse] "List of menu items"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/items [get]
func (handler *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItems")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if categoryID := query.Get(model.FieldCategoryID); categoryID != "" {
		if err := validator.ValidateVar(categoryID, "uuid"); err != nil {
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategoryID,
			Operator: gDto.FilterOperatorEq,
			Value:    categoryID,
			Table:    model.ItemTableName,
		})
	}

	if availability := query.Get(model.FieldAvailability); availability != "" {
		available, err := strconv.ParseBool(availability)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, failure.BadRequestFromString("availability must be true or false"))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAvailability,
			Operator: gDto.FilterOperatorEq,
			Value:    available,
			Table:    model.ItemTableName,
		})
	}

	if name := query.Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.ItemTableName,
		})
	}

	items, err := handler.item.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu items")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Menu items retrieved successfully")

	response.WithJSON(w, http.StatusOK, items)
}

// GetItemByID retrieves a menu item by its ID.
// @Summary Get a menu item by ID
// @Tags Menu
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Data[dto.ItemResponse] "Menu item details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/items/{id} [get]
func (handler *Handler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "menu item"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	item, err := handler.item.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu item by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}

// UpdateItem partially updates a menu item.
// @Summary Update a menu item by ID
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body dto.UpdateItemRequest true "Update Item Request"
// @Success 200 {object} response.Message "Menu item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/items/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "menu item"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdateItemRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.item.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update menu item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Menu item updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Menu item updated successfully")
}

// DeleteItem deletes a menu item.
// @Summary Delete a menu item by ID
// @Tags Menu
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Message "Menu item deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateID(id, "menu item"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.item.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete menu item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Menu item deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Menu item deleted successfully")
}
