package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/task-system/internal/api/metrics"
	"github.com/studytrack/task-system/internal/core/ports"
)

// ModuleHandler handles HTTP requests for module operations. All routes
// require authentication; the owner id always comes from the verified
// claims, never from the request payload.
type ModuleHandler struct {
	service ports.ModuleService
}

func NewModuleHandler(service ports.ModuleService) *ModuleHandler {
	return &ModuleHandler{service: service}
}

// List handles GET /modules — the caller's modules, newest first.
//
// @Summary      List own modules
// @Tags         modules
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Module
// @Failure      401  {object}  errorResponse
// @Router       /modules [get]
func (h *ModuleHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	modules, err := h.service.List(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modules)
}

// Get handles GET /modules/:id.
//
// @Summary      Get a module
// @Tags         modules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Module id"
// @Success      200  {object}  domain.Module
// @Failure      404  {object}  errorResponse
// @Router       /modules/{id} [get]
func (h *ModuleHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	module, err := h.service.Get(c.Request().Context(), c.Param("id"), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, module)
}

// Create handles POST /modules.
//
// @Summary      Create a module
// @Tags         modules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createModuleRequest  true  "Module details"
// @Success      201   {object}  domain.Module
// @Failure      400   {object}  errorResponse
// @Router       /modules [post]
func (h *ModuleHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createModuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	module, err := h.service.Create(c.Request().Context(), claims.UserID, req.Title, req.Description)
	if err != nil {
		return err
	}

	metrics.ModulesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, module)
}

// Update handles PUT /modules/:id with partial-update semantics.
//
// @Summary      Update a module
// @Tags         modules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Module id"
// @Param        body  body      updateModuleRequest  true  "Fields to change"
// @Success      200   {object}  domain.Module
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /modules/{id} [put]
func (h *ModuleHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateModuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	module, err := h.service.Update(c.Request().Context(), c.Param("id"), claims.UserID, ports.ModulePatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, module)
}

// Delete handles DELETE /modules/:id — removes the module and all its tasks.
//
// @Summary      Delete a module and its tasks
// @Tags         modules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Module id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /modules/{id} [delete]
func (h *ModuleHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "module and tasks deleted"})
}
