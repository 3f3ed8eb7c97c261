package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/task-system/internal/api/metrics"
	"github.com/studytrack/task-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Authorization is
// always resolved against the parent module's owner.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// ListForModule handles GET /modules/:id/tasks — oldest first.
//
// @Summary      List a module's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Module id"
// @Success      200       {array}   domain.Task
// @Failure      404       {object}  errorResponse
// @Router       /modules/{id}/tasks [get]
func (h *TaskHandler) ListForModule(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListForModule(c.Request().Context(), c.Param("id"), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /modules/:id/tasks.
//
// @Summary      Create a task under a module
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string             true  "Module id"
// @Param        body      body      createTaskRequest  true  "Task details"
// @Success      201       {object}  domain.Task
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /modules/{id}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		ModuleID:    c.Param("id"),
		OwnerID:     claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Status)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// Update handles PUT /tasks/:id with partial-update semantics.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string             true  "Task id"
// @Param        body    body      updateTaskRequest  true  "Fields to change"
// @Success      200     {object}  domain.Task
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), claims.UserID, ports.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Task id"
// @Success      200     {object}  messageResponse
// @Failure      404     {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
}
