package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahho/rewards-platform/internal/core/ports"
)

// TaskHandler serves the reward catalog and task completion.
type TaskHandler struct {
	tasks ports.TaskService
}

func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List handles GET /v1/tasks — the full catalog, no auth required.
//
// @Summary      List the reward catalog
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  taskListResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.tasks.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskListResponse{Tasks: tasks})
}

// Complete handles POST /v1/tasks/complete — credits the reward once.
//
// @Summary      Complete a task and credit its reward
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      completeTaskRequest  true  "Task to complete"
// @Success      200   {object}  completeTaskResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks/complete [post]
func (h *TaskHandler) Complete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req completeTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	balance, err := h.tasks.Complete(c.Request().Context(), userID, req.TaskID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, completeTaskResponse{OK: true, Balance: balance})
}
