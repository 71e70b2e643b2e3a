package api

import (
	"errors"

	domain "github.com/example/todo-app/domain/task"
	"github.com/example/todo-app/modules/listview"
	"github.com/example/todo-app/modules/task"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/changes", websocket.New(m.streamChanges))

	api := app.Group("/api/v1")
	api.Get("/categories", m.listCategories)
	api.Get("/sort-options", m.listSortOptions)

	tasks := api.Group("/tasks")
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	tasks.Post("/delete-positions", m.deletePositions)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.editTask)
	tasks.Delete("/:id", m.deleteTask)
	tasks.Post("/:id/toggle", m.toggleTask)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"addr":   m.config.Addr,
		},
	})
}

// listTasks handles GET /api/v1/tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	query := domain.Query{
		Category: c.Query("category", domain.AllCategories),
		Search:   c.Query("search"),
		Sort:     domain.SortOption(c.Query("sort")),
	}

	projection, err := m.view.Project(c.UserContext(), query)
	if err != nil {
		return m.writeError(c, "list_failed", err)
	}
	return c.JSON(newListTasksResponse(projection))
}

// listCategories handles GET /api/v1/categories.
func (m *APIModule) listCategories(c *fiber.Ctx) error {
	categories, err := m.view.Categories(c.UserContext())
	if err != nil {
		return m.writeError(c, "list_failed", err)
	}
	return c.JSON(CategoriesResponse{Categories: categories})
}

// listSortOptions handles GET /api/v1/sort-options.
func (m *APIModule) listSortOptions(c *fiber.Ctx) error {
	return c.JSON(lo.Map(domain.SortOptions, func(o domain.SortOption, _ int) SortOptionResponse {
		return SortOptionResponse{Value: string(o), Label: o.Label()}
	}))
}

// createTask handles POST /api/v1/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, ok, err := m.tasks.CreateTask(c.UserContext(), req.Title, req.Category)
	if err != nil {
		return m.writeError(c, "create_failed", err)
	}
	if !ok {
		// A blank title is declined without an error.
		return c.JSON(CreateTaskResponse{Created: false})
	}

	resp := newTaskResponse(created, created.IsOverdue(m.now()))
	return c.Status(fiber.StatusCreated).JSON(CreateTaskResponse{Created: true, Task: &resp})
}

// getTask handles GET /api/v1/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	t, err := m.tasks.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return m.writeError(c, "get_failed", err)
	}
	return c.JSON(newTaskResponse(t, t.IsOverdue(m.now())))
}

// toggleTask handles POST /api/v1/tasks/:id/toggle.
func (m *APIModule) toggleTask(c *fiber.Ctx) error {
	t, err := m.tasks.ToggleTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return m.writeError(c, "toggle_failed", err)
	}
	return c.JSON(newTaskResponse(t, t.IsOverdue(m.now())))
}

// editTask handles PUT /api/v1/tasks/:id.
func (m *APIModule) editTask(c *fiber.Ctx) error {
	var req EditTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	due, err := req.dueDate()
	if err != nil {
		return badRequest(c, "due_date must be formatted as YYYY-MM-DD")
	}

	t, err := m.tasks.EditTask(c.UserContext(), c.Params("id"), task.Edit{
		Title:    req.Title,
		Category: req.Category,
		DueDate:  due,
	})
	if err != nil {
		return m.writeError(c, "edit_failed", err)
	}
	return c.JSON(newTaskResponse(t, t.IsOverdue(m.now())))
}

// deleteTask handles DELETE /api/v1/tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	if err := m.tasks.DeleteTask(c.UserContext(), c.Params("id")); err != nil {
		return m.writeError(c, "delete_failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// deletePositions handles POST /api/v1/tasks/delete-positions.
func (m *APIModule) deletePositions(c *fiber.Ctx) error {
	var req DeletePositionsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Positions) == 0 {
		return badRequest(c, "At least one position is required")
	}

	query := domain.Query{
		Category: req.Category,
		Search:   req.Search,
		Sort:     domain.SortOption(req.Sort),
	}
	deleted, err := m.view.DeletePositions(c.UserContext(), query, req.Positions)
	if err != nil {
		return m.writeError(c, "delete_failed", err)
	}
	return c.JSON(DeletePositionsResponse{Deleted: deleted, Count: len(deleted)})
}

// writeError maps err to an HTTP status and writes an ErrorResponse.
func (m *APIModule) writeError(c *fiber.Ctx, code string, err error) error {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case errors.Is(err, domain.ErrInvalidSortOption), errors.Is(err, listview.ErrPositionOutOfRange):
		return badRequest(c, err.Error())
	}

	m.logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "validation_error",
		Message: message,
	})
}
