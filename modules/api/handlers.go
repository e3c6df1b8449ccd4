package api

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	taskdomain "github.com/example/taskboard-demo/domain/task"
	"github.com/example/taskboard-demo/modules/auth"
	"github.com/example/taskboard-demo/modules/tasks"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer  mono.ServiceContainer
	tasksContainer mono.ServiceContainer
	authAdapter    auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, tasksContainer mono.ServiceContainer, authAdapter auth.AuthPort) *Handlers {
	return &Handlers{
		authContainer:  authContainer,
		tasksContainer: tasksContainer,
		authAdapter:    authAdapter,
	}
}

// Register handles POST /auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body RegisterBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.Email == "" || body.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	req := auth.RegisterRequest{Email: body.Email, Password: body.Password}
	var resp auth.RegisterResponse
	if err := h.callAuth(c, "register", &req, &resp); err != nil {
		return h.handleAuthError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles POST /auth/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body LoginBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.Email == "" || body.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	req := auth.LoginRequest{Email: body.Email, Password: body.Password}
	var resp auth.TokenPairResponse
	if err := h.callAuth(c, "login", &req, &resp); err != nil {
		return h.handleAuthError(c, err)
	}
	return c.JSON(resp)
}

// Refresh handles POST /auth/refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var body RefreshBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	req := auth.RefreshRequest{RefreshToken: body.RefreshToken}
	var resp auth.TokenPairResponse
	if err := h.callAuth(c, "refresh-token", &req, &resp); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "Unauthorized"})
	}
	return c.JSON(resp)
}

// ListTags handles GET /tags.
func (h *Handlers) ListTags(c *fiber.Ctx) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	req := tasks.ListTagsRequest{UserID: userID}
	var resp tasks.ListTagsResponse
	if err := h.callTasks(c, "list-tags", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}
	if resp.Tags == nil {
		resp.Tags = []taskdomain.Tag{}
	}
	return c.JSON(resp.Tags)
}

// CreateTag handles POST /tags.
func (h *Handlers) CreateTag(c *fiber.Ctx) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var body CreateTagBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(body.Name) == "" {
		return badRequest(c, "Tag name is required")
	}

	req := tasks.CreateTagRequest{UserID: userID, Name: body.Name, Color: body.Color}
	var resp taskdomain.Tag
	if err := h.callTasks(c, "create-tag", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTasks handles GET /tasks with optional search and completed filters.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	req := tasks.ListTasksRequest{
		UserID: userID,
		Search: c.Query("search"),
	}
	if v := c.Query("completed"); v != "" {
		completed := v == "true"
		req.Completed = &completed
	}

	var resp tasks.ListTasksResponse
	if err := h.callTasks(c, "list", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}
	if resp.Tasks == nil {
		resp.Tasks = []taskdomain.Task{}
	}
	return c.JSON(resp.Tasks)
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var body CreateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(body.Title) == "" {
		return badRequest(c, "Title is required")
	}
	if body.DueDate == "" {
		return badRequest(c, "Due date is required")
	}
	dueDate, err := parseDueDate(body.DueDate)
	if err != nil {
		return badRequest(c, "Invalid due date")
	}

	req := tasks.CreateTaskRequest{
		UserID:      userID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    body.Priority,
		DueDate:     dueDate,
		TagIDs:      body.TagIDs,
	}
	var resp taskdomain.Task
	if err := h.callTasks(c, "create", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateTask handles PUT /tasks.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var body UpdateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.ID == "" {
		return badRequest(c, "Task ID required")
	}

	req := tasks.UpdateTaskRequest{
		UserID:      userID,
		ID:          body.ID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    body.Priority,
		Completed:   body.Completed,
		TagIDs:      body.TagIDs,
	}
	if body.DueDate != nil {
		dueDate, err := parseDueDate(*body.DueDate)
		if err != nil {
			return badRequest(c, "Invalid due date")
		}
		req.DueDate = dueDate
	}

	var resp taskdomain.Task
	if err := h.callTasks(c, "update", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}
	return c.JSON(resp)
}

// DeleteTask handles DELETE /tasks?id=. Deleting an unknown id still returns
// a confirmation.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id := c.Query("id")
	if id == "" {
		return badRequest(c, "Task ID required")
	}

	req := tasks.DeleteTaskRequest{UserID: userID, ID: id}
	var resp tasks.DeleteTaskResponse
	if err := h.callTasks(c, "delete", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}
	return c.JSON(MessageResponse{Message: "Task deleted"})
}

// TaskStats handles GET /tasks/stats.
func (h *Handlers) TaskStats(c *fiber.Ctx) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	req := tasks.StatsRequest{UserID: userID}
	var resp taskdomain.Stats
	if err := h.callTasks(c, "stats", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}
	return c.JSON(resp)
}

func (h *Handlers) callAuth(c *fiber.Ctx, service string, req, resp any) error {
	return helper.CallRequestReplyService[any, any](
		c.UserContext(), h.authContainer, service,
		json.Marshal, json.Unmarshal, req, &resp,
	)
}

func (h *Handlers) callTasks(c *fiber.Ctx, service string, req, resp any) error {
	return helper.CallRequestReplyService[any, any](
		c.UserContext(), h.tasksContainer, service,
		json.Marshal, json.Unmarshal, req, &resp,
	)
}

// handleTaskError translates task service errors into responses. Errors
// crossing the service container arrive as strings, so matching is by
// message; anything unmatched becomes a generic 500 and is logged here,
// never leaked to the client.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "title is required"):
		return badRequest(c, "Title is required")
	case strings.Contains(msg, "due date is required"):
		return badRequest(c, "Due date is required")
	case strings.Contains(msg, "task id is required"):
		return badRequest(c, "Task ID required")
	case strings.Contains(msg, "invalid priority"):
		return badRequest(c, "Invalid priority")
	case strings.Contains(msg, "tag name is required"):
		return badRequest(c, "Tag name is required")
	case strings.Contains(msg, "tag already exists"):
		return badRequest(c, "Tag already exists")
	case strings.Contains(msg, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Task not found"})
	default:
		log.Printf("[api] Internal error: %v", err)
		return internalError(c)
	}
}

// handleAuthError translates auth service errors into responses.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "Invalid email or password"})
	case strings.Contains(msg, "email already registered"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: "Email already registered"})
	case strings.Contains(msg, "invalid email format"):
		return badRequest(c, "Invalid email format")
	case strings.Contains(msg, "password must be at least"):
		return badRequest(c, "Password must be at least 8 characters")
	case strings.Contains(msg, "password must be at most"):
		return badRequest(c, "Password must be at most 72 characters")
	default:
		log.Printf("[api] Internal error: %v", err)
		return internalError(c)
	}
}

// parseDueDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseDueDate(s string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Internal server error"})
}
