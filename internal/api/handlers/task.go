package handlers

import (
	"net/http"

	"team-task-backend/internal/permission"
	"team-task-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles HTTP requests for a team's tasks
type TaskHandler struct {
	taskService   service.TaskServiceInterface
	accessService service.AccessServiceInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskServiceInterface, accessService service.AccessServiceInterface) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		accessService: accessService,
	}
}

// CreateTask handles POST /teams/:teamId/tasks
// @Summary Create a task
// @Description Create a task in the team, optionally assigned to a team member. Members only.
// @Tags tasks
// @Accept json
// @Produce json
// @Param teamId path string true "Team ID (UUID)"
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} service.TaskResponse "Successfully created task"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Not a member, or assignee is not a member"
// @Failure 404 {object} ErrorResponse "Team or assigned user not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams/{teamId}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	teamID, ok := pathUUID(c, "teamId", "team")
	if !ok {
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(teamID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListTasks handles GET /teams/:teamId/tasks
// @Summary List the team's tasks
// @Description Newest first. Members only.
// @Tags tasks
// @Produce json
// @Param teamId path string true "Team ID (UUID)"
// @Success 200 {array} service.TaskResponse "Successfully retrieved tasks"
// @Failure 400 {object} ErrorResponse "Invalid team ID"
// @Failure 403 {object} ErrorResponse "Not a member of this team"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams/{teamId}/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	teamID, ok := pathUUID(c, "teamId", "team")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(teamID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask handles GET /teams/:teamId/tasks/:taskId
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param teamId path string true "Team ID (UUID)"
// @Param taskId path string true "Task ID (UUID)"
// @Success 200 {object} service.TaskResponse "Successfully retrieved task"
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 403 {object} ErrorResponse "Not a member of this team"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams/{teamId}/tasks/{taskId} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	teamID, ok := pathUUID(c, "teamId", "team")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId", "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(teamID, taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PATCH /teams/:teamId/tasks/:taskId
// @Summary Update a task
// @Description Partial update. Allowed for team admins, the task's creator and its assignee.
// @Description Send "assigned_to_id": null to un-assign.
// @Tags tasks
// @Accept json
// @Produce json
// @Param teamId path string true "Team ID (UUID)"
// @Param taskId path string true "Task ID (UUID)"
// @Param task body service.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} service.TaskResponse "Successfully updated task"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Not allowed to edit this task"
// @Failure 404 {object} ErrorResponse "Task or assigned user not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams/{teamId}/tasks/{taskId} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	teamID, ok := pathUUID(c, "teamId", "team")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId", "task")
	if !ok {
		return
	}

	if err := h.accessService.AuthorizeTask(userID, teamID, taskID, permission.ActionEditTask); err != nil {
		handleServiceError(c, err)
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(teamID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /teams/:teamId/tasks/:taskId
// @Summary Delete a task
// @Description Allowed for team admins and the task's creator.
// @Tags tasks
// @Param teamId path string true "Team ID (UUID)"
// @Param taskId path string true "Task ID (UUID)"
// @Success 204 "Task deleted"
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 403 {object} ErrorResponse "Not allowed to delete this task"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams/{teamId}/tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	teamID, ok := pathUUID(c, "teamId", "team")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId", "task")
	if !ok {
		return
	}

	if err := h.accessService.AuthorizeTask(userID, teamID, taskID, permission.ActionDeleteTask); err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.taskService.DeleteTask(teamID, taskID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
