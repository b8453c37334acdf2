package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	crmapp "github.com/hospicetrack/backend/internal/application/crm"
)

// TaskHandler handles task-related API endpoints
type TaskHandler struct {
	BaseHandler
	taskService *crmapp.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *crmapp.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create godoc
// @ID           createTask
// @Summary      Create a new task
// @Description  Create a new follow-up task, optionally linked to a facility, contact, or deal
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body crmapp.CreateTaskRequest true "Task creation request"
// @Success      201 {object} dto.Response{data=crmapp.TaskResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, task)
}

// GetByID godoc
// @ID           getTaskById
// @Summary      Get task by ID
// @Description  Retrieve a task by its ID
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID" format(uuid)
// @Success      200 {object} dto.Response{data=crmapp.TaskResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), ownerID, taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// List godoc
// @ID           listTasks
// @Summary      List tasks
// @Description  Retrieve a paginated list of tasks with optional filtering
// @Tags         tasks
// @Produce      json
// @Param        search query string false "Search term (description)"
// @Param        facility_id query string false "Filter by facility ID" format(uuid)
// @Param        contact_id query string false "Filter by contact ID" format(uuid)
// @Param        deal_id query string false "Filter by deal ID" format(uuid)
// @Param        priority query string false "Priority" Enums(high, medium, low)
// @Param        type query string false "Task type" Enums(call, email, meeting, demo, follow_up, other)
// @Param        open query bool false "Only open tasks when true, only completed when false"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]crmapp.TaskResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.TaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	tasks, total, err := h.taskService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, tasks, total, filter.Page, filter.PageSize)
}

// ListOpen godoc
// @ID           listOpenTasks
// @Summary      List open tasks
// @Description  Retrieve all tasks that have not been completed
// @Tags         tasks
// @Produce      json
// @Success      200 {object} dto.Response{data=[]crmapp.TaskResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tasks/open [get]
func (h *TaskHandler) ListOpen(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tasks, err := h.taskService.ListOpen(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// ListDueToday godoc
// @ID           listTasksDueToday
// @Summary      List tasks due today
// @Description  Retrieve open tasks due on or before the end of the current day
// @Tags         tasks
// @Produce      json
// @Success      200 {object} dto.Response{data=[]crmapp.TaskResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tasks/due-today [get]
func (h *TaskHandler) ListDueToday(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tasks, err := h.taskService.ListDueToday(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// Update godoc
// @ID           updateTask
// @Summary      Update a task
// @Description  Update an existing task's details
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Task ID" format(uuid)
// @Param        request body crmapp.UpdateTaskRequest true "Task update request"
// @Success      200 {object} dto.Response{data=crmapp.TaskResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	var req crmapp.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), ownerID, taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Complete godoc
// @ID           completeTask
// @Summary      Complete a task
// @Description  Mark a task as completed; completing an already completed task is a no-op
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID" format(uuid)
// @Success      200 {object} dto.Response{data=crmapp.TaskResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := h.taskService.Complete(c.Request.Context(), ownerID, taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Reopen godoc
// @ID           reopenTask
// @Summary      Reopen a task
// @Description  Clear a task's completion timestamp, returning it to the open list
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID" format(uuid)
// @Success      200 {object} dto.Response{data=crmapp.TaskResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tasks/{id}/reopen [post]
func (h *TaskHandler) Reopen(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := h.taskService.Reopen(c.Request.Context(), ownerID, taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Delete godoc
// @ID           deleteTask
// @Summary      Delete a task
// @Description  Delete a task by its ID
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), ownerID, taskID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
