package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"teamtasks/internal/domain"
	"teamtasks/internal/repository"
	"teamtasks/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssignedTo  *int64 `json:"assignedTo"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	AssignedTo  OptionalID `json:"assignedTo"`
}

// requireTeamMember loads the team and enforces the membership gate in the
// fixed order: team exists (404), caller is a member (403). Returns nil when
// it already wrote a response.
func (h *Handler) requireTeamMember(c *gin.Context, forbiddenMsg string) *domain.Team {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		fail(c, http.StatusNotFound, "Team not found")
		return nil
	}

	team, err := h.Teams.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Team not found")
			return nil
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return nil
	}

	if !team.HasMember(getUserID(c)) {
		fail(c, http.StatusForbidden, forbiddenMsg)
		return nil
	}

	return team
}

func (h *Handler) CreateTask(c *gin.Context) {
	team := h.requireTeamMember(c, "Only team members can create tasks")
	if team == nil {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := service.RequiredErrors(map[string]string{"title": req.Title}, "title"); len(errs) > 0 {
		fail(c, http.StatusBadRequest, strings.Join(errs, ", "))
		return
	}

	status := domain.StatusTodo
	if req.Status != "" {
		status = domain.TaskStatus(req.Status)
		if !status.Valid() {
			fail(c, http.StatusBadRequest, "Status must be TODO, DOING, or DONE")
			return
		}
	}

	if req.AssignedTo != nil && !team.HasMember(*req.AssignedTo) {
		fail(c, http.StatusBadRequest, "Can only assign tasks to team members")
		return
	}

	ctx := c.Request.Context()

	taskID, err := h.Tasks.Create(ctx, team.ID, req.Title, req.Description, status, req.AssignedTo, getUserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	task, err := h.Tasks.GetByID(ctx, team.ID, taskID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.notify(team.ID, "task.created", task)
	respondData(c, http.StatusCreated, task)
}

func (h *Handler) GetTasks(c *gin.Context) {
	team := h.requireTeamMember(c, "Only team members can view tasks")
	if team == nil {
		return
	}

	filter := domain.TaskFilter{Search: c.Query("search")}

	if v := c.Query("assignedTo"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			fail(c, http.StatusBadRequest, "assignedTo must be a user id")
			return
		}
		filter.AssignedTo = &id
	}

	if v := c.Query("status"); v != "" {
		status := domain.TaskStatus(v)
		if !status.Valid() {
			fail(c, http.StatusBadRequest, "Status must be TODO, DOING, or DONE")
			return
		}
		filter.Status = &status
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	tasks, total, err := h.Tasks.List(c.Request.Context(), team.ID, filter)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	pages := (total + limit - 1) / limit
	respondPage(c, tasks, len(tasks), total, page, pages)
}

func (h *Handler) GetTask(c *gin.Context) {
	team := h.requireTeamMember(c, "Only team members can view tasks")
	if team == nil {
		return
	}

	task, ok := h.loadTask(c, team.ID)
	if !ok {
		return
	}

	respondData(c, http.StatusOK, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	team := h.requireTeamMember(c, "Only team members can update tasks")
	if team == nil {
		return
	}

	task, ok := h.loadTask(c, team.ID)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		if !status.Valid() {
			fail(c, http.StatusBadRequest, "Status must be TODO, DOING, or DONE")
			return
		}
		task.Status = status
	}

	if req.AssignedTo.Set && req.AssignedTo.Valid && !team.HasMember(req.AssignedTo.Value) {
		fail(c, http.StatusBadRequest, "Can only assign tasks to team members")
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}

	// Only a provided assignedTo touches the assignment; null or "" clears it.
	var assignee *int64
	switch {
	case req.AssignedTo.Set && req.AssignedTo.Valid:
		assignee = &req.AssignedTo.Value
	case req.AssignedTo.Set:
		assignee = nil
	case task.AssignedTo != nil:
		assignee = &task.AssignedTo.ID
	}

	ctx := c.Request.Context()

	if err := h.Tasks.Update(ctx, team.ID, task.ID, task.Title, task.Description, task.Status, assignee); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Task not found")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	updated, err := h.Tasks.GetByID(ctx, team.ID, task.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.notify(team.ID, "task.updated", updated)
	respondData(c, http.StatusOK, updated)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	team := h.requireTeamMember(c, "Only team members can delete tasks")
	if team == nil {
		return
	}

	taskID, ok := pathID(c, "taskId")
	if !ok {
		fail(c, http.StatusNotFound, "Task not found")
		return
	}

	deleted, err := h.Tasks.Delete(c.Request.Context(), team.ID, taskID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "Task not found")
		return
	}

	h.notify(team.ID, "task.deleted", gin.H{"id": taskID, "teamId": team.ID})
	respondMessage(c, http.StatusOK, "Task deleted successfully")
}

// loadTask fetches the task scoped to the team; tasks under another team
// read as not found rather than leaking across the boundary.
func (h *Handler) loadTask(c *gin.Context, teamID int64) (*domain.Task, bool) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		fail(c, http.StatusNotFound, "Task not found")
		return nil, false
	}

	task, err := h.Tasks.GetByID(c.Request.Context(), teamID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Task not found")
			return nil, false
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}

	return task, true
}

func queryInt(c *gin.Context, name string, def int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
