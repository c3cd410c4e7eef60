package handlers

import (
	"net/http"
	"strings"

	"teamtasks/internal/domain"
	"teamtasks/internal/service"

	"github.com/gin-gonic/gin"
)

type AddCommentRequest struct {
	Text string `json:"text"`
}

func (h *Handler) AddComment(c *gin.Context) {
	team := h.requireTeamMember(c, "Only team members can comment on tasks")
	if team == nil {
		return
	}

	task, ok := h.loadTask(c, team.ID)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := service.RequiredErrors(map[string]string{"text": req.Text}, "text"); len(errs) > 0 {
		fail(c, http.StatusBadRequest, strings.Join(errs, ", "))
		return
	}

	ctx := c.Request.Context()

	commentID, err := h.Comments.Create(ctx, task.ID, req.Text, getUserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	comment, err := h.Comments.GetByID(ctx, commentID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.notify(team.ID, "comment.created", comment)
	respondData(c, http.StatusCreated, comment)
}

// GetComments lists a task's comments newest first.
func (h *Handler) GetComments(c *gin.Context) {
	team := h.requireTeamMember(c, "Only team members can view comments")
	if team == nil {
		return
	}

	task, ok := h.loadTask(c, team.ID)
	if !ok {
		return
	}

	comments, err := h.Comments.ListByTask(c.Request.Context(), task.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}

	respondList(c, comments, len(comments))
}
