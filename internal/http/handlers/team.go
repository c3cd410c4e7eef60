package handlers

import (
	"errors"
	"net/http"
	"strings"

	"teamtasks/internal/repository"
	"teamtasks/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	UserID int64 `json:"userId"`
}

func (h *Handler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := service.RequiredErrors(map[string]string{"name": req.Name}, "name"); len(errs) > 0 {
		fail(c, http.StatusBadRequest, strings.Join(errs, ", "))
		return
	}

	ctx := c.Request.Context()
	userID := getUserID(c)

	teamID, err := h.Teams.Create(ctx, req.Name, req.Description, userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusCreated, team)
}

// GetMyTeams lists every team the caller belongs to, newest first.
func (h *Handler) GetMyTeams(c *gin.Context) {
	teams, err := h.Teams.ListByMember(c.Request.Context(), getUserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondList(c, teams, len(teams))
}

func (h *Handler) GetTeam(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		fail(c, http.StatusNotFound, "Team not found")
		return
	}

	team, err := h.Teams.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Team not found")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	if !team.HasMember(getUserID(c)) {
		fail(c, http.StatusForbidden, "You are not a member of this team")
		return
	}

	respondData(c, http.StatusOK, team)
}

func (h *Handler) AddMember(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		fail(c, http.StatusNotFound, "Team not found")
		return
	}

	ctx := c.Request.Context()

	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Team not found")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	if !team.IsCreator(getUserID(c)) {
		fail(c, http.StatusForbidden, "Only team creator can add members")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		fail(c, http.StatusBadRequest, "userId is required")
		return
	}

	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	added, err := h.Teams.AddMember(ctx, teamID, req.UserID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if !added {
		fail(c, http.StatusBadRequest, "User is already a member of this team")
		return
	}

	updated, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, updated)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		fail(c, http.StatusNotFound, "Team not found")
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		fail(c, http.StatusBadRequest, "User is not a member of this team")
		return
	}

	ctx := c.Request.Context()

	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Team not found")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	if !team.IsCreator(getUserID(c)) {
		fail(c, http.StatusForbidden, "Only team creator can remove members")
		return
	}

	// The creator stays in the member set for the team's lifetime.
	if userID == team.Creator.ID {
		fail(c, http.StatusBadRequest, "Cannot remove team creator")
		return
	}

	removed, err := h.Teams.RemoveMember(ctx, teamID, userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		fail(c, http.StatusBadRequest, "User is not a member of this team")
		return
	}

	updated, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, updated)
}
