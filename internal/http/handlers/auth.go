package handlers

import (
	"errors"
	"net/http"
	"strings"

	"teamtasks/internal/domain"
	"teamtasks/internal/repository"
	"teamtasks/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthData is the payload returned by register and login.
type AuthData struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := service.RequiredErrors(map[string]string{
		"name": req.Name, "email": req.Email, "password": req.Password,
	}, "name", "email", "password"); len(errs) > 0 {
		fail(c, http.StatusBadRequest, strings.Join(errs, ", "))
		return
	}

	if !service.ValidEmail(req.Email) {
		fail(c, http.StatusBadRequest, "Please enter a valid email")
		return
	}

	if !service.ValidPassword(req.Password) {
		fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx := c.Request.Context()

	// Pre-check for a clean message; the unique index on lower(email) still
	// decides the race.
	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		fail(c, http.StatusBadRequest, "User already exists with this email")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	user := &domain.User{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			fail(c, http.StatusBadRequest, "User already exists with this email")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusCreated, AuthData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := service.RequiredErrors(map[string]string{
		"email": req.Email, "password": req.Password,
	}, "email", "password"); len(errs) > 0 {
		fail(c, http.StatusBadRequest, strings.Join(errs, ", "))
		return
	}

	if !service.ValidEmail(req.Email) {
		fail(c, http.StatusBadRequest, "Please enter a valid email")
		return
	}

	ctx := c.Request.Context()

	// Unknown email and wrong password answer identically so the response
	// does not reveal which one was wrong.
	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	if !service.CheckPassword(req.Password, user.PasswordHash) {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, AuthData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}
