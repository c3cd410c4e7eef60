package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"teamtasks/internal/domain"
	"teamtasks/internal/http/handlers"
	"teamtasks/internal/http/middleware"
	"teamtasks/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// envelope mirrors the wire format for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Total   *int            `json:"total"`
	Page    *int            `json:"page"`
	Pages   *int            `json:"pages"`
}

type testEnv struct {
	router *gin.Engine
	db     *memDB
	events *fakeNotifier
}

// newTestEnv wires the handlers onto a gin router against in-memory stores,
// with the same route shape as production.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "handler-test-secret")
	service.InitJWT()

	db := newMemDB()
	events := &fakeNotifier{}
	h := &handlers.Handler{
		Users:    fakeUsers{db},
		Teams:    fakeTeams{db},
		Tasks:    fakeTasks{db},
		Comments: fakeComments{db},
		Events:   events,
	}

	r := gin.New()
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	teams := api.Group("/teams")
	teams.Use(middleware.JWT())
	teams.POST("", h.CreateTeam)
	teams.GET("", h.GetMyTeams)
	teams.GET("/:teamId", h.GetTeam)
	teams.POST("/:teamId/members", h.AddMember)
	teams.DELETE("/:teamId/members/:userId", h.RemoveMember)

	tasks := teams.Group("/:teamId/tasks")
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.GetTasks)
	tasks.GET("/:taskId", h.GetTask)
	tasks.PUT("/:taskId", h.UpdateTask)
	tasks.DELETE("/:taskId", h.DeleteTask)

	comments := tasks.Group("/:taskId/comments")
	comments.POST("", h.AddComment)
	comments.GET("", h.GetComments)

	return &testEnv{router: r, db: db, events: events}
}

// do sends a request through the router and decodes the envelope.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w.Code, env
}

// seedUser inserts a user directly and returns its id and a valid token.
func (e *testEnv) seedUser(t *testing.T, name, email string) (int64, string) {
	t.Helper()

	u := &domain.User{Name: name, Email: email, PasswordHash: "x"}
	require.NoError(t, fakeUsers{e.db}.Create(context.Background(), u))

	token, err := service.GenerateJWT(u.ID)
	require.NoError(t, err)
	return u.ID, token
}

// seedTeam creates a team with the given creator.
func (e *testEnv) seedTeam(t *testing.T, creatorID int64, name string) int64 {
	t.Helper()

	id, err := fakeTeams{e.db}.Create(context.Background(), name, "", creatorID)
	require.NoError(t, err)
	return id
}

// seedTask creates a task directly in the store.
func (e *testEnv) seedTask(t *testing.T, teamID int64, title string, status domain.TaskStatus, assignedTo *int64, createdBy int64) int64 {
	t.Helper()

	id, err := fakeTasks{e.db}.Create(context.Background(), teamID, title, "", status, assignedTo, createdBy)
	require.NoError(t, err)
	return id
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
