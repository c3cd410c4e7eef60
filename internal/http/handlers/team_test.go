package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"teamtasks/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeamCreatorBecomesMember(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.seedUser(t, "Alice", "alice@example.com")

	code, resp := env.do(t, http.MethodPost, "/api/teams", aliceToken, map[string]string{
		"name":        "Platform",
		"description": "Infra work",
	})
	require.Equal(t, http.StatusCreated, code)
	require.True(t, resp.Success)

	team := decodeData[domain.Team](t, resp)
	assert.Equal(t, "Platform", team.Name)
	assert.Equal(t, aliceID, team.Creator.ID)
	require.Len(t, team.Members, 1)
	assert.Equal(t, aliceID, team.Members[0].ID)
}

func TestCreateTeamRequiresName(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "Alice", "alice@example.com")

	code, resp := env.do(t, http.MethodPost, "/api/teams", token, map[string]string{
		"description": "no name",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "name is required", resp.Message)
}

func TestGetMyTeamsListsOnlyMemberships(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.seedUser(t, "Alice", "alice@example.com")
	bobID, _ := env.seedUser(t, "Bob", "bob@example.com")

	env.seedTeam(t, aliceID, "Alpha")
	env.seedTeam(t, aliceID, "Beta")
	env.seedTeam(t, bobID, "Gamma")

	code, resp := env.do(t, http.MethodGet, "/api/teams", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)

	teams := decodeData[[]domain.Team](t, resp)
	require.Len(t, teams, 2)
	for _, team := range teams {
		assert.Equal(t, aliceID, team.Creator.ID)
	}
}

func TestGetTeamAccess(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.seedUser(t, "Alice", "alice@example.com")
	_, bobToken := env.seedUser(t, "Bob", "bob@example.com")
	teamID := env.seedTeam(t, aliceID, "Alpha")

	code, _ := env.do(t, http.MethodGet, fmt.Sprintf("/api/teams/%d", teamID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)

	// Existence is checked before membership, so unknown ids 404 for everyone.
	code, resp := env.do(t, http.MethodGet, "/api/teams/9999", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Team not found", resp.Message)

	code, resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/teams/%d", teamID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "You are not a member of this team", resp.Message)
}

func TestAddMember(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.seedUser(t, "Alice", "alice@example.com")
	bobID, bobToken := env.seedUser(t, "Bob", "bob@example.com")
	teamID := env.seedTeam(t, aliceID, "Alpha")
	path := fmt.Sprintf("/api/teams/%d/members", teamID)

	// Authorization comes before request validation: a non-creator gets 403
	// even with an empty body.
	code, resp := env.do(t, http.MethodPost, path, bobToken, map[string]any{})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Only team creator can add members", resp.Message)

	code, resp = env.do(t, http.MethodPost, path, aliceToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "userId is required", resp.Message)

	code, resp = env.do(t, http.MethodPost, path, aliceToken, map[string]any{"userId": 9999})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", resp.Message)

	code, resp = env.do(t, http.MethodPost, path, aliceToken, map[string]any{"userId": bobID})
	require.Equal(t, http.StatusOK, code)
	team := decodeData[domain.Team](t, resp)
	require.Len(t, team.Members, 2)

	code, resp = env.do(t, http.MethodPost, path, aliceToken, map[string]any{"userId": bobID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User is already a member of this team", resp.Message)
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.seedUser(t, "Alice", "alice@example.com")
	bobID, bobToken := env.seedUser(t, "Bob", "bob@example.com")
	carolID, _ := env.seedUser(t, "Carol", "carol@example.com")

	teamID := env.seedTeam(t, aliceID, "Alpha")
	_, err := fakeTeams{env.db}.AddMember(context.Background(), teamID, bobID)
	require.NoError(t, err)

	memberPath := func(userID int64) string {
		return fmt.Sprintf("/api/teams/%d/members/%d", teamID, userID)
	}

	// Only the creator may remove, even members they could otherwise remove.
	code, resp := env.do(t, http.MethodDelete, memberPath(bobID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Only team creator can remove members", resp.Message)

	code, resp = env.do(t, http.MethodDelete, memberPath(aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Cannot remove team creator", resp.Message)

	code, resp = env.do(t, http.MethodDelete, memberPath(carolID), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User is not a member of this team", resp.Message)

	code, resp = env.do(t, http.MethodDelete, memberPath(bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	team := decodeData[domain.Team](t, resp)
	require.Len(t, team.Members, 1)
	assert.Equal(t, aliceID, team.Members[0].ID)
}
