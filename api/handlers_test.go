package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/habit-engine/api"
	"github.com/tallyhq/habit-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := api.NewHandler(store, api.NewMetrics())
	server := httptest.NewServer(api.NewRouter(handler, api.RouterOptions{EnableMetrics: true}))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createTask(t *testing.T, server *httptest.Server, body map[string]any) api.TaskDTO {
	t.Helper()
	var dto api.TaskDTO
	resp := doJSON(t, http.MethodPost, server.URL+"/api/tasks", body, &dto)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return dto
}

// =============================================================================
// TASK ENDPOINTS
// =============================================================================

func TestCreateAndListTasks(t *testing.T) {
	server := newTestServer(t)

	created := createTask(t, server, map[string]any{
		"title":       "morning run",
		"kind":        "routine",
		"base_points": "5",
		"max":         3,
	})
	assert.Equal(t, "routine", created.Kind)
	assert.Equal(t, 1, created.Target) // defaulted
	assert.Equal(t, 3, created.Max)
	assert.Equal(t, "5", created.BasePoints)
	assert.Equal(t, "1", created.Scalar) // defaulted

	var tasks []api.TaskDTO
	resp := doJSON(t, http.MethodGet, server.URL+"/api/tasks", nil, &tasks)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
}

func TestCreateTask_InvalidAttributesRejected(t *testing.T) {
	server := newTestServer(t)

	var errResp api.ErrorResponse
	resp := doJSON(t, http.MethodPost, server.URL+"/api/tasks", map[string]any{
		"title":       "broken",
		"kind":        "routine",
		"base_points": "5",
		"target":      0,
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid task", errResp.Error)
}

func TestUpdateTask(t *testing.T) {
	server := newTestServer(t)
	created := createTask(t, server, map[string]any{
		"title":       "morning run",
		"kind":        "routine",
		"base_points": "5",
	})

	var updated api.TaskDTO
	resp := doJSON(t, http.MethodPatch, server.URL+"/api/tasks/"+created.ID, map[string]any{
		"title":  "evening run",
		"reward": "2",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "evening run", updated.Title)
	assert.Equal(t, "2", updated.Reward)
}

func TestDeleteTask(t *testing.T) {
	server := newTestServer(t)
	created := createTask(t, server, map[string]any{
		"title":       "one shot",
		"kind":        "oneoff",
		"base_points": "3",
	})

	resp := doJSON(t, http.MethodDelete, server.URL+"/api/tasks/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/tasks/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// DAY AND PROGRESS ENDPOINTS
// =============================================================================

func TestDayProgressFlow(t *testing.T) {
	// GIVEN: a 5-point routine and a 10-point day target
	// WHEN: completing the routine twice and asking for progress
	// THEN: 10 points, ratio 1, day met

	server := newTestServer(t)
	task := createTask(t, server, map[string]any{
		"title":       "morning run",
		"kind":        "routine",
		"base_points": "5",
		"max":         3,
	})

	resp := doJSON(t, http.MethodPut, server.URL+"/api/days/2026-03-09/target", map[string]any{
		"target_points": "10",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var completion api.CompletionDTO
	url := server.URL + "/api/days/2026-03-09/tasks/" + task.ID + "/completions"
	resp = doJSON(t, http.MethodPost, url, nil, &completion)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, completion.Count)

	resp = doJSON(t, http.MethodPost, url, nil, &completion)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 2, completion.Count)

	var progress api.DayProgressDTO
	resp = doJSON(t, http.MethodGet, server.URL+"/api/days/2026-03-09/progress", nil, &progress)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "10", progress.TotalPoints)
	assert.Equal(t, "1", progress.ProgressRatio)
	assert.True(t, progress.Met)
	require.Len(t, progress.Tasks, 1)
	assert.Equal(t, "10", progress.Tasks[0].EarnedPoints)
	assert.Equal(t, 2, progress.Tasks[0].Completed)
}

func TestProgressFeedsNextDayStreak(t *testing.T) {
	// GIVEN: two consecutive met days recorded via /progress
	// WHEN: asking for the third day's streak
	// THEN: two streak days, bonus 0.1

	server := newTestServer(t)
	task := createTask(t, server, map[string]any{
		"title":       "morning run",
		"kind":        "routine",
		"base_points": "5",
	})

	for _, date := range []string{"2026-03-07", "2026-03-08"} {
		resp := doJSON(t, http.MethodPut, server.URL+"/api/days/"+date+"/target", map[string]any{
			"target_points": "5",
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		url := server.URL + "/api/days/" + date + "/tasks/" + task.ID + "/completions"
		resp = doJSON(t, http.MethodPost, url, nil, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var progress api.DayProgressDTO
		resp = doJSON(t, http.MethodGet, server.URL+"/api/days/"+date+"/progress", nil, &progress)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, progress.Met)
	}

	var streak api.StreakDTO
	resp := doJSON(t, http.MethodGet, server.URL+"/api/days/2026-03-09/streak", nil, &streak)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, streak.StreakDays)
	assert.Equal(t, "0.1", streak.StreakBonus)
}

func TestGetDay_UnconfiguredDateIsEmptyNotError(t *testing.T) {
	server := newTestServer(t)

	var day api.DayDTO
	resp := doJSON(t, http.MethodGet, server.URL+"/api/days/2026-03-09", nil, &day)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", day.TargetPoints)
	assert.Empty(t, day.Tasks)
}

func TestBadDateRejected(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/days/tomorrow/progress", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpointExposed(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
