package api

import (
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"committee-tracker/backend/internal/models"
	"committee-tracker/backend/testutil"
)

// 管理者がログインして委員会を更新し、ダッシュボードに反映されるまでの一連の流れ
func TestAdminWorkflow(t *testing.T) {
	_, r, _, _ := testutil.SetupTestDB(t)

	login := map[string]string{"username": "admin", "password": "sbs2569"}
	w := testutil.DoJSON(t, r, http.MethodPost, "/api/auth/login", login, "")
	testutil.AssertStatus(t, http.StatusOK, w)

	auth := testutil.BasicAuth("admin", "sbs2569")
	for id := 1; id <= 7; id++ {
		body := map[string]any{"title": "done", "status": "completed", "percent": 100}
		w = testutil.DoJSON(t, r, http.MethodPut, "/api/admin/committees/"+strconv.Itoa(id), body, auth)
		testutil.AssertStatus(t, http.StatusOK, w)
	}

	w = testutil.DoJSON(t, r, http.MethodPut, "/api/admin/committees/8/tasks",
		`{"tasks":[{"text":"a","done":true},{"text":"b","done":false}]}`, auth)
	testutil.AssertStatus(t, http.StatusOK, w)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/summary", nil, "")
	testutil.AssertStatus(t, http.StatusOK, w)
	var s models.Summary
	testutil.DecodeJSON(t, w, &s)
	assert.ElementsMatch(t, []models.StatusCount{
		{Status: "completed", Count: 7},
		{Status: "not-started", Count: 3},
	}, s.Stats)
	assert.Equal(t, 70, s.AvgPercent)
	assert.Equal(t, 10, s.Total)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/committees", nil, "")
	testutil.AssertStatus(t, http.StatusOK, w)
	var committees []models.Committee
	testutil.DecodeJSON(t, w, &committees)
	require.Len(t, committees, 10)
	assert.Equal(t, "done", committees[0].Title)
	require.Len(t, committees[7].Tasks, 2)
	assert.Equal(t, "a", committees[7].Tasks[0].Text)
	assert.True(t, committees[7].Tasks[0].Done)
	assert.Equal(t, 1, committees[7].Tasks[1].SortOrder)
}

func TestConcurrentTaskReplacement(t *testing.T) {
	_, r, _, _ := testutil.SetupTestDB(t)
	auth := testutil.AdminAuth()

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i, id := range []int{1, 2} {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			w := testutil.DoJSON(t, r, http.MethodPut, "/api/admin/committees/"+strconv.Itoa(id)+"/tasks",
				`{"tasks":[{"text":"x","done":false},{"text":"y","done":true}]}`, auth)
			codes[i] = w.Code
		}(i, id)
	}
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusOK, code, "request %d", i)
	}
	for _, id := range []int{1, 2} {
		w := testutil.DoJSON(t, r, http.MethodGet, "/api/committees/"+strconv.Itoa(id), nil, "")
		var c models.Committee
		testutil.DecodeJSON(t, w, &c)
		require.Len(t, c.Tasks, 2)
		assert.Equal(t, "x", c.Tasks[0].Text)
		assert.Equal(t, "y", c.Tasks[1].Text)
	}
}
