package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	jltest "github.com/ShahwaizZahid/Job-Listing/internal/testing"
	"github.com/ShahwaizZahid/Job-Listing/jobs"
)

// newTestServer builds a server over a fresh in-memory database. No
// listener is bound; tests drive the route mux directly.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(jltest.CreateTestDB(t), zaptest.NewLogger(t).Sugar(), Options{})
}

// doJSON performs a request against the mux, marshaling body when present
func doJSON(t *testing.T, mux *http.ServeMux, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(buf))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func fieldMessages(t *testing.T, body map[string]interface{}, field string) []interface{} {
	t.Helper()
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok, "response should carry a fields map")
	messages, ok := fields[field].([]interface{})
	require.True(t, ok, "field %s should carry messages", field)
	return messages
}

func seedJob(t *testing.T, srv *Server, in jobs.CreateInput) *jobs.Job {
	t.Helper()
	job, err := srv.Service().Create(context.Background(), &in)
	require.NoError(t, err)
	return job
}

func TestJobsAPI_CreateAndFetch(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	w := doJSON(t, mux, http.MethodPost, "/jobs/add", jobs.CreateInput{
		Title:          "Engineer",
		Company:        "Acme",
		Location:       "Remote",
		PostingDate:    "2024-03-15T10:30:00Z",
		PostingDateRaw: "2 days ago",
		JobType:        "Full-time",
		Tags:           "go,backend",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeMap(t, w)
	require.Len(t, created, 8)
	assert.Equal(t, "Engineer", created["title"])
	assert.Equal(t, "Acme", created["company"])
	assert.Equal(t, "Remote", created["location"])
	assert.Equal(t, "2024-03-15T10:30:00Z", created["posting_date"])
	assert.Equal(t, "2 days ago", created["posting_date_raw"])
	assert.Equal(t, "Full-time", created["job_type"])
	assert.Equal(t, "go,backend", created["tags"])
	assert.NotContains(t, created, "created_at")
	assert.NotContains(t, created, "updated_at")

	id, ok := created["id"].(float64)
	require.True(t, ok, "id should be numeric")
	require.Greater(t, id, float64(0))

	w = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/jobs/%d", int64(id)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeMap(t, w))
}

func TestJobsAPI_Create_ValidationFailed(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	w := doJSON(t, mux, http.MethodPost, "/jobs/add", jobs.CreateInput{
		JobType:     "Freelance",
		PostingDate: "not-a-date",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeMap(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Contains(t, fieldMessages(t, body, "title"), "Title is required")
	assert.Contains(t, fieldMessages(t, body, "company"), "Company is required")
	assert.Contains(t, fieldMessages(t, body, "location"), "Location is required")
	require.NotEmpty(t, fieldMessages(t, body, "job_type"))
	require.NotEmpty(t, fieldMessages(t, body, "posting_date"))

	// Nothing was persisted
	w = doJSON(t, mux, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeMap(t, w)["total"])
}

func TestJobsAPI_Create_Duplicate(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	seedJob(t, srv, jobs.CreateInput{Title: "Engineer", Company: "Acme", Location: "Remote"})

	// Padding around the triple must not dodge the duplicate check
	w := doJSON(t, mux, http.MethodPost, "/jobs/add", jobs.CreateInput{
		Title:    "  Engineer ",
		Company:  "Acme  ",
		Location: " Remote",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeMap(t, w)
	assert.Equal(t, "Job already exists", body["error"])
	assert.NotContains(t, body, "fields")
}

func TestJobsAPI_Create_MalformedBody(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	req := httptest.NewRequest(http.MethodPost, "/jobs/add", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	errMsg, ok := decodeMap(t, w)["error"].(string)
	require.True(t, ok)
	assert.Contains(t, errMsg, "Invalid request body")
}

func TestJobsAPI_List_EmptyDefaults(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	w := doJSON(t, mux, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	assert.Equal(t, []interface{}{}, body["jobs"], "empty result should be [], not null")
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(10), body["page_size"])
}

func TestJobsAPI_List_FiltersConjunctive(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	seedJob(t, srv, jobs.CreateInput{Title: "Engineer", Company: "Acme", Location: "Remote", JobType: "Full-time"})
	seedJob(t, srv, jobs.CreateInput{Title: "Engineer", Company: "Acme", Location: "Onsite", JobType: "Contract"})
	seedJob(t, srv, jobs.CreateInput{Title: "Designer", Company: "Initech", Location: "Remote", JobType: "Full-time"})

	w := doJSON(t, mux, http.MethodGet, "/jobs?location=Remote&job_type=Full-time&search=engineer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	require.Equal(t, float64(1), body["total"])
	listed, ok := body["jobs"].([]interface{})
	require.True(t, ok)
	require.Len(t, listed, 1)
	job, ok := listed[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Engineer", job["title"])
	assert.Equal(t, "Remote", job["location"])
	assert.Equal(t, "Full-time", job["job_type"])

	// search also matches company, case-insensitively
	w = doJSON(t, mux, http.MethodGet, "/jobs?search=INITECH", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeMap(t, w)["total"])
}

func TestJobsAPI_List_PaginationAndClamp(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	for i := 1; i <= 25; i++ {
		seedJob(t, srv, jobs.CreateInput{
			Title:    fmt.Sprintf("Engineer %02d", i),
			Company:  "Acme",
			Location: "Remote",
		})
	}

	w := doJSON(t, mux, http.MethodGet, "/jobs?page=3&page_size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeMap(t, w)
	assert.Len(t, body["jobs"], 5)
	assert.Equal(t, float64(25), body["total"])
	assert.Equal(t, float64(3), body["page"])
	assert.Equal(t, float64(10), body["page_size"])

	// Oversized page_size is clamped and the clamp is echoed
	w = doJSON(t, mux, http.MethodGet, "/jobs?page_size=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeMap(t, w)
	assert.Equal(t, float64(100), body["page_size"])
	assert.Len(t, body["jobs"], 25)

	// Malformed and out-of-range paging falls back to the defaults
	w = doJSON(t, mux, http.MethodGet, "/jobs?page=banana&page_size=-3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeMap(t, w)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(10), body["page_size"])
	assert.Len(t, body["jobs"], 10)
}

func TestJobsAPI_List_Sort(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	seedJob(t, srv, jobs.CreateInput{Title: "Mid", Company: "Acme", Location: "Remote", PostingDate: "2024-02-01"})
	seedJob(t, srv, jobs.CreateInput{Title: "Old", Company: "Acme", Location: "Remote", PostingDate: "2024-01-01"})
	seedJob(t, srv, jobs.CreateInput{Title: "New", Company: "Acme", Location: "Remote", PostingDate: "2024-03-01"})

	listDates := func(t *testing.T, target string) []time.Time {
		t.Helper()
		w := doJSON(t, mux, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, w.Code)
		listed, ok := decodeMap(t, w)["jobs"].([]interface{})
		require.True(t, ok)

		dates := make([]time.Time, 0, len(listed))
		for _, item := range listed {
			job, ok := item.(map[string]interface{})
			require.True(t, ok)
			raw, ok := job["posting_date"].(string)
			require.True(t, ok)
			parsed, err := time.Parse(time.RFC3339, raw)
			require.NoError(t, err)
			dates = append(dates, parsed)
		}
		return dates
	}

	asc := listDates(t, "/jobs?sort=posting_date_asc")
	require.Len(t, asc, 3)
	for i := 1; i < len(asc); i++ {
		assert.False(t, asc[i].Before(asc[i-1]), "ascending sort out of order at %d", i)
	}

	// Omitted or unrecognized sort falls back to newest first
	for _, target := range []string{"/jobs", "/jobs?sort=bogus"} {
		desc := listDates(t, target)
		require.Len(t, desc, 3)
		for i := 1; i < len(desc); i++ {
			assert.False(t, desc[i].After(desc[i-1]), "descending sort out of order at %d", i)
		}
	}
}

func TestJobsAPI_Get_NotFound(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	w := doJSON(t, mux, http.MethodGet, "/jobs/999999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", decodeMap(t, w)["error"])

	// Non-integer ids name no resource either
	w = doJSON(t, mux, http.MethodGet, "/jobs/engineer", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", decodeMap(t, w)["error"])
}

func TestJobsAPI_Update_Partial(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	created := seedJob(t, srv, jobs.CreateInput{
		Title:    "Engineer",
		Company:  "Acme",
		Location: "Remote",
		JobType:  "Full-time",
		Tags:     "go",
	})

	w := doJSON(t, mux, http.MethodPut, fmt.Sprintf("/jobs/%d", created.ID),
		map[string]interface{}{"tags": "go,sql"})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeMap(t, w)
	assert.Equal(t, "go,sql", updated["tags"])
	assert.Equal(t, "Engineer", updated["title"])
	assert.Equal(t, "Acme", updated["company"])
	assert.Equal(t, "Remote", updated["location"])
	assert.Equal(t, "Full-time", updated["job_type"])

	// And it stuck
	w = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/jobs/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go,sql", decodeMap(t, w)["tags"])
}

func TestJobsAPI_Update_EmptyPayload(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	created := seedJob(t, srv, jobs.CreateInput{Title: "Engineer", Company: "Acme", Location: "Remote"})

	w := doJSON(t, mux, http.MethodPut, fmt.Sprintf("/jobs/%d", created.ID), map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeMap(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Contains(t, fieldMessages(t, body, "payload"), "At least one field required")
}

func TestJobsAPI_Update_InvalidJobType(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	created := seedJob(t, srv, jobs.CreateInput{Title: "Engineer", Company: "Acme", Location: "Remote", JobType: "Full-time"})

	w := doJSON(t, mux, http.MethodPut, fmt.Sprintf("/jobs/%d", created.ID),
		map[string]interface{}{"job_type": "Freelance"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, fieldMessages(t, decodeMap(t, w), "job_type"))

	// Rejected update leaves the record untouched
	w = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/jobs/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Full-time", decodeMap(t, w)["job_type"])
}

func TestJobsAPI_Update_NotFound(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	w := doJSON(t, mux, http.MethodPut, "/jobs/424242", map[string]interface{}{"title": "X"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", decodeMap(t, w)["error"])
}

func TestJobsAPI_Update_ClearPostingDate(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	created := seedJob(t, srv, jobs.CreateInput{
		Title:       "Engineer",
		Company:     "Acme",
		Location:    "Remote",
		PostingDate: "2024-03-15T10:30:00Z",
	})

	w := doJSON(t, mux, http.MethodPut, fmt.Sprintf("/jobs/%d", created.ID),
		map[string]interface{}{"posting_date": ""})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeMap(t, w)
	require.Contains(t, updated, "posting_date")
	assert.Nil(t, updated["posting_date"])
}

func TestJobsAPI_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.setupHTTPRoutes()

	created := seedJob(t, srv, jobs.CreateInput{Title: "Engineer", Company: "Acme", Location: "Remote"})

	for _, tc := range []struct {
		method string
		target string
	}{
		{http.MethodPost, "/jobs"},
		{http.MethodGet, "/jobs/add"},
		{http.MethodDelete, fmt.Sprintf("/jobs/%d", created.ID)},
		{http.MethodPatch, fmt.Sprintf("/jobs/%d", created.ID)},
	} {
		w := doJSON(t, mux, tc.method, tc.target, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", tc.method, tc.target)
		assert.Equal(t, "Method not allowed", decodeMap(t, w)["error"])
	}
}

func TestJobsAPI_ListFailure(t *testing.T) {
	db := jltest.CreateTestDB(t)
	srv := New(db, zaptest.NewLogger(t).Sugar(), Options{})
	mux := srv.setupHTTPRoutes()

	// Kill the database out from under the handler
	require.NoError(t, db.Close())

	w := doJSON(t, mux, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeMap(t, w)["error"])
}
