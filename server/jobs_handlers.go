package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ShahwaizZahid/Job-Listing/db"
	"github.com/ShahwaizZahid/Job-Listing/errors"
	"github.com/ShahwaizZahid/Job-Listing/jobs"
)

// JobsHandler serves the job posting endpoints.
type JobsHandler struct {
	service *jobs.Service
	logger  *zap.SugaredLogger
}

// NewJobsHandler creates a handler backed by the given service
func NewJobsHandler(service *jobs.Service, log *zap.SugaredLogger) *JobsHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &JobsHandler{service: service, logger: log}
}

// HandleJobs handles requests to /jobs
// GET: List job postings with filters, sorting, and pagination
func (h *JobsHandler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	h.handleList(w, r)
}

// HandleCreate handles requests to /jobs/add
// POST: Create a job posting
func (h *JobsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var in jobs.CreateInput
	if err := readJSON(w, r, &in); err != nil {
		return
	}

	job, err := h.service.Create(r.Context(), &in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// HandleJobByID handles requests to /jobs/{id}
// GET: Fetch a single job posting
// PUT: Partially update a job posting
func (h *JobsHandler) HandleJobByID(w http.ResponseWriter, r *http.Request) {
	// Anything after /jobs/ that is not an integer id has no resource behind it.
	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/jobs/"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id)
	case http.MethodPut:
		h.handleUpdate(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// listResponse is the envelope for GET /jobs. Page and PageSize echo the
// normalized values actually applied, not the raw query input.
type listResponse struct {
	Jobs     []*jobs.Job `json:"jobs"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// validationResponse is the 400 payload carrying per-field messages
type validationResponse struct {
	Error  string           `json:"error"`
	Fields jobs.FieldErrors `json:"fields"`
}

// handleList translates query parameters into a filtered, paginated listing
func (h *JobsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := jobs.ListParams{
		Search:   q.Get("search"),
		Location: q.Get("location"),
		JobType:  q.Get("job_type"),
		Tag:      q.Get("tag"),
		Sort:     q.Get("sort"),
		Page:     intQuery(q, "page", jobs.DefaultPage),
		PageSize: intQuery(q, "page_size", jobs.DefaultPageSize),
	}
	params.Normalize()

	listed, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Jobs:     listed,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
}

// handleGet fetches a single job posting by id
func (h *JobsHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	job, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// handleUpdate applies a partial update to an existing job posting
func (h *JobsHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var in jobs.UpdateInput
	if err := readJSON(w, r, &in); err != nil {
		return
	}

	job, err := h.service.Update(r.Context(), id, &in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// writeServiceError maps service errors onto the HTTP error vocabulary.
// Anything outside the known taxonomy is logged and reported opaquely.
func (h *JobsHandler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *jobs.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:  "Validation failed",
			Fields: verr.Fields,
		})
	case errors.IsConflictError(err):
		writeError(w, http.StatusConflict, "Job already exists")
	case errors.IsNotFoundError(err):
		writeError(w, http.StatusNotFound, "Job not found")
	case db.IsDatabaseClosed(err):
		// Requests racing a graceful shutdown are noise, not failures
		h.logger.Warnw("Request hit closed database", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	default:
		h.logger.Errorw("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// intQuery parses an integer query parameter, falling back to the default
// when the parameter is absent or not an integer
func intQuery(q url.Values, key string, def int) int {
	raw := q.Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
