package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/desertthunder/topix/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TopicsHandler accepts topic batches the way the LMS backend does and keeps them in memory.
type TopicsHandler struct {
	mu     sync.RWMutex
	topics map[int64][]models.TopicRecord
}

// NewTopicsHandler creates an empty TopicsHandler.
func NewTopicsHandler() *TopicsHandler {
	return &TopicsHandler{topics: make(map[int64][]models.TopicRecord)}
}

// Routes returns the HTTP routes this handler serves.
func (h *TopicsHandler) Routes() []string {
	return []string{"/topic/multiple"}
}

// ServeHTTP accepts a batch on POST and lists a course's stored topics on GET ?courseID=N.
func (h *TopicsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// create validates a JSON array of topic records and stores it, replying 201 with the stored batch.
func (h *TopicsHandler) create(w http.ResponseWriter, r *http.Request) {
	var records []models.TopicRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	if len(records) == 0 {
		writeError(w, http.StatusBadRequest, "at least one topic is required")
		return
	}
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("topic %d: %s", i, formatValidationError(err)))
			return
		}
	}

	h.mu.Lock()
	for _, rec := range records {
		h.topics[rec.Course.CourseID] = append(h.topics[rec.Course.CourseID], rec)
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, records)
}

func (h *TopicsHandler) list(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(r.URL.Query().Get("courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		writeError(w, http.StatusBadRequest, "courseID query parameter must be a positive integer")
		return
	}
	writeJSON(w, http.StatusOK, h.Topics(courseID))
}

// Topics returns the records stored for courseID in arrival order, never nil.
func (h *TopicsHandler) Topics(courseID int64) []models.TopicRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]models.TopicRecord{}, h.topics[courseID]...)
}

func formatValidationError(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}

	e := errs[0]
	switch e.Tag() {
	case "required":
		return e.Namespace() + " is required"
	case "gt":
		return e.Namespace() + " must be greater than " + e.Param()
	case "gte":
		return e.Namespace() + " must be at least " + e.Param()
	default:
		return e.Namespace() + " validation failed: " + e.Tag()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
