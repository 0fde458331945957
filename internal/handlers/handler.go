package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pluggbulle/internal/app"
	"github.com/shrimpsizemoose/pluggbulle/internal/metrics"
)

type StudentHandler struct {
	service *app.Service
}

func NewStudentHandler(service *app.Service) *StudentHandler {
	return &StudentHandler{
		service: service,
	}
}

const prefix = "/api/v1/students/{student}"

// Register wires every student route onto mux.
func Register(mux *http.ServeMux, h *StudentHandler) {
	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"POST " + prefix + "/subjects", h.HandleCreateSubject},
		{"GET " + prefix + "/subjects", h.HandleListSubjects},
		{"DELETE " + prefix + "/subjects/{id}", h.HandleDeleteSubject},

		{"POST " + prefix + "/activities", h.HandleCreateActivity},
		{"GET " + prefix + "/activities", h.HandleListActivities},
		{"PATCH " + prefix + "/activities/{id}/status", h.HandleActivityStatus},
		{"PATCH " + prefix + "/activities/{id}/grade", h.HandleActivityGrade},
		{"DELETE " + prefix + "/activities/{id}", h.HandleDeleteActivity},

		{"POST " + prefix + "/attendance", h.HandleRecordAttendance},
		{"GET " + prefix + "/attendance", h.HandleListAttendance},

		{"GET " + prefix + "/profile", h.HandleGetProfile},
		{"PUT " + prefix + "/profile", h.HandlePutProfile},

		{"GET " + prefix + "/dashboard", h.HandleDashboard},
		{"GET " + prefix + "/score", h.HandleScore},
		{"GET " + prefix + "/risk", h.HandleRisk},
		{"GET " + prefix + "/priorities", h.HandlePriorities},
		{"GET " + prefix + "/weekly", h.HandleWeekly},
		{"GET " + prefix + "/grade-needed/{subject}", h.HandleGradeNeeded},
	}
	for _, rt := range routes {
		mux.Handle(rt.pattern, instrument(rt.pattern, rt.handler))
	}
	mux.HandleFunc("GET /healthz", HandleHealth)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func instrument(pattern string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			duration := time.Since(start).Seconds()
			metrics.APIRequestDuration.WithLabelValues(
				pattern,
				r.Method,
				strconv.Itoa(rec.status),
			).Observe(duration)
		}()
		next(rec, r)
	})
}

// guard runs the header, student and token checks shared by every route.
func (h *StudentHandler) guard(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
		return "", false
	}

	student := r.PathValue("student")
	if student == "" {
		logger.Error.Printf("Failed to extract student from path: %s", r.URL.Path)
		http.Error(w, "Invalid student id specified", http.StatusBadRequest)
		return "", false
	}

	if err := h.service.ValidateAuthAndStudent(r, student); err != nil {
		logger.Error.Printf("Auth failed for %s: %v", student, err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return student, true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Debug.Printf("Bad request body on %s: %v", r.URL.Path, err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, app.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case app.IsNotFound(err):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, app.ErrUnauthorized):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	default:
		logger.Error.Printf("Failed to %s: %v", action, err)
		http.Error(w, "Failed to "+action, http.StatusInternalServerError)
	}
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
