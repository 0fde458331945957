package handlers

import (
	"net/http"

	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
	"github.com/shrimpsizemoose/pluggbulle/internal/scoring"
)

func (h *StudentHandler) HandleCreateSubject(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	var subject models.Subject
	if !decode(w, r, &subject) {
		return
	}
	subject.Student = student

	clashes, err := h.service.AddSubject(&subject)
	if err != nil {
		writeError(w, err, "save subject")
		return
	}
	if clashes == nil {
		clashes = []scoring.Conflict{}
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"subject":   subject,
		"conflicts": clashes,
	})
}

func (h *StudentHandler) HandleListSubjects(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	subjects, err := h.service.Store.ListSubjects(student)
	if err != nil {
		writeError(w, err, "fetch subjects")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows": subjects,
	})
}

func (h *StudentHandler) HandleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSubject(student, r.PathValue("id")); err != nil {
		writeError(w, err, "delete subject")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudentHandler) HandleCreateActivity(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	var activity models.Activity
	if !decode(w, r, &activity) {
		return
	}
	activity.Student = student

	if err := h.service.AddActivity(r.Context(), &activity); err != nil {
		writeError(w, err, "save activity")
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (h *StudentHandler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	activities, err := h.service.Store.ListActivities(student)
	if err != nil {
		writeError(w, err, "fetch activities")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows": activities,
	})
}

func (h *StudentHandler) HandleActivityStatus(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	var body struct {
		Status models.Status `json:"status"`
	}
	if !decode(w, r, &body) {
		return
	}

	if err := h.service.SetActivityStatus(student, r.PathValue("id"), body.Status); err != nil {
		writeError(w, err, "update activity status")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudentHandler) HandleActivityGrade(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	// a null grade clears it
	var body struct {
		Grade null.Float64 `json:"grade"`
	}
	if !decode(w, r, &body) {
		return
	}

	if err := h.service.SetActivityGrade(student, r.PathValue("id"), body.Grade); err != nil {
		writeError(w, err, "update activity grade")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudentHandler) HandleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteActivity(student, r.PathValue("id")); err != nil {
		writeError(w, err, "delete activity")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudentHandler) HandleRecordAttendance(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	var record models.AttendanceRecord
	if !decode(w, r, &record) {
		return
	}
	record.Student = student

	if err := h.service.RecordAttendance(&record); err != nil {
		writeError(w, err, "save attendance")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *StudentHandler) HandleListAttendance(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	records, err := h.service.Store.ListAttendance(student)
	if err != nil {
		writeError(w, err, "fetch attendance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows": records,
	})
}

func (h *StudentHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Profile(student)
	if err != nil {
		writeError(w, err, "fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *StudentHandler) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	var profile models.Profile
	if !decode(w, r, &profile) {
		return
	}
	profile.Student = student

	if err := h.service.UpdateProfile(profile); err != nil {
		writeError(w, err, "save profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
