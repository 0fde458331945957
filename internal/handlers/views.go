package handlers

import (
	"net/http"
)

func (h *StudentHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), student)
	if err != nil {
		writeError(w, err, "build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *StudentHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	score, err := h.service.Score(r.Context(), student)
	if err != nil {
		writeError(w, err, "compute score")
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (h *StudentHandler) HandleRisk(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	risk, err := h.service.Risk(r.Context(), student)
	if err != nil {
		writeError(w, err, "compute risk")
		return
	}
	writeJSON(w, http.StatusOK, risk)
}

func (h *StudentHandler) HandlePriorities(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	ranked, err := h.service.Priorities(r.Context(), student)
	if err != nil {
		writeError(w, err, "rank activities")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows": ranked,
	})
}

func (h *StudentHandler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	weekly, err := h.service.Weekly(r.Context(), student)
	if err != nil {
		writeError(w, err, "compute weekly report")
		return
	}
	writeJSON(w, http.StatusOK, weekly)
}

func (h *StudentHandler) HandleGradeNeeded(w http.ResponseWriter, r *http.Request) {
	student, ok := h.guard(w, r)
	if !ok {
		return
	}

	needed, err := h.service.GradeNeeded(r.Context(), student, r.PathValue("subject"))
	if err != nil {
		writeError(w, err, "compute grade needed")
		return
	}
	writeJSON(w, http.StatusOK, needed)
}
