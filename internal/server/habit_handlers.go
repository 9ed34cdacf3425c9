package server

import (
	"net/http"
)

// habitRequest is the upsert payload, keyed by (taskName, date).
type habitRequest struct {
	TaskName       string `json:"taskName"`
	Date           string `json:"date"`
	Done           bool   `json:"done"`
	Procrastinated bool   `json:"procrastinated"`
	Weight         int    `json:"weight"`
	Notes          string `json:"notes"`
}

func (s *Server) UpsertHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TaskName == "" {
		respondError(w, http.StatusBadRequest, "taskName is required")
		return
	}
	if req.Date == "" {
		req.Date = s.today()
	}

	habit, err := s.habits.UpsertStatus(r.Context(), req.TaskName, req.Date, req.Done, req.Procrastinated, req.Weight)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, habit)
}

func (s *Server) UpsertHabitNotes(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TaskName == "" {
		respondError(w, http.StatusBadRequest, "taskName is required")
		return
	}
	if req.Date == "" {
		req.Date = s.today()
	}

	habit, err := s.habits.UpsertNotes(r.Context(), req.TaskName, req.Date, req.Weight, req.Notes)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, habit)
}

func (s *Server) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.SearchByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, habits)
}

func (s *Server) GetHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	habit, err := s.habits.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, habit)
}

func (s *Server) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req habitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	habit, err := s.habits.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	habit.TaskName = req.TaskName
	habit.Date = req.Date
	habit.Done = req.Done
	habit.Procrastinated = req.Procrastinated
	if err := s.habits.Save(r.Context(), habit); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "habit updated"})
}

func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.habits.SoftDelete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "habit deleted"})
}

// DeleteHabitsByTask is the explicit cascade from task deletion: it removes
// every habit record whose name matches the given task title.
func (s *Server) DeleteHabitsByTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if err := s.tasks.DeleteHabitRecords(r.Context(), req.Title); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": req.Title})
}

func (s *Server) HabitGraph(w http.ResponseWriter, r *http.Request) {
	from, to := s.dateRange(r, 30)
	counts, err := s.points.HabitGraph(r.Context(), from, to)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}
