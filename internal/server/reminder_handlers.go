package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"time-planner/internal/service"
)

func (s *Server) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var input service.ReminderInput
	if !decodeBody(w, r, &input) {
		return
	}

	reminder, err := s.reminders.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reminder)
}

func (s *Server) ListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.reminders.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}

func (s *Server) ListRemindersRange(w http.ResponseWriter, r *http.Request) {
	startDate := chi.URLParam(r, "startDate")
	endDate := chi.URLParam(r, "endDate")
	if startDate == "" || endDate == "" {
		respondError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	reminders, err := s.reminders.ListRange(r.Context(), startDate, endDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}

func (s *Server) GetReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	reminder, err := s.reminders.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminder)
}

func (s *Server) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input service.ReminderInput
	if !decodeBody(w, r, &input) {
		return
	}

	if err := s.reminders.Update(r.Context(), id, input); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "reminder updated"})
}

func (s *Server) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.reminders.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "reminder deleted"})
}

// ToggleReminder flips completion. For repeating reminders the service also
// schedules the next occurrence, so the response carries the toggled row
// only.
func (s *Server) ToggleReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	reminder, err := s.reminders.ToggleCompleted(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminder)
}
