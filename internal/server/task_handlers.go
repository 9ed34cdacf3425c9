package server

import (
	"net/http"

	"time-planner/internal/service"
)

// agendaRequest selects between the dated agenda projection and the search
// projection. An empty date means today in the planner's timezone.
type agendaRequest struct {
	Date   string               `json:"date"`
	Search *service.SearchQuery `json:"search"`
}

func (s *Server) Agenda(w http.ResponseWriter, r *http.Request) {
	var req agendaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Search != nil {
		views, err := s.agenda.Search(r.Context(), *req.Search)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, views)
		return
	}

	date := req.Date
	if date == "" {
		date = s.today()
	}
	views, err := s.agenda.BuildDay(r.Context(), date)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input service.TaskInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Date == "" {
		input.Date = s.today()
	}

	task, duplicate, err := s.tasks.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if duplicate {
		respondJSON(w, http.StatusConflict, map[string]string{"message": "task already exists"})
		return
	}
	respondJSON(w, http.StatusCreated, map[string]uint{"id": task.ID})
}

func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task, err := s.tasks.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var update service.TaskUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	if err := s.tasks.Update(r.Context(), id, update); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "task updated"})
}

// toggleRequest carries a flag toggle plus the civil date the toggle applies
// to; empty means today.
type toggleRequest struct {
	Completed    *bool  `json:"completed"`
	NotCompleted *bool  `json:"not_completed"`
	Five         *bool  `json:"five"`
	Reassign     *bool  `json:"reassign"`
	Date         string `json:"date"`
}

func (req *toggleRequest) day(s *Server) string {
	if req.Date == "" {
		return s.today()
	}
	return req.Date
}

func (s *Server) SetCompleted(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Completed == nil {
		respondError(w, http.StatusBadRequest, "completed is required")
		return
	}
	task, err := s.tasks.SetCompleted(r.Context(), id, *req.Completed, req.day(s))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) SetNotCompleted(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.NotCompleted == nil {
		respondError(w, http.StatusBadRequest, "not_completed is required")
		return
	}
	task, err := s.tasks.SetNotCompleted(r.Context(), id, *req.NotCompleted, req.day(s))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) SetFive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Five == nil {
		respondError(w, http.StatusBadRequest, "five is required")
		return
	}
	if err := s.tasks.SetFive(r.Context(), id, *req.Five); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "task updated"})
}

func (s *Server) SetReassign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Reassign == nil {
		respondError(w, http.StatusBadRequest, "reassign is required")
		return
	}
	if err := s.tasks.SetReassign(r.Context(), id, *req.Reassign); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "task updated"})
}

func (s *Server) SetTaskNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.tasks.SetNotes(r.Context(), id, req.Notes); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"notes": req.Notes})
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.tasks.SoftDelete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func (s *Server) PurgeTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.tasks.Purge(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func (s *Server) PromoteReminders(w http.ResponseWriter, r *http.Request) {
	count, err := s.promotions.PromoteDueReminders(r.Context(), s.today())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"moved":   count,
	})
}

type blocksRequest struct {
	Slot int    `json:"slot"`
	Rest int    `json:"rest"`
	Time string `json:"time"`
}

func (s *Server) LayoutBlocks(w http.ResponseWriter, r *http.Request) {
	var req blocksRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tasks, err := s.blocks.LayoutBlocks(r.Context(), req.Slot, req.Rest, req.Time, s.today())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"tasks": tasks})
}

func (s *Server) PointsToday(w http.ResponseWriter, r *http.Request) {
	summary, err := s.points.Today(r.Context(), s.today())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) PointsGraph(w http.ResponseWriter, r *http.Request) {
	from, to := s.dateRange(r, 30)
	series, err := s.points.RangeSeries(r.Context(), from, to)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}
