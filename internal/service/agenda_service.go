package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"time-planner/internal/clock"
	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// TaskView is a display-ready agenda entry: a task row with the day's habit
// state overlaid. The reconciler never writes back to the source rows.
type TaskView struct {
	model.Task
	HabitID *uint `json:"habit_id"`
}

// SearchQuery is the search-mode input: a title substring plus post-filters
// applied in the fixed order notes-present, date range, pagination,
// unfinished-only.
type SearchQuery struct {
	Text       string `json:"text"`
	Notes      bool   `json:"notes"`
	Unfinished bool   `json:"unfinished"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// AgendaService merges task rows and habit-completion records into the
// derived daily agenda.
type AgendaService struct {
	tasks  *repository.TaskRepository
	habits *repository.HabitRepository
}

func NewAgendaService(tasks *repository.TaskRepository, habits *repository.HabitRepository) *AgendaService {
	return &AgendaService{tasks: tasks, habits: habits}
}

// BuildDay projects the agenda for one civil date: tasks dated on the day
// (plus evergreen routine markers) with the day's habit records overlaid,
// ordered by start then end time.
func (s *AgendaService) BuildDay(ctx context.Context, date string) ([]TaskView, error) {
	tasks, err := s.tasks.ListForDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("build agenda: %w", err)
	}
	habits, err := s.habits.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("build agenda: %w", err)
	}

	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, overlay(task, habits))
	}

	sort.SliceStable(views, func(i, j int) bool {
		if c := clock.Compare(sortClock(views[i].StartTime), sortClock(views[j].StartTime)); c != 0 {
			return c < 0
		}
		return clock.Compare(sortClock(views[i].EndTime), sortClock(views[j].EndTime)) < 0
	})
	return views, nil
}

// overlay applies the habit completion state to a single task. Precedence:
// habit done, habit procrastinated, bare routine marker, then the task's own
// stored flags. A matching habit contributes its notes and identity no
// matter which branch fired.
func overlay(task model.Task, habits []model.Habit) TaskView {
	view := TaskView{Task: task}

	habit := matchHabit(task.Title, habits)
	if habit == nil {
		if task.IsRoutine() {
			view.Completed = false
			view.NotCompleted = false
		}
		return view
	}

	switch {
	case habit.Done:
		view.Completed = true
		view.NotCompleted = false
	case habit.Procrastinated:
		view.NotCompleted = true
		view.Completed = false
	case task.IsRoutine():
		view.Completed = false
		view.NotCompleted = false
	}
	view.Notes = habit.Notes
	id := habit.ID
	view.HabitID = &id
	return view
}

// matchHabit finds the habit whose task name is a case-insensitive substring
// of the title. First textual match wins when several qualify.
func matchHabit(title string, habits []model.Habit) *model.Habit {
	lower := strings.ToLower(title)
	for i := range habits {
		if strings.Contains(lower, strings.ToLower(habits[i].TaskName)) {
			return &habits[i]
		}
	}
	return nil
}

// Search projects a text/date-range view over all tasks and habits. Habit
// records whose name matches a task title exactly become synthetic agenda
// rows carrying the habit's own date and weight; routine-marker task rows
// are dropped in favor of those.
func (s *AgendaService) Search(ctx context.Context, query SearchQuery) ([]TaskView, error) {
	tasks, err := s.tasks.SearchByTitle(ctx, query.Text)
	if err != nil {
		return nil, fmt.Errorf("search agenda: %w", err)
	}
	habits, err := s.habits.SearchByName(ctx, query.Text)
	if err != nil {
		return nil, fmt.Errorf("search agenda: %w", err)
	}

	byTitle := make(map[string]model.Task, len(tasks))
	for _, task := range tasks {
		if _, seen := byTitle[task.Title]; !seen {
			byTitle[task.Title] = task
		}
	}

	var views []TaskView
	for _, task := range tasks {
		if task.IsRoutine() {
			continue
		}
		views = append(views, TaskView{Task: task})
	}
	for _, habit := range habits {
		task, ok := byTitle[habit.TaskName]
		if !ok {
			continue
		}
		view := TaskView{Task: task}
		view.Date = habit.Date
		view.Weight = habit.Weight
		view.Completed = habit.Done
		view.NotCompleted = habit.Procrastinated
		view.Notes = habit.Notes
		id := habit.ID
		view.HabitID = &id
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Date != views[j].Date {
			return views[i].Date < views[j].Date
		}
		if c := clock.Compare(sortClock(views[i].StartTime), sortClock(views[j].StartTime)); c != 0 {
			return c < 0
		}
		return clock.Compare(sortClock(views[i].EndTime), sortClock(views[j].EndTime)) < 0
	})

	// Post-filter order is part of the observed behavior: pagination happens
	// before the unfinished filter.
	if query.Notes {
		views = filterViews(views, func(v TaskView) bool { return v.Notes != nil })
	}
	if query.StartDate != "" && query.EndDate != "" {
		views = filterViews(views, func(v TaskView) bool {
			return v.Date >= query.StartDate && v.Date <= query.EndDate
		})
	}
	if query.Page > 0 && query.Limit > 0 {
		start := (query.Page - 1) * query.Limit
		if start >= len(views) {
			views = nil
		} else {
			end := start + query.Limit
			if end > len(views) {
				end = len(views)
			}
			views = views[start:end]
		}
	}
	if query.Unfinished {
		views = filterViews(views, func(v TaskView) bool { return !v.Completed })
	}
	return views, nil
}

func filterViews(views []TaskView, keep func(TaskView) bool) []TaskView {
	out := views[:0]
	for _, v := range views {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// sortClock parses a stored time for ordering. Unparseable values sort last;
// relative sentinels keep their encoded minute value and interleave with
// absolute times.
func sortClock(value string) clock.Clock {
	c, err := clock.Parse(value)
	if err != nil {
		return clock.Clock{Kind: clock.Absolute, Minutes: 1 << 20}
	}
	return c
}
