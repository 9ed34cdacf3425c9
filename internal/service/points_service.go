package service

import (
	"context"
	"fmt"

	"time-planner/internal/repository"
)

// PointsSummary is the score snapshot for one day, including the running
// total a routine task contributes from its creation date onward.
type PointsSummary struct {
	Date                string `json:"date,omitempty"`
	CompletedPoints     int    `json:"completedPoints"`
	NotCompletedPoints  int    `json:"notCompletedPoints"`
	HabitDonePoints     int    `json:"habitDonePoints"`
	HabitProcrastinated int    `json:"habitProcrastinatedPoints"`
	TotalPoints         int    `json:"totalPoints"`
	TotalRoutinePoints  int    `json:"totalPointsHabits"`
}

// PointsService aggregates task and habit weight into the point metrics the
// dashboard renders.
type PointsService struct {
	tasks  *repository.TaskRepository
	habits *repository.HabitRepository
}

func NewPointsService(tasks *repository.TaskRepository, habits *repository.HabitRepository) *PointsService {
	return &PointsService{tasks: tasks, habits: habits}
}

// Today builds the score snapshot for one civil date.
func (s *PointsService) Today(ctx context.Context, date string) (PointsSummary, error) {
	taskPoints, err := s.tasks.SumDayWeights(ctx, date)
	if err != nil {
		return PointsSummary{}, fmt.Errorf("points: %w", err)
	}
	habitPoints, err := s.habits.SumDayWeights(ctx, date)
	if err != nil {
		return PointsSummary{}, fmt.Errorf("points: %w", err)
	}
	routines, err := s.tasks.ListRoutineWeights(ctx)
	if err != nil {
		return PointsSummary{}, fmt.Errorf("points: %w", err)
	}

	return PointsSummary{
		CompletedPoints:     taskPoints.Completed,
		NotCompletedPoints:  taskPoints.NotCompleted,
		HabitDonePoints:     habitPoints.Done,
		HabitProcrastinated: habitPoints.Procrastinated,
		TotalPoints:         taskPoints.Total,
		TotalRoutinePoints:  routineWeightThrough(routines, date),
	}, nil
}

// RangeSeries merges per-day task and habit point totals over a date range,
// newest day first. Days come from the task side; days with only habit
// records do not appear, matching the dashboard's historical behavior.
func (s *PointsService) RangeSeries(ctx context.Context, fromDate, toDate string) ([]PointsSummary, error) {
	taskRows, err := s.tasks.PointsByDay(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("points series: %w", err)
	}
	habitRows, err := s.habits.PointsByDay(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("points series: %w", err)
	}
	routines, err := s.tasks.ListRoutineWeights(ctx)
	if err != nil {
		return nil, fmt.Errorf("points series: %w", err)
	}

	habitByDate := make(map[string]repository.HabitDayPoints, len(habitRows))
	for _, row := range habitRows {
		habitByDate[row.Date] = row
	}

	series := make([]PointsSummary, 0, len(taskRows))
	for _, row := range taskRows {
		habit := habitByDate[row.Date]
		series = append(series, PointsSummary{
			Date:                row.Date,
			CompletedPoints:     row.Completed,
			NotCompletedPoints:  row.NotCompleted,
			HabitDonePoints:     habit.Done,
			HabitProcrastinated: habit.Procrastinated,
			TotalPoints:         row.Total,
			TotalRoutinePoints:  routineWeightThrough(routines, row.Date),
		})
	}
	return series, nil
}

// HabitGraph tallies habit completions per name and day over a date range.
func (s *PointsService) HabitGraph(ctx context.Context, fromDate, toDate string) ([]repository.HabitDayCount, error) {
	return s.habits.GraphCounts(ctx, fromDate, toDate)
}

// routineWeightThrough sums the weight of routine tasks created on or before
// the given date.
func routineWeightThrough(routines []repository.RoutineWeight, date string) int {
	total := 0
	for _, r := range routines {
		if r.Date <= date {
			total += r.Weight
		}
	}
	return total
}
