package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-planner/internal/model"
	"time-planner/internal/service"
)

func TestPointsToday(t *testing.T) {
	env := newTestEnv(t)
	points := service.NewPointsService(env.tasks, env.habits)
	ctx := context.Background()

	seedTask(t, env, model.Task{Title: "report", Date: day, Weight: 5, Completed: true})
	seedTask(t, env, model.Task{Title: "errand", Date: day, Weight: 2, NotCompleted: true})
	seedTask(t, env, model.Task{Title: "open item", Date: day, Weight: 1})
	seedTask(t, env, model.Task{Title: "yesterday", Date: "2024-03-14", Weight: 9, Completed: true})
	seedTask(t, env, model.Task{Title: "Gym (i get to do it)", Date: "2024-01-01", Weight: 3})

	_, err := env.habits.UpsertStatus(ctx, "Gym", day, true, false, 3)
	require.NoError(t, err)
	_, err = env.habits.UpsertStatus(ctx, "Read", day, false, true, 2)
	require.NoError(t, err)

	summary, err := points.Today(ctx, day)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.CompletedPoints)
	assert.Equal(t, 2, summary.NotCompletedPoints)
	assert.Equal(t, 8, summary.TotalPoints)
	assert.Equal(t, 3, summary.HabitDonePoints)
	assert.Equal(t, 2, summary.HabitProcrastinated)
	assert.Equal(t, 3, summary.TotalRoutinePoints)
}

func TestPointsTodayRoutineCountsFromItsDateOnward(t *testing.T) {
	env := newTestEnv(t)
	points := service.NewPointsService(env.tasks, env.habits)
	ctx := context.Background()

	seedTask(t, env, model.Task{Title: "Gym (i get to do it)", Date: "2024-06-01", Weight: 3})

	summary, err := points.Today(ctx, day)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalRoutinePoints)

	summary, err = points.Today(ctx, "2024-06-02")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalRoutinePoints)
}

func TestPointsRangeSeries(t *testing.T) {
	env := newTestEnv(t)
	points := service.NewPointsService(env.tasks, env.habits)
	ctx := context.Background()

	seedTask(t, env, model.Task{Title: "a", Date: "2024-03-10", Weight: 2, Completed: true})
	seedTask(t, env, model.Task{Title: "b", Date: "2024-03-12", Weight: 4, NotCompleted: true})
	// Marker rows are excluded from the per-day series.
	seedTask(t, env, model.Task{Title: "Gym (i get to do it)", Date: "2024-03-10", Weight: 3})

	_, err := env.habits.UpsertStatus(ctx, "Gym", "2024-03-12", true, false, 3)
	require.NoError(t, err)
	// Habit-only days do not appear in the series.
	_, err = env.habits.UpsertStatus(ctx, "Gym", "2024-03-11", true, false, 3)
	require.NoError(t, err)

	series, err := points.RangeSeries(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, series, 2)

	// Newest day first.
	assert.Equal(t, "2024-03-12", series[0].Date)
	assert.Equal(t, 4, series[0].NotCompletedPoints)
	assert.Equal(t, 3, series[0].HabitDonePoints)

	assert.Equal(t, "2024-03-10", series[1].Date)
	assert.Equal(t, 2, series[1].CompletedPoints)
	assert.Zero(t, series[1].HabitDonePoints)
}

func TestHabitGraphCounts(t *testing.T) {
	env := newTestEnv(t)
	points := service.NewPointsService(env.tasks, env.habits)
	ctx := context.Background()

	_, err := env.habits.UpsertStatus(ctx, "Gym", "2024-03-10", true, false, 3)
	require.NoError(t, err)
	_, err = env.habits.UpsertStatus(ctx, "Gym", "2024-03-11", false, true, 3)
	require.NoError(t, err)

	counts, err := points.HabitGraph(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, counts, 2)

	for _, row := range counts {
		assert.Equal(t, "Gym", row.TaskName)
		assert.Equal(t, 1, row.Total)
	}
}
