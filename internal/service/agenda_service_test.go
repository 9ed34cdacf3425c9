package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-planner/internal/model"
	"time-planner/internal/service"
)

const day = "2024-03-15"

func seedTask(t *testing.T, env *testEnv, task model.Task) model.Task {
	t.Helper()
	require.NoError(t, env.tasks.Create(context.Background(), &task))
	return task
}

func TestBuildDayHabitDoneWinsOverStoredFlags(t *testing.T) {
	env := newTestEnv(t)
	agenda := service.NewAgendaService(env.tasks, env.habits)
	ctx := context.Background()

	seedTask(t, env, model.Task{Title: "Gym (i get to do it)", Date: "2020-01-01", StartTime: "7:00 AM", EndTime: "8:00 AM"})
	_, err := env.habits.UpsertStatus(ctx, "Gym", day, true, false, 3)
	require.NoError(t, err)

	views, err := agenda.BuildDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.True(t, views[0].Completed)
	assert.False(t, views[0].NotCompleted)
	require.NotNil(t, views[0].HabitID)
}

func TestBuildDayHabitProcrastinated(t *testing.T) {
	env := newTestEnv(t)
	agenda := service.NewAgendaService(env.tasks, env.habits)
	ctx := context.Background()

	seedTask(t, env, model.Task{Title: "Gym (i get to do it)", Date: day, Completed: true})
	_, err := env.habits.UpsertStatus(ctx, "Gym", day, false, true, 3)
	require.NoError(t, err)

	views, err := agenda.BuildDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.False(t, views[0].Completed)
	assert.True(t, views[0].NotCompleted)
}

func TestBuildDayBareHabitClearsRoutineFlags(t *testing.T) {
	env := newTestEnv(t)
	agenda := service.NewAgendaService(env.tasks, env.habits)
	ctx := context.Background()

	seedTask(t, env, model.Task{Title: "Read (i get to do it)", Date: day, Completed: true, NotCompleted: true})
	habit, err := env.habits.UpsertNotes(ctx, "Read", day, 2, "two chapters")
	require.NoError(t, err)

	views, err := agenda.BuildDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.False(t, views[0].Completed)
	assert.False(t, views[0].NotCompleted)
	require.NotNil(t, views[0].Notes)
	assert.Equal(t, "two chapters", *views[0].Notes)
	require.NotNil(t, views[0].HabitID)
	assert.Equal(t, habit.ID, *views[0].HabitID)
}

func TestBuildDayRoutineWithoutHabitShowsUnmarked(t *testing.T) {
	env := newTestEnv(t)
	agenda := service.NewAgendaService(env.tasks, env.habits)

	seedTask(t, env, model.Task{Title: "Stretch (i get to do it)", Date: "2020-01-01", Completed: true})

	views, err := agenda.BuildDay(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.False(t, views[0].Completed)
	assert.False(t, views[0].NotCompleted)
	assert.Nil(t, views[0].HabitID)
}

func TestBuildDayPlainTaskKeepsOwnFlags(t *testing.T) {
	env := newTestEnv(t)
	agenda := service.NewAgendaService(env.tasks, env.habits)

	seedTask(t, env, model.Task{Title: "File taxes", Date: day, Completed: true})

	views, err := agenda.BuildDay(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Completed)
	assert.Nil(t, views[0].HabitID)
}

func TestBuildDayOrdersByStartThenEnd(t *testing.T) {
	env := newTestEnv(t)
	agenda := service.NewAgendaService(env.tasks, env.habits)

	seedTask(t, env, model.Task{Title: "lunch", Date: day, StartTime: "12:00 PM", EndTime: "1:00 PM"})
	seedTask(t, env, model.Task{Title: "standup", Date: day, StartTime: "9:30 AM", EndTime: "9:45 AM"})
	seedTask(t, env, model.Task{Title: "email", Date: day, StartTime: "9:30 AM", EndTime: "9:40 AM"})
	seedTask(t, env, model.Task{Title: "untimed", Date: day})

	views, err := agenda.BuildDay(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, views, 4)

	titles := []string{views[0].Title, views[1].Title, views[2].Title, views[3].Title}
	assert.Equal(t, []string{"email", "standup", "lunch", "untimed"}, titles)
}

func TestSearchSyntheticHabitRowsReplaceMarkerTasks(t *testing.T) {
	env := newTestEnv(t)
	agenda := service.NewAgendaService(env.tasks, env.habits)
	ctx := context.Background()

	task := seedTask(t, env, model.Task{Title: "Gym", Date: day, Weight: 5, StartTime: "7:00 AM", EndTime: "8:00 AM"})
	seedTask(t, env, model.Task{Title: "Gym (i get to do it)", Date: day})
	habit, err := env.habits.UpsertStatus(ctx, "Gym", "2024-03-16", true, false, 3)
	require.NoError(t, err)

	views, err := agenda.Search(ctx, service.SearchQuery{Text: "Gym"})
	require.NoError(t, err)
	require.Len(t, views, 2)

	// The marker row is dropped; the plain task row comes first by date.
	assert.Equal(t, task.ID, views[0].ID)
	assert.Equal(t, day, views[0].Date)
	assert.Nil(t, views[0].HabitID)

	// The habit produces a synthetic row with its own date and weight.
	require.NotNil(t, views[1].HabitID)
	assert.Equal(t, habit.ID, *views[1].HabitID)
	assert.Equal(t, "2024-03-16", views[1].Date)
	assert.Equal(t, 3, views[1].Weight)
	assert.True(t, views[1].Completed)
}

func TestSearchPaginationRunsBeforeUnfinishedFilter(t *testing.T) {
	env := newTestEnv(t)
	agenda := service.NewAgendaService(env.tasks, env.habits)

	seedTask(t, env, model.Task{Title: "chore a", Date: "2024-03-01", Completed: true})
	seedTask(t, env, model.Task{Title: "chore b", Date: "2024-03-02", Completed: true})
	seedTask(t, env, model.Task{Title: "chore c", Date: "2024-03-03"})

	// Page 1 of 2 holds the two completed rows; the unfinished filter then
	// empties it even though an unfinished row exists on page 2.
	views, err := agenda.Search(context.Background(), service.SearchQuery{
		Text:       "chore",
		Page:       1,
		Limit:      2,
		Unfinished: true,
	})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestSearchDateRangeAndNotesFilters(t *testing.T) {
	env := newTestEnv(t)
	agenda := service.NewAgendaService(env.tasks, env.habits)
	ctx := context.Background()

	noted := seedTask(t, env, model.Task{Title: "plan trip", Date: "2024-03-10", Notes: strPtr("check flights")})
	seedTask(t, env, model.Task{Title: "plan meals", Date: "2024-03-10"})
	seedTask(t, env, model.Task{Title: "plan budget", Date: "2024-05-01", Notes: strPtr("later")})

	views, err := agenda.Search(ctx, service.SearchQuery{
		Text:      "plan",
		Notes:     true,
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, noted.ID, views[0].ID)
}
