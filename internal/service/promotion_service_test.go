package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-planner/internal/model"
	"time-planner/internal/service"
)

func TestPromoteDueReminders(t *testing.T) {
	env := newTestEnv(t)
	promotions := service.NewPromotionService(env.reminders, env.tasks)
	ctx := context.Background()

	timed := model.Reminder{Task: "Dentist", Date: day, Time: strPtr("14:30"), Allotted: 45}
	require.NoError(t, env.reminders.Create(ctx, &timed))
	untimed := model.Reminder{Task: "Renew passport", Date: day, Allotted: 30}
	require.NoError(t, env.reminders.Create(ctx, &untimed))
	future := model.Reminder{Task: "Tax return", Date: "2024-04-01", Allotted: 30}
	require.NoError(t, env.reminders.Create(ctx, &future))

	moved, err := promotions.PromoteDueReminders(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	tasks, err := env.tasks.ListForDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	byTitle := make(map[string]model.Task, len(tasks))
	for _, task := range tasks {
		byTitle[task.Title] = task
	}

	dentist := byTitle["Dentist"]
	assert.Equal(t, "2:30 PM", dentist.StartTime)
	assert.Equal(t, "3:15 PM", dentist.EndTime)
	assert.Equal(t, 1, dentist.Weight)
	assert.Equal(t, "From reminder", dentist.Description)
	require.NotNil(t, dentist.CategoryID)
	assert.Equal(t, service.DefaultCategoryID, *dentist.CategoryID)

	passport := byTitle["Renew passport"]
	assert.Equal(t, "T:0", passport.StartTime)
	assert.Equal(t, "T:30", passport.EndTime)
}

func TestPromoteDueRemindersRunsAtMostOnce(t *testing.T) {
	env := newTestEnv(t)
	promotions := service.NewPromotionService(env.reminders, env.tasks)
	ctx := context.Background()

	reminder := model.Reminder{Task: "Water plants", Date: day, Allotted: 30}
	require.NoError(t, env.reminders.Create(ctx, &reminder))

	moved, err := promotions.PromoteDueReminders(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	// The reminder is marked moved, so a second run finds nothing due.
	moved, err = promotions.PromoteDueReminders(ctx, day)
	require.NoError(t, err)
	assert.Zero(t, moved)

	tasks, err := env.tasks.ListForDay(ctx, day)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
