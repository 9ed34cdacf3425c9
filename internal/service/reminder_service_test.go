package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-planner/internal/model"
	"time-planner/internal/service"
)

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		repeat string
		want   string
	}{
		{model.RepeatWeekly, "2024-01-08"},
		{model.RepeatBiweekly, "2024-01-15"},
		{model.RepeatMonthly, "2024-02-01"},
		{model.RepeatQuarterly, "2024-04-01"},
		{model.RepeatYearly, "2025-01-01"},
		{model.RepeatNone, "2024-01-01"},
	}
	for _, tc := range cases {
		got, err := service.NextOccurrence("2024-01-01", tc.repeat)
		require.NoError(t, err, tc.repeat)
		assert.Equal(t, tc.want, got, tc.repeat)
	}

	_, err := service.NextOccurrence("not-a-date", model.RepeatWeekly)
	assert.Error(t, err)
}

func TestToggleCompletedSpawnsNextOccurrence(t *testing.T) {
	env := newTestEnv(t)
	reminders := service.NewReminderService(env.reminders)
	ctx := context.Background()

	created, err := reminders.Create(ctx, service.ReminderInput{
		Task:   "Pay rent",
		Date:   "2024-01-01",
		Time:   strPtr("09:00"),
		Repeat: model.RepeatMonthly,
	})
	require.NoError(t, err)

	toggled, err := reminders.ToggleCompleted(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	all, err := reminders.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	next := all[1]
	if next.ID == created.ID {
		next = all[0]
	}
	assert.Equal(t, "Pay rent", next.Task)
	assert.Equal(t, "2024-02-01", next.Date)
	assert.Equal(t, model.RepeatMonthly, next.Repeat)
	assert.False(t, next.Completed)
	require.NotNil(t, next.Time)
	assert.Equal(t, "09:00", *next.Time)
}

func TestToggleCompletedUncompleteDoesNotSpawn(t *testing.T) {
	env := newTestEnv(t)
	reminders := service.NewReminderService(env.reminders)
	ctx := context.Background()

	created, err := reminders.Create(ctx, service.ReminderInput{
		Task:      "Pay rent",
		Date:      "2024-01-01",
		Repeat:    model.RepeatWeekly,
		Completed: true,
	})
	require.NoError(t, err)

	toggled, err := reminders.ToggleCompleted(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	all, err := reminders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestToggleCompletedNonRepeating(t *testing.T) {
	env := newTestEnv(t)
	reminders := service.NewReminderService(env.reminders)
	ctx := context.Background()

	created, err := reminders.Create(ctx, service.ReminderInput{Task: "One-off", Date: day})
	require.NoError(t, err)

	toggled, err := reminders.ToggleCompleted(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	all, err := reminders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateResetsPromotionMark(t *testing.T) {
	env := newTestEnv(t)
	reminders := service.NewReminderService(env.reminders)
	promotions := service.NewPromotionService(env.reminders, env.tasks)
	ctx := context.Background()

	created, err := reminders.Create(ctx, service.ReminderInput{Task: "Call bank", Date: day})
	require.NoError(t, err)

	_, err = promotions.PromoteDueReminders(ctx, day)
	require.NoError(t, err)

	// Editing a promoted reminder makes it due again.
	err = reminders.Update(ctx, created.ID, service.ReminderInput{Task: "Call bank", Date: day})
	require.NoError(t, err)

	moved, err := promotions.PromoteDueReminders(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)
}

func TestCreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	reminders := service.NewReminderService(env.reminders)

	created, err := reminders.Create(context.Background(), service.ReminderInput{Task: "One-off", Date: day})
	require.NoError(t, err)
	assert.Equal(t, model.RepeatNone, created.Repeat)

	stored, err := reminders.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.Allotted)

	_, err = reminders.Create(context.Background(), service.ReminderInput{Task: "", Date: day})
	assert.Error(t, err)
}
