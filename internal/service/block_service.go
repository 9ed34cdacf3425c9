package service

import (
	"context"
	"fmt"
	"strings"

	"time-planner/internal/clock"
	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// BlockService repacks reassignment-flagged tasks into sequential work
// blocks separated by rest gaps, advancing a single time cursor from a given
// start.
type BlockService struct {
	tasks *repository.TaskRepository
}

func NewBlockService(tasks *repository.TaskRepository) *BlockService {
	return &BlockService{tasks: tasks}
}

// LayoutBlocks lays out one work block per candidate task, in input order.
// Each block is persisted as a new zero-weight duplicate task dated today;
// the block length is the task's remaining minutes capped at slotMinutes,
// and the cursor advances by the block plus restMinutes. Rest gaps move the
// cursor but are not stored. After the loop the reassign flag is cleared on
// every task in the store, and the processed candidates are returned.
//
// The cursor is never clamped to end of day; a long candidate list runs past
// midnight and wraps into morning times.
func (s *BlockService) LayoutBlocks(ctx context.Context, slotMinutes, restMinutes int, startClock, date string) ([]model.Task, error) {
	start, err := clock.Parse(startClock)
	if err != nil {
		return nil, fmt.Errorf("layout blocks: %w", err)
	}
	if start.Kind != clock.Absolute {
		return nil, fmt.Errorf("layout blocks: %w: start %q is not a wall-clock time", clock.ErrMalformedTime, startClock)
	}

	candidates, err := s.tasks.ListReassignable(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("layout blocks: %w", err)
	}

	categoryID := DefaultCategoryID
	cursor := start.Minutes
	for _, task := range candidates {
		taskStart, err := clock.Parse(task.StartTime)
		if err != nil {
			return nil, fmt.Errorf("layout blocks: task %d: %w", task.ID, err)
		}
		taskEnd, err := clock.Parse(task.EndTime)
		if err != nil {
			return nil, fmt.Errorf("layout blocks: task %d: %w", task.ID, err)
		}

		remaining := clock.Duration(taskStart, taskEnd)
		workLen := remaining
		if remaining > slotMinutes {
			workLen = slotMinutes
		}

		block := model.Task{
			Title:       blockTitle(task.Title),
			Description: task.Description,
			Date:        date,
			StartTime:   clock.Format(cursor),
			EndTime:     clock.Format(cursor + workLen),
			Weight:      0,
			CategoryID:  &categoryID,
		}
		if err := s.tasks.Create(ctx, &block); err != nil {
			return nil, fmt.Errorf("layout blocks: %w", err)
		}

		cursor += workLen + restMinutes
	}

	if err := s.tasks.BulkClearReassign(ctx); err != nil {
		return nil, fmt.Errorf("layout blocks: %w", err)
	}
	return candidates, nil
}

// blockTitle strips the routine marker from a title and tags the result as
// a duplicate.
func blockTitle(title string) string {
	lower := strings.ToLower(title)
	if i := strings.Index(lower, model.RoutineMarker); i >= 0 {
		title = title[:i] + title[i+len(model.RoutineMarker):]
	}
	return strings.TrimSpace(title) + " (duplicate)"
}
