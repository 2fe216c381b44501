package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/shared/errors"
)

// pendingEntry builds a persisted queue entry created at the given time.
func pendingEntry(t *testing.T, id uint, workItemID string, createdAt time.Time, bucket vo.AgingBucket) *assignment.QueueEntry {
	t.Helper()
	e, err := assignment.ReconstructQueueEntry(
		id, workItemID, vo.WorkItemTicket, []string{"billing"}, uintPtr(3),
		vo.PriorityHigh, 0, nil, "", bucket, createdAt)
	require.NoError(t, err)
	return e
}

func TestListQueueUseCase_InvalidFilters(t *testing.T) {
	tests := []struct {
		name string
		cmd  ListQueueCommand
	}{
		{"invalid priority", ListQueueCommand{Priority: "asap"}},
		{"invalid work item type", ListQueueCommand{WorkItemType: "invoice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewListQueueUseCase(&mockQueueRepository{}, &mockLogger{})

			result, err := uc.Execute(context.Background(), tt.cmd)

			assert.Nil(t, result)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestListQueueUseCase_FilterPassedThrough(t *testing.T) {
	repo := &mockQueueRepository{}

	var gotFilter assignment.QueueFilter
	repo.ListFunc = func(ctx context.Context, filter assignment.QueueFilter) ([]*assignment.QueueEntry, int64, error) {
		gotFilter = filter
		return nil, 0, nil
	}

	uc := NewListQueueUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListQueueCommand{
		Priority:     "urgent",
		WorkItemType: "ticket",
		UnitID:       uintPtr(3),
	})

	require.NoError(t, err)
	require.NotNil(t, gotFilter.Priority)
	assert.Equal(t, vo.PriorityUrgent, *gotFilter.Priority)
	require.NotNil(t, gotFilter.WorkItemType)
	assert.Equal(t, vo.WorkItemTicket, *gotFilter.WorkItemType)
	require.NotNil(t, gotFilter.UnitID)
	assert.Equal(t, uint(3), *gotFilter.UnitID)
	assert.Equal(t, 1, gotFilter.Page)
	assert.Equal(t, 20, gotFilter.PageSize)
}

func TestListQueueUseCase_RowsCarryGlobalPositions(t *testing.T) {
	createdAt := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)

	repo := &mockQueueRepository{}
	repo.ListFunc = func(ctx context.Context, filter assignment.QueueFilter) ([]*assignment.QueueEntry, int64, error) {
		return []*assignment.QueueEntry{
			pendingEntry(t, 1, "TKT-1001", createdAt, vo.AgingStale),
			pendingEntry(t, 2, "TKT-1002", createdAt.Add(time.Hour), vo.AgingStale),
		}, 12, nil
	}
	repo.GetPositionFunc = func(ctx context.Context, workItemID string) (*int, error) {
		positions := map[string]int{"TKT-1001": 4, "TKT-1002": 9}
		pos := positions[workItemID]
		return &pos, nil
	}

	uc := NewListQueueUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), ListQueueCommand{Page: 1, PageSize: 2})

	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 6, result.TotalPages)

	first := result.Entries[0]
	assert.Equal(t, uint(1), first.QueueEntryID)
	assert.Equal(t, "TKT-1001", first.WorkItemID)
	assert.Equal(t, 4, first.Position, "position is the global rank, not the page index")
	assert.Equal(t, "3-6d", first.AgingBucket)
	assert.Equal(t, []string{"billing"}, first.RequiredSkills)

	assert.Equal(t, 9, result.Entries[1].Position)
}

func TestListQueueUseCase_RepositoryFailure(t *testing.T) {
	repo := &mockQueueRepository{}
	repo.ListFunc = func(ctx context.Context, filter assignment.QueueFilter) ([]*assignment.QueueEntry, int64, error) {
		return nil, 0, errors.NewInternalError("connection reset")
	}

	uc := NewListQueueUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), ListQueueCommand{})

	assert.Nil(t, result)
	require.Error(t, err)
}
