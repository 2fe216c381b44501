package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/shared/errors"
)

func newListAssignmentsFixture(assignmentRepo *mockAssignmentRepository) *ListAssignmentsUseCase {
	log := &mockLogger{}
	slaTracker := services.NewSLATracker(
		services.NewSLATable(testSLAConfig()),
		assignmentRepo, &mockEscalationRepository{}, &mockUnitRepository{}, &mockNotifier{}, log)
	return NewListAssignmentsUseCase(assignmentRepo, slaTracker, log)
}

func TestListAssignmentsUseCase_InvalidFilters(t *testing.T) {
	tests := []struct {
		name string
		cmd  ListAssignmentsCommand
	}{
		{"invalid status", ListAssignmentsCommand{Status: "done"}},
		{"invalid priority", ListAssignmentsCommand{Priority: "asap"}},
		{"invalid work item type", ListAssignmentsCommand{WorkItemType: "invoice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newListAssignmentsFixture(&mockAssignmentRepository{})

			result, err := uc.Execute(context.Background(), tt.cmd)

			assert.Nil(t, result)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestListAssignmentsUseCase_FilterPassedThrough(t *testing.T) {
	repo := &mockAssignmentRepository{}

	var gotFilter assignment.Filter
	repo.ListFunc = func(ctx context.Context, filter assignment.Filter) ([]*assignment.Assignment, int64, error) {
		gotFilter = filter
		return nil, 0, nil
	}

	uc := newListAssignmentsFixture(repo)

	_, err := uc.Execute(context.Background(), ListAssignmentsCommand{
		Status:       "assigned",
		Priority:     "urgent",
		WorkItemType: "ticket",
		AssigneeID:   uintPtr(7),
		UnitID:       uintPtr(3),
		Page:         2,
		PageSize:     10,
	})

	require.NoError(t, err)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, vo.StatusAssigned, *gotFilter.Status)
	require.NotNil(t, gotFilter.Priority)
	assert.Equal(t, vo.PriorityUrgent, *gotFilter.Priority)
	require.NotNil(t, gotFilter.WorkItemType)
	assert.Equal(t, vo.WorkItemTicket, *gotFilter.WorkItemType)
	require.NotNil(t, gotFilter.AssigneeID)
	assert.Equal(t, uint(7), *gotFilter.AssigneeID)
	require.NotNil(t, gotFilter.UnitID)
	assert.Equal(t, uint(3), *gotFilter.UnitID)
	assert.Equal(t, 2, gotFilter.Page)
	assert.Equal(t, 10, gotFilter.PageSize)
}

func TestListAssignmentsUseCase_RowsCarrySLAClassification(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	repo := &mockAssignmentRepository{}
	repo.ListFunc = func(ctx context.Context, filter assignment.Filter) ([]*assignment.Assignment, int64, error) {
		return []*assignment.Assignment{
			openAssignmentFor(t, 1, now.Add(-2*time.Hour), 24*time.Hour),
			openAssignmentFor(t, 2, now.Add(-25*time.Hour), 24*time.Hour),
		}, 2, nil
	}

	uc := newListAssignmentsFixture(repo).WithNow(func() time.Time { return now })

	result, err := uc.Execute(context.Background(), ListAssignmentsCommand{})

	require.NoError(t, err)
	require.Len(t, result.Assignments, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
	assert.Equal(t, 1, result.TotalPages)

	assert.Equal(t, "green", result.Assignments[0].SLABucket)
	assert.Equal(t, "breached", result.Assignments[1].SLABucket)
}

func TestListAssignmentsUseCase_RepositoryFailure(t *testing.T) {
	repo := &mockAssignmentRepository{}
	repo.ListFunc = func(ctx context.Context, filter assignment.Filter) ([]*assignment.Assignment, int64, error) {
		return nil, 0, errors.NewInternalError("connection reset")
	}

	uc := newListAssignmentsFixture(repo)

	result, err := uc.Execute(context.Background(), ListAssignmentsCommand{})

	assert.Nil(t, result)
	require.Error(t, err)
}
