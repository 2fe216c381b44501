package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/domain/assignment"
	"caseflow/internal/shared/errors"
)

func newGetAssignmentFixture(assignmentRepo *mockAssignmentRepository) *GetAssignmentUseCase {
	log := &mockLogger{}
	slaTracker := services.NewSLATracker(
		services.NewSLATable(testSLAConfig()),
		assignmentRepo, &mockEscalationRepository{}, &mockUnitRepository{}, &mockNotifier{}, log)
	return NewGetAssignmentUseCase(assignmentRepo, slaTracker, log)
}

func TestGetAssignmentUseCase_ZeroID(t *testing.T) {
	uc := newGetAssignmentFixture(&mockAssignmentRepository{})

	result, err := uc.Execute(context.Background(), GetAssignmentQuery{AssignmentID: 0})

	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
}

func TestGetAssignmentUseCase_NotFound(t *testing.T) {
	repo := &mockAssignmentRepository{}
	repo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		return nil, errors.NewNotFoundError("assignment not found")
	}
	uc := newGetAssignmentFixture(repo)

	result, err := uc.Execute(context.Background(), GetAssignmentQuery{AssignmentID: 1})

	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetAssignmentUseCase_Success(t *testing.T) {
	repo := &mockAssignmentRepository{}
	repo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		return activeAssignment(t, id), nil
	}

	assignedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	uc := newGetAssignmentFixture(repo).WithNow(func() time.Time {
		// 6 hours into a 24 hour window.
		return assignedAt.Add(6 * time.Hour)
	})

	result, err := uc.Execute(context.Background(), GetAssignmentQuery{AssignmentID: 1})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(1), result.AssignmentID)
	assert.Equal(t, "TKT-1001", result.WorkItemID)
	assert.Equal(t, "ticket", result.WorkItemType)
	assert.Equal(t, uint(7), result.AssigneeID)
	assert.Equal(t, "high", result.Priority)
	assert.Equal(t, "assigned", result.Status)
	assert.Equal(t, "green", result.SLABucket)
	assert.Equal(t, "18h0m0s", result.TimeRemaining)
	assert.InDelta(t, 25.0, result.ElapsedPct, 0.01)
	assert.False(t, result.Escalated)
	assert.Empty(t, result.CompletedAt)
}

func TestGetAssignmentUseCase_WarningPastThreshold(t *testing.T) {
	repo := &mockAssignmentRepository{}
	repo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		return activeAssignment(t, id), nil
	}

	assignedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	uc := newGetAssignmentFixture(repo).WithNow(func() time.Time {
		return assignedAt.Add(20 * time.Hour)
	})

	result, err := uc.Execute(context.Background(), GetAssignmentQuery{AssignmentID: 1})

	require.NoError(t, err)
	assert.Equal(t, "warning", result.SLABucket)
}
