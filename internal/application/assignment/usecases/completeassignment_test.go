package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/domain/staff"
	staffvo "caseflow/internal/domain/staff/value_objects"
	"caseflow/internal/shared/authorization"
	"caseflow/internal/shared/errors"
)

// activeAssignment builds an assigned work item held by staff 7 in unit 3.
func activeAssignment(t *testing.T, id uint) *assignment.Assignment {
	t.Helper()
	assignedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	a, err := assignment.NewAssignment("TKT-1001", vo.WorkItemTicket, 7, 3, vo.PriorityHigh, assignedAt, assignedAt.Add(24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, a.SetID(id))
	return a
}

type completeFixture struct {
	uc             *CompleteAssignmentUseCase
	assignmentRepo *mockAssignmentRepository
	staffRepo      *mockStaffRepository
	publisher      *mockCapacityFreedPublisher
	viewCache      *mockStaffViewCache
}

func newCompleteFixture() *completeFixture {
	assignmentRepo := &mockAssignmentRepository{}
	staffRepo := &mockStaffRepository{}
	publisher := &mockCapacityFreedPublisher{}
	viewCache := &mockStaffViewCache{}

	return &completeFixture{
		uc:             NewCompleteAssignmentUseCase(assignmentRepo, staffRepo, publisher, viewCache, &mockLogger{}),
		assignmentRepo: assignmentRepo,
		staffRepo:      staffRepo,
		publisher:      publisher,
		viewCache:      viewCache,
	}
}

func TestCompleteAssignmentUseCase_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  CompleteAssignmentCommand
	}{
		{"zero assignment id", CompleteAssignmentCommand{AssignmentID: 0, Outcome: "completed", ActingUserID: 7}},
		{"zero acting user", CompleteAssignmentCommand{AssignmentID: 1, Outcome: "completed", ActingUserID: 0}},
		{"unknown outcome", CompleteAssignmentCommand{AssignmentID: 1, Outcome: "done", ActingUserID: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCompleteFixture()
			result, err := f.uc.Execute(context.Background(), tt.cmd)
			assert.Nil(t, result)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestCompleteAssignmentUseCase_NotFound(t *testing.T) {
	f := newCompleteFixture()
	f.assignmentRepo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		return nil, errors.NewNotFoundError("assignment not found")
	}

	result, err := f.uc.Execute(context.Background(), CompleteAssignmentCommand{AssignmentID: 1, Outcome: "completed", ActingUserID: 7})

	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCompleteAssignmentUseCase_ForbiddenForOtherStaff(t *testing.T) {
	f := newCompleteFixture()
	f.assignmentRepo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		return activeAssignment(t, id), nil
	}

	result, err := f.uc.Execute(context.Background(), CompleteAssignmentCommand{
		AssignmentID: 1,
		Outcome:      "completed",
		ActingUserID: 8, // not the assignee
		ActingRole:   authorization.RoleStaff,
	})

	assert.Nil(t, result)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestCompleteAssignmentUseCase_SupervisorMayFinalizeForOthers(t *testing.T) {
	f := newCompleteFixture()
	f.assignmentRepo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		return activeAssignment(t, id), nil
	}

	result, err := f.uc.Execute(context.Background(), CompleteAssignmentCommand{
		AssignmentID: 1,
		Outcome:      "completed",
		ActingUserID: 99,
		ActingRole:   authorization.RoleSupervisor,
	})

	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
}

func TestCompleteAssignmentUseCase_AlreadyFinalized(t *testing.T) {
	f := newCompleteFixture()
	f.assignmentRepo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		a := activeAssignment(t, id)
		require.NoError(t, a.Cancel())
		return a, nil
	}

	result, err := f.uc.Execute(context.Background(), CompleteAssignmentCommand{
		AssignmentID: 1, Outcome: "completed", ActingUserID: 7, ActingRole: authorization.RoleStaff,
	})

	assert.Nil(t, result)
	assert.True(t, errors.IsConflictError(err))
}

func TestCompleteAssignmentUseCase_CompletionReleasesSlotAndSignals(t *testing.T) {
	f := newCompleteFixture()

	released := []uint{}
	published := []uint{}
	var publishedSkills []string
	invalidated := []uint{}

	f.assignmentRepo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		return activeAssignment(t, id), nil
	}
	f.staffRepo.ReleaseSlotFunc = func(ctx context.Context, staffID uint) (bool, error) {
		released = append(released, staffID)
		return true, nil
	}
	f.staffRepo.GetByIDFunc = func(ctx context.Context, staffID uint) (*staff.Profile, error) {
		now := time.Now()
		return staff.ReconstructProfile(staffID, 3, 5, 1, staffvo.AvailabilityAvailable, []string{"billing", "legal"}, now, now)
	}
	f.publisher.PublishCapacityFreedFunc = func(ctx context.Context, unitID uint, freedSkills []string) error {
		published = append(published, unitID)
		publishedSkills = freedSkills
		return nil
	}
	f.viewCache.InvalidateStaffViewFunc = func(ctx context.Context, staffID uint) error {
		invalidated = append(invalidated, staffID)
		return nil
	}

	result, err := f.uc.Execute(context.Background(), CompleteAssignmentCommand{
		AssignmentID: 1, Outcome: "completed", ActingUserID: 7, ActingRole: authorization.RoleStaff,
	})

	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
	assert.NotEmpty(t, result.CompletedAt)

	assert.Equal(t, []uint{7}, released)
	assert.Equal(t, []uint{3}, published, "freed capacity is announced for the unit")
	assert.Equal(t, []string{"billing", "legal"}, publishedSkills)
	assert.Equal(t, []uint{7}, invalidated)
}

func TestCompleteAssignmentUseCase_CancelOutcome(t *testing.T) {
	f := newCompleteFixture()
	f.assignmentRepo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		return activeAssignment(t, id), nil
	}

	result, err := f.uc.Execute(context.Background(), CompleteAssignmentCommand{
		AssignmentID: 1, Outcome: "cancelled", ActingUserID: 7, ActingRole: authorization.RoleStaff,
	})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", result.Status)
	assert.Empty(t, result.CompletedAt, "cancellation has no completion timestamp")
}

func TestCompleteAssignmentUseCase_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newCompleteFixture()
	f.assignmentRepo.GetByIDFunc = func(ctx context.Context, id uint) (*assignment.Assignment, error) {
		return activeAssignment(t, id), nil
	}
	f.publisher.PublishCapacityFreedFunc = func(ctx context.Context, unitID uint, freedSkills []string) error {
		return errors.NewInternalError("redis unavailable")
	}

	result, err := f.uc.Execute(context.Background(), CompleteAssignmentCommand{
		AssignmentID: 1, Outcome: "completed", ActingUserID: 7, ActingRole: authorization.RoleStaff,
	})

	require.NoError(t, err, "signal publication is best-effort")
	assert.Equal(t, "completed", result.Status)
}
