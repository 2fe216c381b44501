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

func reportRange() (time.Time, time.Time) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 7)
}

func TestEscalationReportUseCase_ValidationErrors(t *testing.T) {
	start, end := reportRange()

	tests := []struct {
		name  string
		query EscalationReportQuery
	}{
		{"missing start", EscalationReportQuery{End: end}},
		{"missing end", EscalationReportQuery{Start: start}},
		{"end before start", EscalationReportQuery{Start: end, End: start}},
		{"end equals start", EscalationReportQuery{Start: start, End: start}},
		{"invalid work item type", EscalationReportQuery{Start: start, End: end, WorkItemType: "invoice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewEscalationReportUseCase(&mockEscalationRepository{}, &mockLogger{})

			result, err := uc.Execute(context.Background(), tt.query)

			assert.Nil(t, result)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestEscalationReportUseCase_FilterPassedThrough(t *testing.T) {
	start, end := reportRange()
	unitID := uint(3)
	assigneeID := uint(7)

	repo := &mockEscalationRepository{}

	var gotFilter assignment.EscalationFilter
	repo.CountInRangeFunc = func(ctx context.Context, filter assignment.EscalationFilter) (int64, error) {
		gotFilter = filter
		return 0, nil
	}

	uc := NewEscalationReportUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), EscalationReportQuery{
		Start:        start,
		End:          end,
		UnitID:       &unitID,
		AssigneeID:   &assigneeID,
		WorkItemType: "dossier",
	})

	require.NoError(t, err)
	assert.Equal(t, start, gotFilter.Start)
	assert.Equal(t, end, gotFilter.End)
	require.NotNil(t, gotFilter.UnitID)
	assert.Equal(t, uint(3), *gotFilter.UnitID)
	require.NotNil(t, gotFilter.AssigneeID)
	assert.Equal(t, uint(7), *gotFilter.AssigneeID)
	require.NotNil(t, gotFilter.WorkItemType)
	assert.Equal(t, vo.WorkItemDossier, *gotFilter.WorkItemType)
}

func TestEscalationReportUseCase_AggregatesAllBreakdowns(t *testing.T) {
	start, end := reportRange()

	repo := &mockEscalationRepository{}
	repo.CountInRangeFunc = func(ctx context.Context, filter assignment.EscalationFilter) (int64, error) {
		return 5, nil
	}
	repo.CountByDayFunc = func(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
		return []assignment.EscalationCount{
			{Key: "2026-03-02", Count: 2},
			{Key: "2026-03-04", Count: 3},
		}, nil
	}
	repo.CountByUnitFunc = func(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
		return []assignment.EscalationCount{{Key: "intake", ID: 3, Count: 5}}, nil
	}
	repo.CountByAssigneeFunc = func(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
		return []assignment.EscalationCount{
			{Key: "staff-7", ID: 7, Count: 4},
			{Key: "staff-8", ID: 8, Count: 1},
		}, nil
	}
	repo.CountByWorkItemTypeFunc = func(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
		return []assignment.EscalationCount{{Key: "ticket", Count: 5}}, nil
	}

	uc := NewEscalationReportUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), EscalationReportQuery{Start: start, End: end})

	require.NoError(t, err)
	assert.Equal(t, start.Format(time.RFC3339), result.Start)
	assert.Equal(t, end.Format(time.RFC3339), result.End)
	assert.Equal(t, int64(5), result.Total)

	require.Len(t, result.TimeSeries, 2)
	assert.Equal(t, ReportBucket{Key: "2026-03-02", Count: 2}, result.TimeSeries[0])

	require.Len(t, result.ByUnit, 1)
	assert.Equal(t, ReportBucket{Key: "intake", ID: 3, Count: 5}, result.ByUnit[0])

	require.Len(t, result.ByAssignee, 2)
	assert.Equal(t, uint(7), result.ByAssignee[0].ID)

	require.Len(t, result.ByWorkItemType, 1)
	assert.Equal(t, "ticket", result.ByWorkItemType[0].Key)
}

func TestEscalationReportUseCase_AggregationFailure(t *testing.T) {
	start, end := reportRange()

	repo := &mockEscalationRepository{}
	repo.CountByUnitFunc = func(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
		return nil, errors.NewInternalError("connection reset")
	}

	uc := NewEscalationReportUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), EscalationReportQuery{Start: start, End: end})

	assert.Nil(t, result)
	require.Error(t, err)
}
