package usecases

import (
	"context"

	"caseflow/internal/domain/assignment"
	"caseflow/internal/shared/logger"
)

type mockEscalationRepository struct {
	SaveFunc                func(ctx context.Context, e *assignment.EscalationEvent) error
	UpdateFunc              func(ctx context.Context, e *assignment.EscalationEvent) error
	GetByIDFunc             func(ctx context.Context, id uint) (*assignment.EscalationEvent, error)
	CountInRangeFunc        func(ctx context.Context, filter assignment.EscalationFilter) (int64, error)
	CountByDayFunc          func(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error)
	CountByUnitFunc         func(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error)
	CountByAssigneeFunc     func(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error)
	CountByWorkItemTypeFunc func(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error)
}

func (m *mockEscalationRepository) Save(ctx context.Context, e *assignment.EscalationEvent) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, e)
	}
	return nil
}

func (m *mockEscalationRepository) Update(ctx context.Context, e *assignment.EscalationEvent) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return nil
}

func (m *mockEscalationRepository) GetByID(ctx context.Context, id uint) (*assignment.EscalationEvent, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockEscalationRepository) CountInRange(ctx context.Context, filter assignment.EscalationFilter) (int64, error) {
	if m.CountInRangeFunc != nil {
		return m.CountInRangeFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockEscalationRepository) CountByDay(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
	if m.CountByDayFunc != nil {
		return m.CountByDayFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockEscalationRepository) CountByUnit(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
	if m.CountByUnitFunc != nil {
		return m.CountByUnitFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockEscalationRepository) CountByAssignee(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
	if m.CountByAssigneeFunc != nil {
		return m.CountByAssigneeFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockEscalationRepository) CountByWorkItemType(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
	if m.CountByWorkItemTypeFunc != nil {
		return m.CountByWorkItemTypeFunc(ctx, filter)
	}
	return nil, nil
}

type mockLogger struct{}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) With(keysAndValues ...interface{}) logger.Interface { return m }
