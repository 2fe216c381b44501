package services

import (
	"context"

	"caseflow/internal/domain/assignment"
	"caseflow/internal/domain/staff"
	"caseflow/internal/shared/logger"
)

type mockStaffRepository struct {
	GetByIDFunc              func(ctx context.Context, staffID uint) (*staff.Profile, error)
	GetByIDsFunc             func(ctx context.Context, staffIDs []uint) ([]*staff.Profile, error)
	ListByUnitFunc           func(ctx context.Context, unitID uint) ([]*staff.Profile, error)
	ListIDsFunc              func(ctx context.Context) ([]uint, error)
	SaveFunc                 func(ctx context.Context, profile *staff.Profile) error
	TryAcquireSlotFunc       func(ctx context.Context, staffID uint) (bool, error)
	AcquireSlotUncheckedFunc func(ctx context.Context, staffID uint) error
	ReleaseSlotFunc          func(ctx context.Context, staffID uint) (bool, error)
	UnitAssignmentCountFunc  func(ctx context.Context, unitID uint) (int, error)
	UnitAvailabilityFunc     func(ctx context.Context, unitID uint) (staff.UnitAvailabilityBreakdown, error)
}

func (m *mockStaffRepository) GetByID(ctx context.Context, staffID uint) (*staff.Profile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, staffID)
	}
	return nil, nil
}

func (m *mockStaffRepository) GetByIDs(ctx context.Context, staffIDs []uint) ([]*staff.Profile, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, staffIDs)
	}
	return nil, nil
}

func (m *mockStaffRepository) ListByUnit(ctx context.Context, unitID uint) ([]*staff.Profile, error) {
	if m.ListByUnitFunc != nil {
		return m.ListByUnitFunc(ctx, unitID)
	}
	return nil, nil
}

func (m *mockStaffRepository) ListIDs(ctx context.Context) ([]uint, error) {
	if m.ListIDsFunc != nil {
		return m.ListIDsFunc(ctx)
	}
	return nil, nil
}

func (m *mockStaffRepository) Save(ctx context.Context, profile *staff.Profile) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, profile)
	}
	return nil
}

func (m *mockStaffRepository) TryAcquireSlot(ctx context.Context, staffID uint) (bool, error) {
	if m.TryAcquireSlotFunc != nil {
		return m.TryAcquireSlotFunc(ctx, staffID)
	}
	return true, nil
}

func (m *mockStaffRepository) AcquireSlotUnchecked(ctx context.Context, staffID uint) error {
	if m.AcquireSlotUncheckedFunc != nil {
		return m.AcquireSlotUncheckedFunc(ctx, staffID)
	}
	return nil
}

func (m *mockStaffRepository) ReleaseSlot(ctx context.Context, staffID uint) (bool, error) {
	if m.ReleaseSlotFunc != nil {
		return m.ReleaseSlotFunc(ctx, staffID)
	}
	return true, nil
}

func (m *mockStaffRepository) UnitAssignmentCount(ctx context.Context, unitID uint) (int, error) {
	if m.UnitAssignmentCountFunc != nil {
		return m.UnitAssignmentCountFunc(ctx, unitID)
	}
	return 0, nil
}

func (m *mockStaffRepository) UnitAvailability(ctx context.Context, unitID uint) (staff.UnitAvailabilityBreakdown, error) {
	if m.UnitAvailabilityFunc != nil {
		return m.UnitAvailabilityFunc(ctx, unitID)
	}
	return staff.UnitAvailabilityBreakdown{}, nil
}

type mockUnitRepository struct {
	GetByIDFunc      func(ctx context.Context, unitID uint) (*staff.Unit, error)
	ListFunc         func(ctx context.Context) ([]*staff.Unit, error)
	SupervisorOfFunc func(ctx context.Context, unitID uint) (uint, error)
}

func (m *mockUnitRepository) GetByID(ctx context.Context, unitID uint) (*staff.Unit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, unitID)
	}
	return nil, nil
}

func (m *mockUnitRepository) List(ctx context.Context) ([]*staff.Unit, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockUnitRepository) SupervisorOf(ctx context.Context, unitID uint) (uint, error) {
	if m.SupervisorOfFunc != nil {
		return m.SupervisorOfFunc(ctx, unitID)
	}
	return 0, nil
}

type mockAssignmentRepository struct {
	SaveFunc                 func(ctx context.Context, a *assignment.Assignment) error
	UpdateFunc               func(ctx context.Context, a *assignment.Assignment) error
	GetByIDFunc              func(ctx context.Context, id uint) (*assignment.Assignment, error)
	GetActiveByWorkItemFunc  func(ctx context.Context, workItemID string) (*assignment.Assignment, error)
	HasActiveForWorkItemFunc func(ctx context.Context, workItemID string) (bool, error)
	ListFunc                 func(ctx context.Context, filter assignment.Filter) ([]*assignment.Assignment, int64, error)
	ListOpenFunc             func(ctx context.Context) ([]*assignment.Assignment, error)
	ListOpenByAssigneeFunc   func(ctx context.Context, assigneeID uint) ([]*assignment.Assignment, error)
}

func (m *mockAssignmentRepository) Save(ctx context.Context, a *assignment.Assignment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockAssignmentRepository) GetByID(ctx context.Context, id uint) (*assignment.Assignment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAssignmentRepository) GetActiveByWorkItem(ctx context.Context, workItemID string) (*assignment.Assignment, error) {
	if m.GetActiveByWorkItemFunc != nil {
		return m.GetActiveByWorkItemFunc(ctx, workItemID)
	}
	return nil, nil
}

func (m *mockAssignmentRepository) HasActiveForWorkItem(ctx context.Context, workItemID string) (bool, error) {
	if m.HasActiveForWorkItemFunc != nil {
		return m.HasActiveForWorkItemFunc(ctx, workItemID)
	}
	return false, nil
}

func (m *mockAssignmentRepository) List(ctx context.Context, filter assignment.Filter) ([]*assignment.Assignment, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockAssignmentRepository) ListOpen(ctx context.Context) ([]*assignment.Assignment, error) {
	if m.ListOpenFunc != nil {
		return m.ListOpenFunc(ctx)
	}
	return nil, nil
}

func (m *mockAssignmentRepository) ListOpenByAssignee(ctx context.Context, assigneeID uint) ([]*assignment.Assignment, error) {
	if m.ListOpenByAssigneeFunc != nil {
		return m.ListOpenByAssigneeFunc(ctx, assigneeID)
	}
	return nil, nil
}

type mockQueueRepository struct {
	SaveFunc                func(ctx context.Context, e *assignment.QueueEntry) error
	UpdateFunc              func(ctx context.Context, e *assignment.QueueEntry) error
	DeleteFunc              func(ctx context.Context, id uint) error
	DeleteByWorkItemFunc    func(ctx context.Context, workItemID string) error
	GetByIDFunc             func(ctx context.Context, id uint) (*assignment.QueueEntry, error)
	HasEntryForWorkItemFunc func(ctx context.Context, workItemID string) (bool, error)
	GetPositionFunc         func(ctx context.Context, workItemID string) (*int, error)
	ListFunc                func(ctx context.Context, filter assignment.QueueFilter) ([]*assignment.QueueEntry, int64, error)
	ListMatchingFunc        func(ctx context.Context, unitID uint, freedSkills []string, limit int) ([]*assignment.QueueEntry, error)
	ListAllFunc             func(ctx context.Context) ([]*assignment.QueueEntry, error)
}

func (m *mockQueueRepository) Save(ctx context.Context, e *assignment.QueueEntry) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, e)
	}
	return nil
}

func (m *mockQueueRepository) Update(ctx context.Context, e *assignment.QueueEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return nil
}

func (m *mockQueueRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockQueueRepository) DeleteByWorkItem(ctx context.Context, workItemID string) error {
	if m.DeleteByWorkItemFunc != nil {
		return m.DeleteByWorkItemFunc(ctx, workItemID)
	}
	return nil
}

func (m *mockQueueRepository) GetByID(ctx context.Context, id uint) (*assignment.QueueEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockQueueRepository) HasEntryForWorkItem(ctx context.Context, workItemID string) (bool, error) {
	if m.HasEntryForWorkItemFunc != nil {
		return m.HasEntryForWorkItemFunc(ctx, workItemID)
	}
	return false, nil
}

func (m *mockQueueRepository) GetPosition(ctx context.Context, workItemID string) (*int, error) {
	if m.GetPositionFunc != nil {
		return m.GetPositionFunc(ctx, workItemID)
	}
	return nil, nil
}

func (m *mockQueueRepository) List(ctx context.Context, filter assignment.QueueFilter) ([]*assignment.QueueEntry, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockQueueRepository) ListMatching(ctx context.Context, unitID uint, freedSkills []string, limit int) ([]*assignment.QueueEntry, error) {
	if m.ListMatchingFunc != nil {
		return m.ListMatchingFunc(ctx, unitID, freedSkills, limit)
	}
	return nil, nil
}

func (m *mockQueueRepository) ListAll(ctx context.Context) ([]*assignment.QueueEntry, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

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

type mockNotifier struct {
	NotifyFunc func(ctx context.Context, recipientID uint, template string, payload map[string]any)
}

func (m *mockNotifier) Notify(ctx context.Context, recipientID uint, template string, payload map[string]any) {
	if m.NotifyFunc != nil {
		m.NotifyFunc(ctx, recipientID, template, payload)
	}
}

type mockDrainLease struct {
	TryAcquireFunc func(ctx context.Context, unitID uint) (bool, error)
	ReleaseFunc    func(ctx context.Context, unitID uint)
}

func (m *mockDrainLease) TryAcquire(ctx context.Context, unitID uint) (bool, error) {
	if m.TryAcquireFunc != nil {
		return m.TryAcquireFunc(ctx, unitID)
	}
	return true, nil
}

func (m *mockDrainLease) Release(ctx context.Context, unitID uint) {
	if m.ReleaseFunc != nil {
		m.ReleaseFunc(ctx, unitID)
	}
}

type mockTransactor struct {
	WithinTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.WithinTransactionFunc != nil {
		return m.WithinTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct{}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) With(keysAndValues ...interface{}) logger.Interface { return m }
