package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/internal/shared/errors"
)

func TestGetQueuePositionUseCase_EmptyWorkItemID(t *testing.T) {
	uc := NewGetQueuePositionUseCase(&mockQueueRepository{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetQueuePositionQuery{WorkItemID: ""})

	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
}

func TestGetQueuePositionUseCase_NotQueued(t *testing.T) {
	repo := &mockQueueRepository{}
	repo.GetPositionFunc = func(ctx context.Context, workItemID string) (*int, error) {
		return nil, nil
	}
	uc := NewGetQueuePositionUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetQueuePositionQuery{WorkItemID: "TKT-1001"})

	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetQueuePositionUseCase_Success(t *testing.T) {
	repo := &mockQueueRepository{}
	repo.GetPositionFunc = func(ctx context.Context, workItemID string) (*int, error) {
		assert.Equal(t, "TKT-1001", workItemID)
		pos := 3
		return &pos, nil
	}
	uc := NewGetQueuePositionUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetQueuePositionQuery{WorkItemID: "TKT-1001"})

	require.NoError(t, err)
	assert.Equal(t, "TKT-1001", result.WorkItemID)
	assert.Equal(t, 3, result.Position)
}

func TestGetQueuePositionUseCase_RepositoryFailure(t *testing.T) {
	repo := &mockQueueRepository{}
	repo.GetPositionFunc = func(ctx context.Context, workItemID string) (*int, error) {
		return nil, errors.NewInternalError("connection reset")
	}
	uc := NewGetQueuePositionUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetQueuePositionQuery{WorkItemID: "TKT-1001"})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.False(t, errors.IsNotFoundError(err))
}
