package staff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructUnit(t *testing.T) {
	now := time.Now()

	u, err := ReconstructUnit(1, "intake", 20, 99, now, now)
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID())
	assert.Equal(t, "intake", u.Name())
	assert.Equal(t, 20, u.WIPLimit())
	assert.Equal(t, uint(99), u.SupervisorID())

	_, err = ReconstructUnit(0, "intake", 20, 99, now, now)
	assert.Error(t, err)

	_, err = ReconstructUnit(1, "", 20, 99, now, now)
	assert.Error(t, err)

	_, err = ReconstructUnit(1, "intake", 0, 99, now, now)
	assert.Error(t, err)
}

func TestUnit_HasCapacity(t *testing.T) {
	now := time.Now()
	u, err := ReconstructUnit(1, "intake", 20, 99, now, now)
	require.NoError(t, err)

	assert.True(t, u.HasCapacity(19))
	assert.False(t, u.HasCapacity(20))
	assert.False(t, u.HasCapacity(25))
}

func TestUnit_UtilizationPct(t *testing.T) {
	now := time.Now()
	u, err := ReconstructUnit(1, "intake", 20, 99, now, now)
	require.NoError(t, err)

	assert.Equal(t, 50.0, u.UtilizationPct(10))
	assert.Equal(t, 100.0, u.UtilizationPct(20))
	assert.Equal(t, 0.0, u.UtilizationPct(0))
}
