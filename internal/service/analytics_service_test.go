package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsOverview(t *testing.T) {
	shiftSvc, repo, _, _ := newTestShiftService()
	analytics := NewAnalyticsService(repo)
	ctx := context.Background()

	first, err := shiftSvc.Create(ctx, "chef@example.org", testShiftInput())
	require.NoError(t, err)

	lateInput := testShiftInput()
	lateInput.Type = "Spätdienst"
	_, err = shiftSvc.Create(ctx, "chef@example.org", lateInput)
	require.NoError(t, err)

	_, err = shiftSvc.Assign(ctx, "chef@example.org", first.ID, "anna@example.org")
	require.NoError(t, err)

	overview, err := analytics.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, overview.Total)
	assert.Equal(t, 1, overview.ByType["Frühdienst"])
	assert.Equal(t, 1, overview.ByType["Spätdienst"])
	assert.Equal(t, 1, overview.ByStatus["ASSIGNED"])
	assert.Equal(t, 1, overview.ByStatus["OPEN"])
	assert.InDelta(t, 0.5, overview.AssignmentRatio, 0.001)
}

func TestAnalyticsOverviewEmpty(t *testing.T) {
	_, repo, _, _ := newTestShiftService()
	analytics := NewAnalyticsService(repo)

	overview, err := analytics.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, overview.Total)
	assert.Zero(t, overview.AssignmentRatio)
}
