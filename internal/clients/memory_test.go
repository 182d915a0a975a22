package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtchealth/billing-engine/internal/billing"
)

func TestMemoryDirectory_ListActive(t *testing.T) {
	dir := NewMemoryDirectory([]Client{
		{ID: "a", FacilityName: "Active One", Active: true},
		{ID: "b", FacilityName: "Inactive", Active: false},
		{ID: "c", FacilityName: "Active Two", Active: true},
	})

	active, err := dir.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "c", active[1].ID)
}

func TestMemoryDirectory_GetByID(t *testing.T) {
	dir := NewSampleDirectory()

	client, err := dir.GetByID(context.Background(), "client-002")
	require.NoError(t, err)
	assert.Equal(t, "Green Valley Assisted Living", client.FacilityName)
	assert.Equal(t, billing.ScheduleWeekly, client.Schedule.Type)
	assert.Equal(t, 70.0, client.HourlyRate)

	_, err = dir.GetByID(context.Background(), "client-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSampleDirectory_CoversFixedScheduleVariants(t *testing.T) {
	dir := NewSampleDirectory()

	active, err := dir.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 3)

	types := map[string]bool{}
	for _, c := range active {
		types[c.Schedule.Type] = true
	}
	assert.True(t, types[billing.ScheduleDaily])
	assert.True(t, types[billing.ScheduleWeekly])
	assert.True(t, types[billing.ScheduleMonthly])
}
