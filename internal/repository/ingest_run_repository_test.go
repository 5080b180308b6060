package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"sentinel-ds/internal/model"
)

func TestIngestRunRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIngestRunRepository(newTestDB(t))

	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := &model.IngestRun{
			RunID:      id,
			Trigger:    model.TriggerCLI,
			Attempted:  3,
			Succeeded:  2,
			Failed:     1,
			Results:    datatypes.JSON(`[{"name":"x","success":true}]`),
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		}
		require.NoError(t, repo.Create(ctx, run))
	}

	runs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].RunID)
	assert.Equal(t, "run-b", runs[1].RunID)

	got, err := repo.GetByRunID(ctx, "run-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Succeeded)
	assert.JSONEq(t, `[{"name":"x","success":true}]`, string(got.Results))

	missing, err := repo.GetByRunID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
