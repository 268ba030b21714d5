package repositories

import (
	"context"
	"testing"
	"time"

	. "pulse360/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportBatchRepository_CreateAndGetByToken(t *testing.T) {
	repo := NewImportBatch(newTestDB(t))
	ctx := context.Background()

	batch := &ImportBatch{
		BatchToken: "batch-1",
		FileName:   "roster.csv",
		Mode:       ImportModeBestEffort,
		Status:     ImportBatchStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, batch))

	found, err := repo.GetByToken(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, "roster.csv", found.FileName)
	assert.Equal(t, ImportBatchStatusRunning, found.Status)
}

func TestImportBatchRepository_GetByToken_NotFound(t *testing.T) {
	repo := NewImportBatch(newTestDB(t))

	_, err := repo.GetByToken(context.Background(), "missing")
	assert.Error(t, err)
}

func TestImportBatchRepository_Update(t *testing.T) {
	repo := NewImportBatch(newTestDB(t))
	ctx := context.Background()

	batch := &ImportBatch{
		BatchToken: "batch-1",
		Mode:       ImportModeBestEffort,
		Status:     ImportBatchStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, batch))

	now := time.Now().UTC()
	batch.Status = ImportBatchStatusCommitted
	batch.TotalRecords = 10
	batch.NewEmployees = 7
	batch.CompletedAt = &now
	require.NoError(t, repo.Update(ctx, batch))

	found, err := repo.GetByToken(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, ImportBatchStatusCommitted, found.Status)
	assert.Equal(t, 10, found.TotalRecords)
	assert.Equal(t, 7, found.NewEmployees)
	assert.NotNil(t, found.CompletedAt)
}

func TestImportBatchRepository_GetAll_NewestFirst(t *testing.T) {
	repo := NewImportBatch(newTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC()
	for i, token := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.Create(ctx, &ImportBatch{
			BatchToken: token,
			Mode:       ImportModeBestEffort,
			Status:     ImportBatchStatusCommitted,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	batches, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, "new", batches[0].BatchToken)
	assert.Equal(t, "old", batches[2].BatchToken)
}
