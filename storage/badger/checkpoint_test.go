package badger

import (
	"context"
	"testing"

	"github.com/poiesic/notekeep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRepository(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	cp, err := repos.Checkpoints.LoadCheckpoint(ctx, "tagging:1")
	require.NoError(t, err)
	assert.Nil(t, cp)

	require.NoError(t, repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{ProcessorType: "tagging:1", LastID: 42}))

	cp, err = repos.Checkpoints.LoadCheckpoint(ctx, "tagging:1")
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, core.ID(42), cp.LastID)
	assert.False(t, cp.UpdatedAt.IsZero())

	require.NoError(t, repos.Checkpoints.DeleteCheckpoint(ctx, "tagging:1"))
	require.NoError(t, repos.Checkpoints.DeleteCheckpoint(ctx, "tagging:1"))

	cp, err = repos.Checkpoints.LoadCheckpoint(ctx, "tagging:1")
	require.NoError(t, err)
	assert.Nil(t, cp)
}

func TestCheckpointRepository_RejectsInvalid(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	err := repos.Checkpoints.SaveCheckpoint(ctx, nil)
	assert.ErrorIs(t, err, core.ErrInvalidCheckpoint)

	err = repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{ProcessorType: "  ", LastID: 1})
	assert.ErrorIs(t, err, core.ErrInvalidCheckpoint)
}
