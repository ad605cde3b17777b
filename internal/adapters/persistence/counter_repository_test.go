package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/brazier-go/internal/adapters/persistence"
	"github.com/andrescamacho/brazier-go/test/helpers"
)

func TestCounterRepository_IncrementCreatesAndAdds(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCounterRepository(db)
	ctx := context.Background()

	// Act
	first, err := repo.Increment(ctx, "jobs", 4)
	require.NoError(t, err)
	second, err := repo.Increment(ctx, "jobs", 1)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(4), first)
	assert.Equal(t, int64(5), second)

	found, err := repo.Get(ctx, "jobs")
	require.NoError(t, err)
	assert.Equal(t, int64(5), found)
}

func TestCounterRepository_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCounterRepository(db)

	_, err := repo.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, persistence.ErrCounterNotFound)
}
