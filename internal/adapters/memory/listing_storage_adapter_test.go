package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingStorageAdapter_CRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewListingStorageAdapter()

	require.NoError(t, s.Create(ctx, domain.DisplayListing{ID: "1", Name: "Loft", Images: []string{"a"}}))

	err := s.Create(ctx, domain.DisplayListing{ID: "1", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrListingExists)

	got, err := s.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Loft", got.Name)
	assert.False(t, got.CreatedAt.IsZero())

	// возвращаемые значения не разделяют память с хранилищем
	got.Images[0] = "mutated"
	again, _ := s.GetByID(ctx, "1")
	assert.Equal(t, "a", again.Images[0])

	patch := domain.NewListingPatch()
	patch.Set("NAME", "Big Loft")
	updated, err := s.Update(ctx, "1", patch)
	require.NoError(t, err)
	assert.Equal(t, "Big Loft", updated.Name)

	_, err = s.Update(ctx, "missing", patch)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	deleted, err := s.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", deleted.ID)

	_, err = s.Delete(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestListingStorageAdapter_FindKeepsOrderAndLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewListingStorageAdapter()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Create(ctx, domain.DisplayListing{ID: id}))
	}

	all, err := s.Find(ctx, domain.ListingQuery{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)

	limited, err := s.Find(ctx, domain.ListingQuery{}, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListingStorageAdapter_InsertBatchReportsFailedIndexes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewListingStorageAdapter()

	err := s.InsertBatch(ctx, []domain.NormalizedListing{{ID: "1"}, {ID: "1"}, {ID: "2"}})

	var batchErr *port.BatchInsertError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, []int{1}, batchErr.FailedIndexes)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	deleted, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
}

func TestListingStorageAdapter_RespectsCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewListingStorageAdapter().Find(ctx, domain.ListingQuery{}, 10)
	assert.ErrorIs(t, err, context.Canceled)
}
