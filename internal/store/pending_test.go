package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPending_DuplicateKeepsExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, created, err := s.AddPending(ctx, " ORD-1 ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ORD-1", first.OrderCode)

	s.now = func() time.Time { return testNow.Add(time.Hour) }
	again, created, err := s.AddPending(ctx, "ORD-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, first.ScannedAt.Equal(again.ScannedAt), "existing entry is unchanged")

	pending, err := s.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, _, err = s.AddPending(ctx, "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListPending_OldestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i, code := range []string{"B", "A", "C"} {
		s.now = func() time.Time { return testNow.Add(time.Duration(i) * time.Minute) }
		_, _, err := s.AddPending(ctx, code)
		require.NoError(t, err)
	}

	pending, err := s.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "B", pending[0].OrderCode)
	assert.Equal(t, "A", pending[1].OrderCode)
	assert.Equal(t, "C", pending[2].OrderCode)
}

func TestEditPending(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _, err := s.AddPending(ctx, "A")
	require.NoError(t, err)
	_, _, err = s.AddPending(ctx, "B")
	require.NoError(t, err)

	edited, err := s.EditPending(ctx, a.ID, "A2")
	require.NoError(t, err)
	assert.Equal(t, "A2", edited.OrderCode)

	_, err = s.EditPending(ctx, a.ID, "B")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.EditPending(ctx, a.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.EditPending(ctx, 999, "Z")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePending(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _, err := s.AddPending(ctx, "A")
	require.NoError(t, err)
	_, _, err = s.AddPending(ctx, "B")
	require.NoError(t, err)

	require.NoError(t, s.DeletePending(ctx, a.ID))
	assert.ErrorIs(t, s.DeletePending(ctx, a.ID), ErrNotFound)

	require.NoError(t, s.DeletePendingByCode(ctx, "B"))
	assert.ErrorIs(t, s.DeletePendingByCode(ctx, "B"), ErrNotFound)
	assert.ErrorIs(t, s.DeletePendingByCode(ctx, ""), ErrValidation)

	pending, err := s.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
