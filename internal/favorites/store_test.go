package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinsol-dev/busango/internal/models"
)

func createTestStore(t *testing.T, identity IdentityProvider) *Store {
	t.Helper()
	store, err := NewStore(":memory:", identity, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndList(t *testing.T) {
	store := createTestStore(t, StaticIdentity("owner-1"))
	ctx := context.Background()

	fav, err := store.Add(ctx, models.FavoriteStop, "167550107", "서면역")
	require.NoError(t, err)
	assert.NotEmpty(t, fav.ID)
	assert.Equal(t, "owner-1", fav.OwnerID)
	assert.Equal(t, models.FavoriteStop, fav.Kind)
	assert.NotZero(t, fav.CreatedAt)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fav.ID, list[0].ID)
	assert.Equal(t, "서면역", list[0].Name)
}

func TestAddDuplicateReturnsErrExists(t *testing.T) {
	store := createTestStore(t, StaticIdentity("owner-1"))
	ctx := context.Background()

	_, err := store.Add(ctx, models.FavoriteBus, "5200017000", "107")
	require.NoError(t, err)

	_, err = store.Add(ctx, models.FavoriteBus, "5200017000", "107")
	assert.ErrorIs(t, err, ErrExists)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSameTargetDifferentKindBothAllowed(t *testing.T) {
	store := createTestStore(t, StaticIdentity("owner-1"))
	ctx := context.Background()

	_, err := store.Add(ctx, models.FavoriteStop, "167550107", "서면역")
	require.NoError(t, err)
	_, err = store.Add(ctx, models.FavoriteBus, "167550107", "서면역")
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListNewestFirstZeroTimestampLast(t *testing.T) {
	store := createTestStore(t, StaticIdentity("owner-1"))
	ctx := context.Background()

	older, err := store.Add(ctx, models.FavoriteStop, "stop-old", "old")
	require.NoError(t, err)
	// Backdate one record and zero another to exercise the ordering.
	_, err = store.db.Exec(`UPDATE favorites SET created_at = ? WHERE id = ?`,
		time.Now().Add(-time.Hour).UnixMilli(), older.ID)
	require.NoError(t, err)

	legacy, err := store.Add(ctx, models.FavoriteStop, "stop-legacy", "legacy")
	require.NoError(t, err)
	_, err = store.db.Exec(`UPDATE favorites SET created_at = 0 WHERE id = ?`, legacy.ID)
	require.NoError(t, err)

	newest, err := store.Add(ctx, models.FavoriteStop, "stop-new", "new")
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, newest.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, legacy.ID, list[2].ID, "Expected the record without a timestamp to sort last")
}

func TestRemove(t *testing.T) {
	store := createTestStore(t, StaticIdentity("owner-1"))
	ctx := context.Background()

	fav, err := store.Add(ctx, models.FavoriteStop, "167550107", "서면역")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, fav.ID))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Removing an absent id is a quiet no-op.
	assert.NoError(t, store.Remove(ctx, fav.ID))
}

func TestOwnersAreIsolated(t *testing.T) {
	db := t.TempDir() + "/favorites.db"
	first, err := NewStore(db, StaticIdentity("owner-1"), nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })
	second, err := NewStore(db, StaticIdentity("owner-2"), nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	ctx := context.Background()
	fav, err := first.Add(ctx, models.FavoriteStop, "167550107", "서면역")
	require.NoError(t, err)

	list, err := second.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "Expected owner-2 to see none of owner-1's favorites")

	// Another owner cannot delete the record either.
	require.NoError(t, second.Remove(ctx, fav.ID))
	list, err = first.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFavoriteIDAndIsFavorite(t *testing.T) {
	store := createTestStore(t, StaticIdentity("owner-1"))
	ctx := context.Background()

	fav, err := store.Add(ctx, models.FavoriteBus, "5200017000", "107")
	require.NoError(t, err)

	id, found, err := store.FavoriteID(ctx, models.FavoriteBus, "5200017000")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, fav.ID, id)

	ok, err := store.IsFavorite(ctx, models.FavoriteBus, "5200017000")
	require.NoError(t, err)
	assert.True(t, ok)

	// Exact match on kind and target, no partials.
	ok, err = store.IsFavorite(ctx, models.FavoriteStop, "5200017000")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = store.IsFavorite(ctx, models.FavoriteBus, "52000170")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubscribeDeliversInitialAndUpdatedLists(t *testing.T) {
	store := createTestStore(t, StaticIdentity("owner-1"))
	ctx := context.Background()

	ch, cancel, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	select {
	case list := <-ch:
		assert.Empty(t, list)
	case <-time.After(time.Second):
		t.Fatal("expected the initial list immediately")
	}

	fav, err := store.Add(ctx, models.FavoriteStop, "167550107", "서면역")
	require.NoError(t, err)

	select {
	case list := <-ch:
		require.Len(t, list, 1)
		assert.Equal(t, fav.ID, list[0].ID)
	case <-time.After(time.Second):
		t.Fatal("expected a refreshed list after Add")
	}

	require.NoError(t, store.Remove(ctx, fav.ID))

	select {
	case list := <-ch:
		assert.Empty(t, list)
	case <-time.After(time.Second):
		t.Fatal("expected a refreshed list after Remove")
	}
}

func TestSubscribeCoalescesBursts(t *testing.T) {
	store := createTestStore(t, StaticIdentity("owner-1"))
	ctx := context.Background()

	ch, cancel, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	// Do not drain between writes: the channel should end up holding only
	// the newest list.
	for _, target := range []string{"a", "b", "c"} {
		_, err := store.Add(ctx, models.FavoriteStop, target, target)
		require.NoError(t, err)
	}

	list := <-ch
	assert.Len(t, list, 3)
	select {
	case <-ch:
		t.Fatal("expected intermediate lists to be coalesced away")
	default:
	}
}

func TestCancelClosesSubscription(t *testing.T) {
	store := createTestStore(t, StaticIdentity("owner-1"))
	ctx := context.Background()

	ch, cancel, err := store.Subscribe(ctx)
	require.NoError(t, err)
	cancel()
	cancel() // idempotent

	for range ch {
	}

	// Writes after cancel must not panic on the closed channel.
	_, err = store.Add(ctx, models.FavoriteStop, "167550107", "서면역")
	assert.NoError(t, err)
}

func TestInertStore(t *testing.T) {
	store := createTestStore(t, StaticIdentity(""))
	ctx := context.Background()

	assert.True(t, store.Inert())

	fav, err := store.Add(ctx, models.FavoriteStop, "167550107", "서면역")
	require.NoError(t, err)
	assert.Empty(t, fav.ID)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	ok, err := store.IsFavorite(ctx, models.FavoriteStop, "167550107")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Remove(ctx, "anything"))
}
