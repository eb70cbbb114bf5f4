package lightbox_test

import (
	"testing"
	"time"

	"github.com/adampresley/yearinreview/pkg/lightbox"
	"github.com/adampresley/yearinreview/pkg/models"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	store := lightbox.NewSessionStore(lightbox.SessionStoreConfig{})

	id := store.NewID()
	require.Len(t, id, 36)
	require.NotEqual(t, id, store.NewID())

	_, ok := store.Get(id)
	require.False(t, ok)

	state := models.LightboxState{ID: id, AlbumID: "italy", Images: []string{"a", "b"}, Index: 1}
	store.Put(state)

	state.Images[0] = "changed"

	got, ok := store.Get(id)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, got.Images)
	require.Equal(t, 1, got.Index)

	got.Images[1] = "changed"
	again, _ := store.Get(id)
	require.Equal(t, "b", again.Images[1])

	store.Put(models.LightboxState{AlbumID: "no id"})
	require.Equal(t, 1, store.Len())

	store.Delete(id)
	_, ok = store.Get(id)
	require.False(t, ok)
	require.Zero(t, store.Len())
}

func TestSessionStoreExpiresIdleSessions(t *testing.T) {
	now := time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)

	store := lightbox.NewSessionStore(lightbox.SessionStoreConfig{
		MaxAge: time.Hour,
		Now:    func() time.Time { return now },
	})

	store.Put(models.LightboxState{ID: "old", Images: []string{"a"}})

	now = now.Add(30 * time.Minute)
	_, ok := store.Get("old")
	require.True(t, ok)

	now = now.Add(31 * time.Minute)
	_, ok = store.Get("old")
	require.False(t, ok)

	store.Put(models.LightboxState{ID: "new", Images: []string{"b"}})
	require.Equal(t, 1, store.Len())
}
