package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castell-digital/marquee/internal/model"
)

// testStore hands back the shared database-backed store, skipping the test
// when no test database is configured.
func testStore(t *testing.T) Store {
	t.Helper()
	if TestStore == nil {
		if err := InitTestDB("../../migrations"); err != nil {
			t.Skipf("test database unavailable: %v", err)
		}
	}
	return TestStore
}

func makeScreen(t *testing.T, store Store, name string) model.Screen {
	t.Helper()
	sc, err := store.CreateScreen(name, nil, uuid.NewString())
	require.NoError(t, err)
	return sc
}

func makeContent(t *testing.T, store Store, title string) model.Content {
	t.Helper()
	url := "https://example.com/" + title
	c, err := store.CreateContent(title, model.ContentTypeWeb, nil, &url, 10, 0, nil)
	require.NoError(t, err)
	return c
}

func TestAppendEventStoresNullForDanglingContentID(t *testing.T) {
	store := testStore(t)
	screen := makeScreen(t, store, "Event Lobby")

	missing := 999999999
	ev, err := store.AppendEvent(screen.ID, "content_shown", &missing, model.JSONMap{"source": "cache"})
	require.NoError(t, err, "an event with a dangling content id must still append")
	assert.Nil(t, ev.ContentID)

	events, err := store.ListEvents(screen.ID, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].ContentID)
	assert.Equal(t, "content_shown", events[0].Action)
}

func TestAppendEventUnknownScreen(t *testing.T) {
	store := testStore(t)

	_, err := store.AppendEvent(999999999, "boot", nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventContentReferenceGoesNullOnContentDelete(t *testing.T) {
	store := testStore(t)
	screen := makeScreen(t, store, "Event Cafe")
	content := makeContent(t, store, "promo-reel")

	ev, err := store.AppendEvent(screen.ID, "content_shown", &content.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, ev.ContentID)

	require.NoError(t, store.DeleteContent(content.ID))

	events, err := store.ListEvents(screen.ID, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].ContentID, "deleting content must not break existing log rows")
}

func TestListEventsNewestFirstAndLimited(t *testing.T) {
	store := testStore(t)
	screen := makeScreen(t, store, "Event Hall")

	for _, action := range []string{"boot", "content_shown", "error"} {
		_, err := store.AppendEvent(screen.ID, action, nil, model.JSONMap{})
		require.NoError(t, err)
	}

	events, err := store.ListEvents(screen.ID, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "error", events[0].Action)
	assert.Equal(t, "content_shown", events[1].Action)
}

func TestAddItemToPlaylistDuplicateContentConflicts(t *testing.T) {
	store := testStore(t)
	playlist, err := store.CreatePlaylist("Dup check", nil)
	require.NoError(t, err)
	content := makeContent(t, store, "breakfast-menu")

	_, err = store.AddItemToPlaylist(playlist.ID, content.ID, 1)
	require.NoError(t, err)

	_, err = store.AddItemToPlaylist(playlist.ID, content.ID, 2)
	assert.ErrorIs(t, err, ErrConflict)

	items, err := store.ListPlaylistItems(playlist.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
