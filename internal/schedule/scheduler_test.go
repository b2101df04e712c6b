package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hverbeek/artflow/internal/models"
)

func newTestScheduler(t *testing.T) (*Scheduler, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.json")
	s, err := New(path)
	require.NoError(t, err)
	return s, path
}

func TestEmptySchedule(t *testing.T) {
	s, _ := newTestScheduler(t)

	assert.Empty(t, s.GetPending())
	assert.Empty(t, s.GetUpcoming())
	assert.Empty(t, s.GetHistory(0))
}

func TestAddPostReturnsUniqueIDs(t *testing.T) {
	s, _ := newTestScheduler(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, err := s.AddPost("painting", "/path/meta.json", "mastodon", time.Now().Add(time.Hour))
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestAddPostPersists(t *testing.T) {
	s, path := newTestScheduler(t)

	scheduled := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	id, err := s.AddPost("test_painting", "/path/to/meta.json", "mastodon", scheduled)
	require.NoError(t, err)

	reloaded, err := New(path)
	require.NoError(t, err)

	post := reloaded.Get(id)
	require.NotNil(t, post)
	assert.Equal(t, "test_painting", post.ContentID)
	assert.Equal(t, "/path/to/meta.json", post.MetadataPath)
	assert.Equal(t, "mastodon", post.Platform)
	assert.Equal(t, models.PostStatusScheduled, post.Status)
	assert.True(t, post.ScheduledTime.Equal(scheduled))

	// Resolution details belong to history records, not live posts.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "resolved_at")
}

func TestPendingAndUpcomingPartition(t *testing.T) {
	s, _ := newTestScheduler(t)

	past, err := s.AddPost("past", "/path", "mastodon", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	future, err := s.AddPost("future", "/path", "mastodon", time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	pending := s.GetPending()
	upcoming := s.GetUpcoming()

	require.Len(t, pending, 1)
	require.Len(t, upcoming, 1)
	assert.Equal(t, past, pending[0].ID)
	assert.Equal(t, future, upcoming[0].ID)

	// Disjoint and exhaustive over the scheduled set.
	ids := map[string]bool{}
	for _, p := range pending {
		ids[p.ID] = true
	}
	for _, p := range upcoming {
		assert.False(t, ids[p.ID])
		ids[p.ID] = true
	}
	assert.Len(t, ids, 2)
}

func TestPendingKeepsInsertionOrder(t *testing.T) {
	s, _ := newTestScheduler(t)

	first, err := s.AddPost("one", "/path", "mastodon", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	second, err := s.AddPost("two", "/path", "mastodon", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	pending := s.GetPending()
	require.Len(t, pending, 2)
	assert.Equal(t, first, pending[0].ID)
	assert.Equal(t, second, pending[1].ID)
}

func TestCancelPost(t *testing.T) {
	s, _ := newTestScheduler(t)

	id, err := s.AddPost("test", "/path", "mastodon", time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	cancelled, err := s.CancelPost(id)
	require.NoError(t, err)
	assert.True(t, cancelled)
	assert.Empty(t, s.GetUpcoming())
	assert.Empty(t, s.GetPending())

	// Cancellation is not history-worthy.
	assert.Empty(t, s.GetHistory(0))

	// A second cancel reports not found.
	cancelled, err = s.CancelPost(id)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestCancelNonexistentPost(t *testing.T) {
	s, _ := newTestScheduler(t)

	cancelled, err := s.CancelPost("nonexistent")
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestMarkPosted(t *testing.T) {
	s, _ := newTestScheduler(t)

	id, err := s.AddPost("test", "/path", "mastodon", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	require.NoError(t, s.MarkPosted(id, "https://example.com/post/123"))

	history := s.GetHistory(1)
	require.Len(t, history, 1)
	assert.Equal(t, models.PostStatusPosted, history[0].Status)
	assert.Equal(t, "https://example.com/post/123", history[0].PostURL)
	assert.Empty(t, history[0].Error)

	// Terminal posts leave the live set.
	assert.Nil(t, s.Get(id))
	assert.Empty(t, s.GetPending())
}

func TestMarkFailed(t *testing.T) {
	s, _ := newTestScheduler(t)

	id, err := s.AddPost("test", "/path", "mastodon", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	require.NoError(t, s.MarkFailed(id, "Connection timeout"))

	history := s.GetHistory(1)
	require.Len(t, history, 1)
	assert.Equal(t, models.PostStatusFailed, history[0].Status)
	assert.Equal(t, "Connection timeout", history[0].Error)
	assert.Empty(t, history[0].PostURL)
	assert.Nil(t, s.Get(id))
}

func TestMarkPostedUnknownID(t *testing.T) {
	s, _ := newTestScheduler(t)

	err := s.MarkPosted("nonexistent", "https://example.com")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestTerminalPostCannotBeCancelled(t *testing.T) {
	s, _ := newTestScheduler(t)

	id, err := s.AddPost("test", "/path", "mastodon", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, s.MarkPosted(id, "https://example.com/1"))

	cancelled, err := s.CancelPost(id)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestHistoryLimit(t *testing.T) {
	s, _ := newTestScheduler(t)

	for i := 0; i < 10; i++ {
		id, err := s.AddPost("test", "/path", "mastodon", time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.NoError(t, s.MarkPosted(id, "https://example.com/1"))
	}

	assert.Len(t, s.GetHistory(5), 5)
	assert.Len(t, s.GetHistory(0), 10)
	assert.Len(t, s.GetHistory(100), 10)
}

func TestHistoryMostRecentFirst(t *testing.T) {
	s, _ := newTestScheduler(t)

	for _, content := range []string{"first", "second", "third"} {
		id, err := s.AddPost(content, "/path", "mastodon", time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.NoError(t, s.MarkFailed(id, "boom"))
	}

	history := s.GetHistory(2)
	require.Len(t, history, 2)
	assert.Equal(t, "third", history[0].ContentID)
	assert.Equal(t, "second", history[1].ContentID)
}

func TestHistorySurvivesReload(t *testing.T) {
	s, path := newTestScheduler(t)

	id, err := s.AddPost("test", "/path", "mastodon", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, s.MarkPosted(id, "https://example.com/1"))

	reloaded, err := New(path)
	require.NoError(t, err)

	history := reloaded.GetHistory(1)
	require.Len(t, history, 1)
	assert.Equal(t, id, history[0].ID)
	assert.Equal(t, models.PostStatusPosted, history[0].Status)
}

func TestSaveFailureRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "nested", "schedule.json")
	s := &Scheduler{
		path: path,
		data: document{ScheduledPosts: map[string]*models.ScheduledPost{}},
	}

	// The parent directory does not exist, so the temp file creation fails.
	_, err := s.AddPost("test", "/path", "mastodon", time.Now())
	require.Error(t, err)

	assert.Empty(t, s.GetPending())
	assert.Empty(t, s.GetUpcoming())
	assert.Empty(t, s.data.Order)
}

func TestSaveFailureKeepsOrder(t *testing.T) {
	s, _ := newTestScheduler(t)

	first, err := s.AddPost("one", "/path", "mastodon", time.Now().Add(-3*time.Hour))
	require.NoError(t, err)
	second, err := s.AddPost("two", "/path", "mastodon", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	third, err := s.AddPost("three", "/path", "mastodon", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	// Redirect the schedule into a missing directory so the next save fails.
	s.path = filepath.Join(t.TempDir(), "missing-dir", "schedule.json")

	_, err = s.CancelPost(second)
	require.Error(t, err)

	pending := s.GetPending()
	require.Len(t, pending, 3)
	assert.Equal(t, first, pending[0].ID)
	assert.Equal(t, second, pending[1].ID)
	assert.Equal(t, third, pending[2].ID)

	err = s.MarkFailed(second, "boom")
	require.Error(t, err)

	pending = s.GetPending()
	require.Len(t, pending, 3)
	assert.Equal(t, second, pending[1].ID)
	assert.Empty(t, s.GetHistory(0))
}

func TestDuePostScenario(t *testing.T) {
	s, _ := newTestScheduler(t)

	id, err := s.AddPost("painting", "/path/meta.json", "mastodon", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	pending := s.GetPending()
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
	assert.Empty(t, s.GetUpcoming())

	require.NoError(t, s.MarkPosted(id, "https://example.com/1"))

	history := s.GetHistory(1)
	require.Len(t, history, 1)
	assert.Equal(t, models.PostStatusPosted, history[0].Status)
	assert.Equal(t, "https://example.com/1", history[0].PostURL)
	assert.Empty(t, s.GetPending())
}
