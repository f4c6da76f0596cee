package blog

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosunmola/midnight-hub/models"
	"github.com/mosunmola/midnight-hub/store"
)

// countingKV wraps the in-memory store to count writes per key
type countingKV struct {
	*store.Memory
	sets    map[string]int
	removes map[string]int
}

func newCountingKV() *countingKV {
	return &countingKV{
		Memory:  store.NewMemory(),
		sets:    make(map[string]int),
		removes: make(map[string]int),
	}
}

func (c *countingKV) Set(key string, value []byte) error {
	c.sets[key]++
	return c.Memory.Set(key, value)
}

func (c *countingKV) Remove(key string) error {
	c.removes[key]++
	return c.Memory.Remove(key)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testDefaults() Defaults {
	return Defaults{
		Author:         "Mosunmola, Esq",
		Category:       "Reflections",
		Mood:           "Quiet",
		WordsPerMinute: 200,
	}
}

func newTestRepo(t *testing.T, kv store.KV) (*Repository, *EventLog) {
	t.Helper()

	events := NewEventLog(50)
	repo, err := NewRepository(kv, events, testDefaults(), testLogger())
	require.NoError(t, err)

	repo.now = func() time.Time {
		return time.Date(2024, time.March, 15, 2, 30, 0, 0, time.UTC)
	}
	return repo, events
}

func TestCreateOrUpdateDefaults(t *testing.T) {
	repo, _ := newTestRepo(t, store.NewMemory())

	saved, err := repo.CreateOrUpdate(models.Post{Title: "", Content: ""})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Untitled", saved.Title)
	assert.Equal(t, models.StatusDraft, saved.Status)
	assert.Equal(t, "1 min", saved.ReadingTime)
	assert.Equal(t, "Reflections", saved.Category)
	assert.Equal(t, "Quiet", saved.Mood)
	assert.Equal(t, "Mosunmola, Esq", saved.Author)
	assert.Equal(t, "Mar 15, 2024 • 02:30 AM", saved.Date)
}

func TestCreateOrUpdateUniqueIDs(t *testing.T) {
	repo, _ := newTestRepo(t, store.NewMemory())

	for i := 0; i < 20; i++ {
		_, err := repo.CreateOrUpdate(models.Post{Title: "night thought", Status: models.StatusPublished})
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for _, p := range repo.List() {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestCreateOrUpdateUpsertIdempotence(t *testing.T) {
	repo, _ := newTestRepo(t, store.NewMemory())

	post := models.Post{ID: "p1", Title: "First", Status: models.StatusPublished}
	first, err := repo.CreateOrUpdate(post)
	require.NoError(t, err)

	second, err := repo.CreateOrUpdate(post)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, repo.List(), 1)
}

func TestCreateOrUpdatePrependsNewest(t *testing.T) {
	repo, _ := newTestRepo(t, store.NewMemory())

	_, err := repo.CreateOrUpdate(models.Post{ID: "old", Title: "Old", Status: models.StatusPublished})
	require.NoError(t, err)
	_, err = repo.CreateOrUpdate(models.Post{ID: "new", Title: "New", Status: models.StatusPublished})
	require.NoError(t, err)

	posts := repo.List()
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].ID)
	assert.Equal(t, "old", posts[1].ID)

	// updating in place keeps the slot
	_, err = repo.CreateOrUpdate(models.Post{ID: "old", Title: "Old revised", Status: models.StatusPublished})
	require.NoError(t, err)

	posts = repo.List()
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].ID)
	assert.Equal(t, "Old revised", posts[1].Title)
}

func TestReadingTimeRecomputed(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		expected string
	}{
		{name: "Empty content", words: 0, expected: "1 min"},
		{name: "Under one minute", words: 50, expected: "1 min"},
		{name: "Exactly one minute", words: 200, expected: "1 min"},
		{name: "Rounds up", words: 201, expected: "2 min"},
		{name: "Long read", words: 1000, expected: "5 min"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, _ := newTestRepo(t, store.NewMemory())

			content := ""
			for i := 0; i < tc.words; i++ {
				content += "word "
			}

			saved, err := repo.CreateOrUpdate(models.Post{Title: "t", Content: content})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, saved.ReadingTime)
		})
	}
}

func TestStatusDerivedFromScheduledAt(t *testing.T) {
	now := time.Date(2024, time.March, 15, 2, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		status      string
		scheduledAt string
		expected    string
	}{
		{
			name:        "Future time forces scheduled",
			status:      models.StatusPublished,
			scheduledAt: now.Add(time.Hour).Format(time.RFC3339),
			expected:    models.StatusScheduled,
		},
		{
			name:        "Past time forces published",
			status:      models.StatusScheduled,
			scheduledAt: now.Add(-time.Hour).Format(time.RFC3339),
			expected:    models.StatusPublished,
		},
		{
			name:     "Scheduled without a time falls back to draft",
			status:   models.StatusScheduled,
			expected: models.StatusDraft,
		},
		{
			name:     "Blank status defaults to draft",
			expected: models.StatusDraft,
		},
		{
			name:        "Unparsable time keeps caller status",
			status:      models.StatusScheduled,
			scheduledAt: "sometime after midnight",
			expected:    models.StatusScheduled,
		},
		{
			name:     "Explicit published without a time stands",
			status:   models.StatusPublished,
			expected: models.StatusPublished,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, _ := newTestRepo(t, store.NewMemory())

			saved, err := repo.CreateOrUpdate(models.Post{
				Title:       "t",
				Status:      tc.status,
				ScheduledAt: tc.scheduledAt,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, saved.Status)
		})
	}
}

func TestDeleteRemovesCommentsExactlyOnce(t *testing.T) {
	kv := newCountingKV()
	repo, events := newTestRepo(t, kv)

	_, err := repo.CreateOrUpdate(models.Post{ID: "p1", Title: "t", Status: models.StatusPublished})
	require.NoError(t, err)

	_, err = repo.AddComment("p1", "owl", "a whisper")
	require.NoError(t, err)

	require.NoError(t, repo.Delete("p1"))

	assert.Empty(t, repo.List())
	assert.Equal(t, 1, kv.removes[store.CommentsKey("p1")])

	_, ok, err := kv.Get(store.CommentsKey("p1"))
	require.NoError(t, err)
	assert.False(t, ok)

	// a repeated delete is a no-op and does not signal cleanup again
	require.NoError(t, repo.Delete("p1"))
	assert.Equal(t, 1, kv.removes[store.CommentsKey("p1")])

	recent := events.Recent(0)
	deleted := 0
	for _, e := range recent {
		if e.Kind == models.EventPostDeleted {
			deleted++
		}
	}
	assert.Equal(t, 1, deleted)
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	kv := newCountingKV()
	repo, events := newTestRepo(t, kv)

	require.NoError(t, repo.Delete("ghost"))
	assert.Empty(t, kv.removes)
	assert.Empty(t, events.Recent(0))
}

func TestUpdateCountersUnknownIDIsNoOp(t *testing.T) {
	repo, _ := newTestRepo(t, store.NewMemory())

	likes := 5
	_, ok, err := repo.UpdateCounters("ghost", models.CounterDelta{Likes: &likes})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateCountersClampsAtZero(t *testing.T) {
	repo, _ := newTestRepo(t, store.NewMemory())

	_, err := repo.CreateOrUpdate(models.Post{ID: "p1", Title: "t", Status: models.StatusPublished})
	require.NoError(t, err)

	negative := -3
	updated, ok, err := repo.UpdateCounters("p1", models.CounterDelta{Likes: &negative, Dislikes: &negative})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, updated.Likes)
	assert.Equal(t, 0, updated.Dislikes)
}

func TestStoreFailureKeepsMemoryAuthoritative(t *testing.T) {
	kv := store.NewMemory()
	repo, _ := newTestRepo(t, kv)

	kv.FailWrites = true
	saved, err := repo.CreateOrUpdate(models.Post{Title: "unpersisted", Status: models.StatusPublished})
	assert.Error(t, err)

	// the edit survives in memory despite the failed mirror write
	got, ok := repo.Get(saved.ID)
	require.True(t, ok)
	assert.Equal(t, "unpersisted", got.Title)
}

func TestRepositoryReloadsFromStore(t *testing.T) {
	kv := store.NewMemory()
	repo, _ := newTestRepo(t, kv)

	_, err := repo.CreateOrUpdate(models.Post{ID: "p1", Title: "persisted", Status: models.StatusPublished})
	require.NoError(t, err)

	reloaded, err := NewRepository(kv, nil, testDefaults(), testLogger())
	require.NoError(t, err)

	posts := reloaded.List()
	require.Len(t, posts, 1)
	assert.Equal(t, "persisted", posts[0].Title)
}

func TestSeedIfEmpty(t *testing.T) {
	kv := store.NewMemory()
	repo, _ := newTestRepo(t, kv)

	require.NoError(t, repo.SeedIfEmpty(StarterPosts()))
	assert.Len(t, repo.List(), 3)

	// a second seed must not duplicate
	require.NoError(t, repo.SeedIfEmpty(StarterPosts()))
	assert.Len(t, repo.List(), 3)
}

func TestAverageRatingComputedOnRead(t *testing.T) {
	p := models.Post{RatingSum: 6, RatingCount: 2}
	assert.InDelta(t, 3.0, p.AverageRating(), 0.0001)

	empty := models.Post{}
	assert.Equal(t, 0.0, empty.AverageRating())
}
