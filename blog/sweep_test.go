package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosunmola/midnight-hub/models"
	"github.com/mosunmola/midnight-hub/store"
)

// injectPosts puts the collection into an exact state, bypassing save
// normalization, the way a persisted collection would be reloaded
func injectPosts(t *testing.T, repo *Repository, posts ...models.Post) {
	t.Helper()

	repo.mutex.Lock()
	repo.posts = append([]models.Post{}, posts...)
	err := repo.persistLocked()
	repo.mutex.Unlock()
	require.NoError(t, err)
}

func TestSweepPromotesDuePostsOnly(t *testing.T) {
	repo, events := newTestRepo(t, store.NewMemory())
	now := time.Date(2024, time.March, 15, 3, 0, 0, 0, time.UTC)

	injectPosts(t, repo,
		models.Post{
			ID:          "a",
			Title:       "due",
			Status:      models.StatusScheduled,
			ScheduledAt: now.Add(-time.Second).Format(time.RFC3339),
		},
		models.Post{
			ID:          "b",
			Title:       "later",
			Status:      models.StatusScheduled,
			ScheduledAt: now.Add(time.Hour).Format(time.RFC3339),
		},
	)

	promoted := repo.Sweep(now)
	assert.Equal(t, 1, promoted)

	a, _ := repo.Get("a")
	b, _ := repo.Get("b")
	assert.Equal(t, models.StatusPublished, a.Status)
	assert.Equal(t, models.StatusScheduled, b.Status)

	// exactly one aggregate event for the whole sweep
	recent := events.Recent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, models.EventPostsPromoted, recent[0].Kind)
}

func TestSweepPromotesSeveralWithOneEvent(t *testing.T) {
	repo, events := newTestRepo(t, store.NewMemory())
	now := time.Date(2024, time.March, 15, 3, 0, 0, 0, time.UTC)

	injectPosts(t, repo,
		models.Post{ID: "a", Status: models.StatusScheduled, ScheduledAt: now.Add(-time.Second).Format(time.RFC3339)},
		models.Post{ID: "b", Status: models.StatusScheduled, ScheduledAt: now.Add(-time.Minute).Format(time.RFC3339)},
		models.Post{ID: "c", Status: models.StatusDraft},
	)

	assert.Equal(t, 2, repo.Sweep(now))
	assert.Len(t, events.Recent(0), 1)

	c, _ := repo.Get("c")
	assert.Equal(t, models.StatusDraft, c.Status, "drafts never auto-publish")
}

func TestSweepNoOpWritesNothing(t *testing.T) {
	kv := newCountingKV()
	repo, events := newTestRepo(t, kv)
	now := time.Date(2024, time.March, 15, 3, 0, 0, 0, time.UTC)

	injectPosts(t, repo, models.Post{
		ID:          "b",
		Title:       "later",
		Status:      models.StatusScheduled,
		ScheduledAt: now.Add(time.Hour).Format(time.RFC3339),
	})

	setsBefore := kv.sets[store.KeyPosts]
	snapshot := repo.List()

	assert.Equal(t, 0, repo.Sweep(now))

	assert.Equal(t, setsBefore, kv.sets[store.KeyPosts], "no-op sweep must not write")
	assert.Empty(t, events.Recent(0), "no-op sweep must not emit")
	assert.Equal(t, snapshot, repo.List())
}

func TestSweepMonotonic(t *testing.T) {
	repo, _ := newTestRepo(t, store.NewMemory())
	now := time.Date(2024, time.March, 15, 3, 0, 0, 0, time.UTC)

	injectPosts(t, repo, models.Post{
		ID:          "a",
		Title:       "due",
		Status:      models.StatusScheduled,
		ScheduledAt: now.Add(-time.Minute).Format(time.RFC3339),
	})

	require.Equal(t, 1, repo.Sweep(now))
	a, _ := repo.Get("a")
	require.Equal(t, models.StatusPublished, a.Status)

	// every later sweep leaves it published
	for i := 1; i <= 3; i++ {
		assert.Equal(t, 0, repo.Sweep(now.Add(time.Duration(i)*time.Hour)))
		a, _ = repo.Get("a")
		assert.Equal(t, models.StatusPublished, a.Status)
	}
}

func TestSweepSkipsMalformedScheduledAt(t *testing.T) {
	repo, events := newTestRepo(t, store.NewMemory())
	now := time.Date(2024, time.March, 15, 3, 0, 0, 0, time.UTC)

	injectPosts(t, repo, models.Post{
		ID:          "m",
		Title:       "mystery",
		Status:      models.StatusScheduled,
		ScheduledAt: "sometime after midnight",
	})

	assert.Equal(t, 0, repo.Sweep(now))

	m, _ := repo.Get("m")
	assert.Equal(t, models.StatusScheduled, m.Status)
	assert.Empty(t, events.Recent(0))
}

func TestSweepPromotionKeepsHistoricalScheduledAt(t *testing.T) {
	repo, _ := newTestRepo(t, store.NewMemory())
	now := time.Date(2024, time.March, 15, 3, 0, 0, 0, time.UTC)
	at := now.Add(-time.Minute).Format(time.RFC3339)

	injectPosts(t, repo, models.Post{ID: "a", Status: models.StatusScheduled, ScheduledAt: at})

	repo.Sweep(now)
	a, _ := repo.Get("a")
	assert.Equal(t, models.StatusPublished, a.Status)
	assert.Equal(t, at, a.ScheduledAt)
}

func TestDue(t *testing.T) {
	now := time.Date(2024, time.March, 15, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		scheduledAt string
		expected    bool
	}{
		{name: "Past", scheduledAt: now.Add(-time.Second).Format(time.RFC3339), expected: true},
		{name: "Exactly now", scheduledAt: now.Format(time.RFC3339), expected: true},
		{name: "Future", scheduledAt: now.Add(time.Second).Format(time.RFC3339), expected: false},
		{name: "Empty", scheduledAt: "", expected: false},
		{name: "Garbage", scheduledAt: "when the moon is full", expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, due(tc.scheduledAt, now))
		})
	}
}
