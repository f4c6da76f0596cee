package blog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mosunmola/midnight-hub/models"
	"github.com/mosunmola/midnight-hub/store"
)

const (
	defaultTitle          = "Untitled"
	defaultWordsPerMinute = 200
	displayDateFormat     = "Jan 02, 2006 • 03:04 PM"
)

// ErrNotFound is returned by operations that need an existing post
var ErrNotFound = errors.New("post not found")

// Defaults are the values substituted for absent fields at save time.
// Saving never rejects a post for missing inputs.
type Defaults struct {
	Author         string
	Category       string
	Mood           string
	WordsPerMinute int
}

// Repository owns the authoritative in-memory post collection and mirrors
// it to the injected store after every mutation. The in-memory state stays
// authoritative when a store write fails; the error is surfaced to the
// caller so it can retry.
type Repository struct {
	kv       store.KV
	notifier Notifier
	defaults Defaults
	log      *logrus.Logger
	mutex    sync.RWMutex
	posts    []models.Post
	now      func() time.Time
}

// NewRepository creates a repository and loads any previously persisted
// collection from the store.
func NewRepository(kv store.KV, notifier Notifier, defaults Defaults, log *logrus.Logger) (*Repository, error) {
	if defaults.WordsPerMinute < 1 {
		defaults.WordsPerMinute = defaultWordsPerMinute
	}

	r := &Repository{
		kv:       kv,
		notifier: notifier,
		defaults: defaults,
		log:      log,
		posts:    make([]models.Post, 0),
		now:      time.Now,
	}

	raw, ok, err := kv.Get(store.KeyPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	if ok {
		if err := json.Unmarshal(raw, &r.posts); err != nil {
			return nil, fmt.Errorf("failed to decode posts: %w", err)
		}
	}

	return r, nil
}

// SeedIfEmpty installs the starter collection when the store held nothing.
// Used on first boot so the site isn't blank.
func (r *Repository) SeedIfEmpty(posts []models.Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.posts) > 0 {
		return nil
	}

	r.posts = append(r.posts, posts...)
	return r.persistLocked()
}

// List returns a snapshot of the full collection in current order
func (r *Repository) List() []models.Post {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]models.Post, len(r.posts))
	copy(out, r.posts)
	return out
}

// Get returns the post with the given id
func (r *Repository) Get(id string) (models.Post, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return models.Post{}, false
	}
	return r.posts[idx], true
}

// CreateOrUpdate upserts a post: an existing id is replaced in place, a
// new post is prepended (newest first). The post is normalized before it
// is stored and the normalized copy is returned. A store-write failure is
// returned as the error while the in-memory collection keeps the edit.
func (r *Repository) CreateOrUpdate(post models.Post) (models.Post, error) {
	r.mutex.Lock()

	now := r.now()
	idx := r.indexLocked(post.ID)
	post = r.normalize(post, now)

	updated := idx >= 0
	if updated {
		r.posts[idx] = post
	} else {
		r.posts = append([]models.Post{post}, r.posts...)
	}

	err := r.persistLocked()
	r.mutex.Unlock()

	r.emitSaved(post, updated)
	return post, err
}

// Delete removes the post with the given id. An unknown id is a silent
// no-op. Deleting a post also removes its comment key from the store;
// the two writes are independent and not atomic together.
func (r *Repository) Delete(id string) error {
	r.mutex.Lock()

	idx := r.indexLocked(id)
	if idx < 0 {
		r.mutex.Unlock()
		return nil
	}

	title := r.posts[idx].Title
	r.posts = append(r.posts[:idx], r.posts[idx+1:]...)
	persistErr := r.persistLocked()
	r.mutex.Unlock()

	if err := r.kv.Remove(store.CommentsKey(id)); err != nil {
		r.log.WithError(err).WithField("post_id", id).Error("Failed to remove comments for deleted post")
	}

	r.notify(models.Event{
		Kind:      models.EventPostDeleted,
		PostID:    id,
		PostTitle: title,
		Message:   "A thought was released back to the void.",
	})

	return persistErr
}

// UpdateCounters applies a partial update restricted to the reaction and
// rating counters. An unknown id is a no-op (ok=false). Counters are
// clamped at zero.
func (r *Repository) UpdateCounters(id string, delta models.CounterDelta) (models.Post, bool, error) {
	r.mutex.Lock()

	idx := r.indexLocked(id)
	if idx < 0 {
		r.mutex.Unlock()
		return models.Post{}, false, nil
	}

	p := &r.posts[idx]
	if delta.Likes != nil {
		p.Likes = clampZero(*delta.Likes)
	}
	if delta.Dislikes != nil {
		p.Dislikes = clampZero(*delta.Dislikes)
	}
	if delta.RatingSum != nil {
		p.RatingSum = clampZero(*delta.RatingSum)
	}
	if delta.RatingCount != nil {
		p.RatingCount = clampZero(*delta.RatingCount)
	}

	out := *p
	err := r.persistLocked()
	r.mutex.Unlock()

	return out, true, err
}

// normalize fills absent fields, recomputes the derived ones, and
// resolves the lifecycle status from the scheduled time.
func (r *Repository) normalize(post models.Post, now time.Time) models.Post {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if strings.TrimSpace(post.Title) == "" {
		post.Title = defaultTitle
	}
	if post.Author == "" {
		post.Author = r.defaults.Author
	}
	if post.Category == "" {
		post.Category = r.defaults.Category
	}
	if post.Mood == "" {
		post.Mood = r.defaults.Mood
	}

	post.ReadingTime = readingTimeLabel(post.Content, r.defaults.WordsPerMinute)
	post.Date = now.Format(displayDateFormat)
	post.Status = resolveStatus(post.Status, post.ScheduledAt, now)
	if post.Status == models.StatusDraft {
		post.ScheduledAt = ""
	}

	post.Likes = clampZero(post.Likes)
	post.Dislikes = clampZero(post.Dislikes)
	post.RatingSum = clampZero(post.RatingSum)
	post.RatingCount = clampZero(post.RatingCount)

	return post
}

// resolveStatus derives the lifecycle status. A parsable scheduled time
// wins over the caller-supplied status: future means scheduled, past
// means published. Without a usable time, the caller's status stands,
// except that scheduled-without-a-time falls back to draft and an empty
// status defaults to draft.
func resolveStatus(status, scheduledAt string, now time.Time) string {
	if scheduledAt != "" {
		if t, err := time.Parse(time.RFC3339, scheduledAt); err == nil {
			if t.After(now) {
				return models.StatusScheduled
			}
			return models.StatusPublished
		}
		// unparsable: keep whatever the caller said; the sweep treats it
		// as never due
		if status == models.StatusScheduled || status == models.StatusPublished {
			return status
		}
		return models.StatusDraft
	}

	switch status {
	case models.StatusPublished:
		return models.StatusPublished
	case models.StatusScheduled:
		return models.StatusDraft
	default:
		return models.StatusDraft
	}
}

// readingTimeLabel estimates reading time from the word count, rounding
// up and never reporting less than one minute.
func readingTimeLabel(content string, wordsPerMinute int) string {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// indexLocked returns the position of id in the collection, -1 if absent
func (r *Repository) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range r.posts {
		if r.posts[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked mirrors the collection to the store. The caller must
// hold the write lock.
func (r *Repository) persistLocked() error {
	raw, err := json.Marshal(r.posts)
	if err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}

	if err := r.kv.Set(store.KeyPosts, raw); err != nil {
		r.log.WithError(err).Error("Failed to persist posts; in-memory state kept")
		return fmt.Errorf("failed to persist posts: %w", err)
	}

	return nil
}

func (r *Repository) emitSaved(post models.Post, updated bool) {
	action := "whispered into existence"
	if post.Status == models.StatusScheduled {
		action = "scheduled for future arrival"
	} else if updated {
		action = "refined once more"
	}

	r.notify(models.Event{
		Kind:      models.EventPostSaved,
		PostID:    post.ID,
		PostTitle: post.Title,
		Message:   fmt.Sprintf("%q has been %s.", post.Title, action),
	})
}

func (r *Repository) notify(event models.Event) {
	if r.notifier == nil {
		return
	}
	if event.At.IsZero() {
		event.At = r.now()
	}
	r.notifier.Notify(event)
}
