package blog

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mosunmola/midnight-hub/models"
)

// Sweep promotes every scheduled post whose time has come. It returns
// the number of posts promoted. A sweep that promotes nothing performs
// no store write and emits no event; a sweep that promotes one or more
// posts writes once and emits a single aggregate event. A scheduled time
// that fails to parse is treated as not due.
func (r *Repository) Sweep(now time.Time) int {
	r.mutex.Lock()

	promoted := 0
	for i := range r.posts {
		if r.posts[i].Status != models.StatusScheduled {
			continue
		}
		if !due(r.posts[i].ScheduledAt, now) {
			continue
		}
		r.posts[i].Status = models.StatusPublished
		promoted++
	}

	if promoted == 0 {
		r.mutex.Unlock()
		return 0
	}

	if err := r.persistLocked(); err != nil {
		r.log.WithError(err).Error("Failed to persist promoted posts")
	}
	r.mutex.Unlock()

	r.notify(models.Event{
		Kind:    models.EventPostsPromoted,
		Message: "A scheduled thought has successfully materialized in the hub.",
		At:      now,
	})

	return promoted
}

// due reports whether an RFC3339 scheduled time has elapsed. Malformed
// input is never due.
func due(scheduledAt string, now time.Time) bool {
	t, err := time.Parse(time.RFC3339, scheduledAt)
	if err != nil {
		return false
	}
	return !t.After(now)
}

// Scheduler drives the sweep on a wall-clock ticker
type Scheduler struct {
	repo     *Repository
	interval time.Duration
	log      *logrus.Logger
}

// NewScheduler creates a scheduler that sweeps every intervalSeconds
func NewScheduler(repo *Repository, intervalSeconds int, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		repo:     repo,
		interval: time.Duration(intervalSeconds) * time.Second,
		log:      log,
	}
}

// Start runs one immediate sweep so overdue posts surface without
// waiting, then sweeps at the configured interval until ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Scheduler) sweep() {
	promoted := s.repo.Sweep(time.Now())
	if promoted > 0 {
		s.log.WithFields(logrus.Fields{
			"promoted": promoted,
		}).Info("Scheduled posts published")
	}
}
