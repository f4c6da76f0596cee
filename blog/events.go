package blog

import (
	"sync"

	"github.com/mosunmola/midnight-hub/models"
)

// Notifier receives lifecycle events emitted by the repository
type Notifier interface {
	Notify(event models.Event)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(event models.Event)

// Notify calls f(event)
func (f NotifierFunc) Notify(event models.Event) {
	f(event)
}

// EventLog keeps the most recent lifecycle events so the UI can poll for
// notification toasts. It implements Notifier.
type EventLog struct {
	mutex    sync.RWMutex
	events   []models.Event
	capacity int
}

// NewEventLog creates an event log that retains up to capacity events
func NewEventLog(capacity int) *EventLog {
	if capacity < 1 {
		capacity = 1
	}
	return &EventLog{
		events:   make([]models.Event, 0, capacity),
		capacity: capacity,
	}
}

// Notify records an event, newest first, evicting the oldest when full
func (l *EventLog) Notify(event models.Event) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.events = append([]models.Event{event}, l.events...)
	if len(l.events) > l.capacity {
		l.events = l.events[:l.capacity]
	}
}

// Recent returns up to limit of the newest events
func (l *EventLog) Recent(limit int) []models.Event {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if limit <= 0 || limit > len(l.events) {
		limit = len(l.events)
	}

	out := make([]models.Event, limit)
	copy(out, l.events[:limit])
	return out
}
