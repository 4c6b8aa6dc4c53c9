// Package notify delivers the short success and failure messages the
// screens emit after each operation.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Level is the kind of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one message shown to the user.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Recorder keeps notifications in memory. The HTTP handlers return them in
// responses and tests inspect them.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	r.items = append(r.items, Notification{Level: level, Message: msg})
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Count returns how many notifications of level were recorded.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.Level == level {
			n++
		}
	}
	return n
}

// Reset drops all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.items = nil
	r.mu.Unlock()
}

// Log writes notifications to a zerolog logger.
type Log struct {
	log zerolog.Logger
}

// NewLog returns a notifier logging through log.
func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Success(msg string) { l.log.Info().Str("notification", string(LevelSuccess)).Msg(msg) }
func (l *Log) Error(msg string)   { l.log.Warn().Str("notification", string(LevelError)).Msg(msg) }

// Multi fans notifications out to several notifiers.
func Multi(notifiers ...Notifier) Notifier {
	return multi(notifiers)
}

type multi []Notifier

func (m multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}
