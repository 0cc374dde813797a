// internal/pkg/notify/notify.go

// Package notify surfaces operation outcomes to the user as transient
// notifications. Stores report through a Notifier instead of letting errors
// escape into the presentation layer.
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notification is a single transient message shown to the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives transient user-facing notifications.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

// Log is a Notifier that writes notifications to the application logger.
type Log struct {
	logger *logrus.Logger
}

// NewLog creates a logger-backed Notifier
func NewLog(logger *logrus.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Success(message string) {
	l.logger.WithField("notification", LevelSuccess).Info(message)
}

func (l *Log) Info(message string) {
	l.logger.WithField("notification", LevelInfo).Info(message)
}

func (l *Log) Error(message string) {
	l.logger.WithField("notification", LevelError).Error(message)
}

// Recorder is a Notifier that captures notifications for assertions in tests.
type Recorder struct {
	mu       sync.Mutex
	Messages []Notification
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(message string) { r.record(LevelSuccess, message) }
func (r *Recorder) Info(message string)    { r.record(LevelInfo, message) }
func (r *Recorder) Error(message string)   { r.record(LevelError, message) }

func (r *Recorder) record(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Notification{Level: level, Message: message})
}

// Errors returns the messages recorded at the error level.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.Messages {
		if n.Level == LevelError {
			out = append(out, n.Message)
		}
	}
	return out
}

// Reset clears recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = nil
}
