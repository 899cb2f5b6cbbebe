package report

import "strings"

// Level identifies the kind of a recorded message
type Level string

// Message levels
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Message is one recorded report
type Message struct {
	Level Level
	Text  string
}

// Recorder is a Reporter that keeps every message in memory
type Recorder struct {
	Messages []Message
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level Level, msg string) {
	r.Messages = append(r.Messages, Message{Level: level, Text: msg})
}

// Info implements Reporter
func (r *Recorder) Info(msg string) { r.add(LevelInfo, msg) }

// Success implements Reporter
func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }

// Warn implements Reporter
func (r *Recorder) Warn(msg string) { r.add(LevelWarn, msg) }

// Error implements Reporter
func (r *Recorder) Error(msg string) { r.add(LevelError, msg) }

// Texts returns the text of every message at level, in order
func (r *Recorder) Texts(level Level) []string {
	var out []string
	for _, m := range r.Messages {
		if m.Level == level {
			out = append(out, m.Text)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, text := range r.Texts(level) {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}
