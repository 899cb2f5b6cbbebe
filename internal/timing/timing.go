// Package timing measures how long the steps of a command take.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Step is one finished step of a Timer
type Step struct {
	Name     string
	Duration time.Duration
}

// Timer records consecutive steps. Each step lasts from the end of the
// previous one (or the timer's creation) until Step is called.
type Timer struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	steps []Step
}

// NewTimer creates a timer running on the wall clock
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	t := now()
	return &Timer{now: now, start: t, last: t}
}

// Step ends the current step under name and returns its duration
func (t *Timer) Step(name string) time.Duration {
	n := t.now()
	d := n.Sub(t.last)
	t.last = n
	t.steps = append(t.steps, Step{Name: name, Duration: d})
	return d
}

// Total returns the time since the timer was created
func (t *Timer) Total() time.Duration {
	return t.now().Sub(t.start)
}

// String renders "register 1.000ms, git 12.500ms (total 13.500ms)"
func (t *Timer) String() string {
	parts := make([]string, 0, len(t.steps))
	for _, s := range t.steps {
		parts = append(parts, fmt.Sprintf("%s %s", s.Name, millis(s.Duration)))
	}
	total := fmt.Sprintf("total %s", millis(t.Total()))
	if len(parts) == 0 {
		return total
	}
	return fmt.Sprintf("%s (%s)", strings.Join(parts, ", "), total)
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
