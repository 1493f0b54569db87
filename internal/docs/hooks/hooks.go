// Package hooks dispatches documentation events to registered listeners.
//
// Event names are dotted, e.g.
// "docs.request-params.myservice.SampleOperation.complete-section". A
// listener pattern matches an event when every pattern segment is "*" or
// equal to the event segment at the same position; a pattern with fewer
// segments matches every event that starts with it.
package hooks

import (
	"log/slog"
	"strings"

	"github.com/yourorg/sdkdoc/internal/docs/section"
)

// Emitter delivers an event together with the section it concerns.
type Emitter interface {
	Emit(event string, s *section.Section)
}

// Listener handles one event. Listeners may edit s in place.
type Listener func(event string, s *section.Section)

type entry struct {
	pattern []string
	fn      Listener
}

// Hooks is an ordered listener registry. Register all listeners before
// calling Emit from several goroutines.
type Hooks struct {
	entries []entry
	Logger  *slog.Logger
}

func New(logger *slog.Logger) *Hooks {
	return &Hooks{Logger: logger}
}

// Register adds fn for events matching pattern.
func (h *Hooks) Register(pattern string, fn Listener) {
	if fn == nil {
		return
	}
	h.entries = append(h.entries, entry{pattern: strings.Split(pattern, "."), fn: fn})
}

// Emit calls every matching listener in registration order.
func (h *Hooks) Emit(event string, s *section.Section) {
	parts := strings.Split(event, ".")
	called := 0
	for _, e := range h.entries {
		if matchParts(e.pattern, parts) {
			e.fn(event, s)
			called++
		}
	}
	if h.Logger != nil {
		h.Logger.Debug("docs event", "event", event, "listeners", called)
	}
}

// Match reports whether pattern selects event.
func Match(pattern, event string) bool {
	return matchParts(strings.Split(pattern, "."), strings.Split(event, "."))
}

func matchParts(pattern, event []string) bool {
	if len(pattern) > len(event) {
		return false
	}
	for i, p := range pattern {
		if p != "*" && p != event[i] {
			return false
		}
	}
	return true
}

// Emission is one recorded event.
type Emission struct {
	Event   string
	Section *section.Section
}

// Recorder remembers every event and forwards it to Next, if set.
type Recorder struct {
	Next      Emitter
	Emissions []Emission
}

func (r *Recorder) Emit(event string, s *section.Section) {
	r.Emissions = append(r.Emissions, Emission{Event: event, Section: s})
	if r.Next != nil {
		r.Next.Emit(event, s)
	}
}

// Events returns the recorded event names in order.
func (r *Recorder) Events() []string {
	out := make([]string, 0, len(r.Emissions))
	for _, e := range r.Emissions {
		out = append(out, e.Event)
	}
	return out
}
