// Package timing holds the frame-indexed schedulers that drive attack
// choreography. Every timer here counts frames, never wall-clock time,
// so replays are deterministic regardless of render cadence.
package timing

import "sort"

// TimelineEvent binds an action to an absolute frame index.
type TimelineEvent struct {
	Frame  int
	Action func()

	executed bool
}

// Timeline fires scheduled actions as its frame counter passes their
// frame index. Each event fires exactly once; replay is prevented by a
// per-event executed flag.
type Timeline struct {
	events []*TimelineEvent
	frame  int
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// At schedules an action for the given frame. Events may be added in any
// order; the timeline keeps them sorted ascending.
func (t *Timeline) At(frame int, action func()) {
	if t == nil || action == nil {
		return
	}
	t.events = append(t.events, &TimelineEvent{Frame: frame, Action: action})
	sort.SliceStable(t.events, func(i, j int) bool {
		return t.events[i].Frame < t.events[j].Frame
	})
}

// Update advances the frame counter and fires every unfired event whose
// frame has been reached.
func (t *Timeline) Update() {
	if t == nil {
		return
	}
	for _, e := range t.events {
		if e.executed || e.Frame > t.frame {
			continue
		}
		e.executed = true
		e.Action()
	}
	t.frame++
}

// Frame returns the current frame counter.
func (t *Timeline) Frame() int {
	if t == nil {
		return 0
	}
	return t.frame
}

// Complete reports whether every scheduled event has fired.
func (t *Timeline) Complete() bool {
	if t == nil {
		return true
	}
	for _, e := range t.events {
		if !e.executed {
			return false
		}
	}
	return true
}

// Reset rewinds the timeline and clears all executed flags.
func (t *Timeline) Reset() {
	if t == nil {
		return
	}
	t.frame = 0
	for _, e := range t.events {
		e.executed = false
	}
}
