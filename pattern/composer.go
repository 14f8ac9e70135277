package pattern

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/battlebox/attack"
)

// Entry is one phase of a composed barrage: a pattern played for
// DurationFrames, followed by a gap of TransitionFrames during which no
// pattern is exposed.
type Entry struct {
	Pattern          *Pattern
	DurationFrames   int
	TransitionFrames int
}

// Composer sequences independent pattern entries as the phases of one
// enemy turn, exposing only the currently active one. During a
// transition gap Current returns nil and nothing is live.
type Composer struct {
	Name string

	entries []Entry
	index   int
	timer   int
	inGap   bool
	done    bool
}

func NewComposer(name string, entries ...Entry) *Composer {
	c := &Composer{Name: name, entries: entries}
	if len(entries) == 0 {
		c.done = true
	}
	return c
}

// Current returns the active pattern, or nil during a transition gap or
// after the composer finishes.
func (c *Composer) Current() *Pattern {
	if c == nil || c.done || c.inGap {
		return nil
	}
	return c.entries[c.index].Pattern
}

// Complete reports whether every entry has played out.
func (c *Composer) Complete() bool { return c == nil || c.done }

// Active reports whether any entry is still pending.
func (c *Composer) Active() bool { return c != nil && !c.done }

// Update drives the active entry's pattern, entering the transition gap
// when its duration elapses and moving to the next entry when the gap
// ends. A finished entry's pattern is cancelled so no objects outlive
// their phase.
func (c *Composer) Update(env *attack.Env) {
	if c == nil || c.done {
		return
	}
	cur := c.entries[c.index]
	c.timer++

	if !c.inGap {
		cur.Pattern.Update(env)
		if c.timer < cur.DurationFrames {
			return
		}
		if cur.Pattern != nil {
			cur.Pattern.Cancel()
		}
		if cur.TransitionFrames > 0 {
			c.inGap = true
			c.timer = 0
			return
		}
		c.next()
		return
	}

	if c.timer >= cur.TransitionFrames {
		c.next()
	}
}

func (c *Composer) next() {
	c.index++
	c.timer = 0
	c.inGap = false
	if c.index >= len(c.entries) {
		c.done = true
	}
}

// Arm rebinds env's collision-callback hooks to the active phase's
// pattern, or clears them during a gap.
func (c *Composer) Arm(env *attack.Env) {
	if p := c.Current(); p != nil {
		p.Arm(env)
		return
	}
	if env != nil {
		env.Spawn = nil
		env.Pool = nil
	}
}

// Live returns the active phase's live set, nil during a gap.
func (c *Composer) Live() []attack.Object { return c.Current().Live() }

// LiveCount returns the number of live objects in the active phase.
func (c *Composer) LiveCount() int { return c.Current().LiveCount() }

// Cancel ends the composer early, cancelling every entry's pattern.
func (c *Composer) Cancel() {
	if c == nil {
		return
	}
	for _, e := range c.entries {
		if e.Pattern != nil {
			e.Pattern.Cancel()
		}
	}
	c.done = true
}

// Draw renders the active phase.
func (c *Composer) Draw(dst *ebiten.Image) {
	if p := c.Current(); p != nil {
		p.Draw(dst)
	}
}

func (c *Composer) String() string {
	if c == nil || c.done {
		return fmt.Sprintf("composer %q (done)", c.name())
	}
	return fmt.Sprintf("composer %q (phase %d/%d): %s", c.name(), c.index+1, len(c.entries), c.entries[c.index].Pattern)
}

func (c *Composer) name() string {
	if c == nil {
		return ""
	}
	return c.Name
}
