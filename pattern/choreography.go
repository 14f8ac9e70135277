package pattern

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/battlebox/attack"
	"github.com/milk9111/battlebox/timing"
)

// Choreography couples a timeline to a live-object pool: each timeline
// event invokes a spawner whose objects join the pool, and the pool is
// updated and pruned every tick. Complete when the timeline is exhausted
// and the pool has emptied.
type Choreography struct {
	timeline *timing.Timeline
	pool     []attack.Object
	staged   []attack.Object

	// env is captured for the duration of Update so timeline actions can
	// spawn with the current tick's environment.
	env *attack.Env
}

func NewChoreography() *Choreography {
	return &Choreography{timeline: timing.NewTimeline()}
}

// SpawnAt schedules a spawner on the choreography's timeline. The
// spawner's returned objects are appended to the pool when the event
// fires.
func (c *Choreography) SpawnAt(frame int, spawner func(env *attack.Env) []attack.Object) {
	if c == nil || spawner == nil {
		return
	}
	c.timeline.At(frame, func() {
		objs := spawner(c.env)
		c.pool = append(c.pool, objs...)
	})
}

// At schedules a plain action on the choreography's timeline.
func (c *Choreography) At(frame int, action func()) {
	if c == nil {
		return
	}
	c.timeline.At(frame, action)
}

// Update advances the timeline, then updates and prunes the pool.
func (c *Choreography) Update(env *attack.Env) {
	if c == nil {
		return
	}
	if env == nil {
		env = &attack.Env{}
	}
	c.env = env
	env.Spawn = c.stage
	defer func() {
		env.Spawn = nil
		env.Pool = nil
		c.env = nil
	}()

	if len(c.staged) > 0 {
		c.pool = append(c.pool, c.staged...)
		c.staged = c.staged[:0]
	}

	c.timeline.Update()

	env.Pool = c.pool
	writeIdx := 0
	for _, o := range c.pool {
		if o == nil || !o.Active() {
			continue
		}
		o.Update(env)
		if !o.Active() {
			continue
		}
		c.pool[writeIdx] = o
		writeIdx++
	}
	c.pool = c.pool[:writeIdx]

	if len(c.staged) > 0 {
		c.pool = append(c.pool, c.staged...)
		c.staged = c.staged[:0]
	}
}

// Draw renders the pool.
func (c *Choreography) Draw(dst *ebiten.Image) {
	if c == nil {
		return
	}
	for _, o := range c.pool {
		if o != nil && o.Active() {
			o.Draw(dst)
		}
	}
}

// Pool returns the live pool. Callers must not retain it across ticks.
func (c *Choreography) Pool() []attack.Object {
	if c == nil {
		return nil
	}
	return c.pool
}

// Live returns the pool, matching the turn-runner contract.
func (c *Choreography) Live() []attack.Object { return c.Pool() }

// LiveCount returns the number of pooled objects.
func (c *Choreography) LiveCount() int { return len(c.Pool()) }

// Active reports whether events or objects remain.
func (c *Choreography) Active() bool { return c != nil && !c.Complete() }

// Arm rebinds env's spawn hook and pool view so collision callbacks
// fired after Update still land in the pool.
func (c *Choreography) Arm(env *attack.Env) {
	if c == nil || env == nil {
		return
	}
	env.Spawn = c.stage
	env.Pool = c.pool
}

func (c *Choreography) stage(o attack.Object) {
	if c == nil || o == nil {
		return
	}
	c.staged = append(c.staged, o)
}

// Complete reports whether the timeline has exhausted its events and the
// pool is empty.
func (c *Choreography) Complete() bool {
	return c == nil || (c.timeline.Complete() && len(c.pool) == 0)
}

func (c *Choreography) String() string {
	return fmt.Sprintf("choreography (%d live)", c.LiveCount())
}

// Cancel deactivates and drops every pooled object.
func (c *Choreography) Cancel() {
	if c == nil {
		return
	}
	for _, o := range c.pool {
		if o != nil {
			o.Deactivate()
		}
	}
	c.pool = c.pool[:0]
}
