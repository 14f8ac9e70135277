package pattern

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/battlebox/attack"
)

// Wave is one timed spawn instruction within a pattern: at OffsetFrames
// into the pattern, Spawn is invoked and its objects join the live set.
type Wave struct {
	OffsetFrames int
	// Kind tags the wave's behavior type, for diagnostics.
	Kind  string
	Spawn func(env *attack.Env) []attack.Object

	fired bool
}

// Pattern owns one wave-timed batch of spawns plus the resulting live
// object set for a single enemy turn. A pattern is complete only when
// its elapsed frames reach the duration AND the live set has emptied;
// attacks may outlive the nominal duration.
type Pattern struct {
	Name string
	// DurationFrames is the nominal pattern length in ticks.
	DurationFrames int

	waves   []*Wave
	live    []attack.Object
	staged  []attack.Object
	elapsed int
	active  bool
}

func New(name string, durationFrames int, waves ...*Wave) *Pattern {
	p := &Pattern{
		Name:           name,
		DurationFrames: durationFrames,
		waves:          waves,
		active:         true,
	}
	sort.SliceStable(p.waves, func(i, j int) bool {
		return p.waves[i].OffsetFrames < p.waves[j].OffsetFrames
	})
	return p
}

// Active reports whether the pattern is still running.
func (p *Pattern) Active() bool { return p != nil && p.active }

// Elapsed returns the frames advanced so far.
func (p *Pattern) Elapsed() int { return p.elapsed }

// Live returns the live object set. Callers must not retain it across
// ticks.
func (p *Pattern) Live() []attack.Object {
	if p == nil {
		return nil
	}
	return p.live
}

// LiveCount returns the number of live objects.
func (p *Pattern) LiveCount() int { return len(p.Live()) }

// Update fires due waves, advances every live object, and prunes
// inactive ones. The env's spawn hook and pool view are rebound to this
// pattern for the duration of the call.
func (p *Pattern) Update(env *attack.Env) {
	if p == nil || !p.active {
		return
	}
	if env == nil {
		env = &attack.Env{}
	}
	env.Spawn = p.stage
	env.Pool = p.live
	defer func() {
		env.Spawn = nil
		env.Pool = nil
	}()

	// objects staged between ticks (contact detonations during collision
	// arbitration) join the live set before anything else runs
	if len(p.staged) > 0 {
		p.live = append(p.live, p.staged...)
		p.staged = p.staged[:0]
		env.Pool = p.live
	}

	for _, w := range p.waves {
		if w.fired || w.OffsetFrames > p.elapsed {
			continue
		}
		w.fired = true
		if w.Spawn == nil {
			continue
		}
		p.live = append(p.live, w.Spawn(env)...)
		env.Pool = p.live
	}

	writeIdx := 0
	for _, o := range p.live {
		if o == nil || !o.Active() {
			continue
		}
		o.Update(env)
		if !o.Active() {
			continue
		}
		p.live[writeIdx] = o
		writeIdx++
	}
	p.live = p.live[:writeIdx]

	// fold in objects staged by explosions/spawner callbacks this tick
	if len(p.staged) > 0 {
		p.live = append(p.live, p.staged...)
		p.staged = p.staged[:0]
	}

	p.elapsed++
	if p.elapsed >= p.DurationFrames && len(p.live) == 0 && p.allWavesFired() {
		p.active = false
	}
}

// Arm rebinds env's spawn hook and pool view to this pattern. Update
// unbinds them on return, so callers running collision callbacks after
// the tick (contact detonations, chain triggers) re-arm first; anything
// spawned lands in the staged set and joins the live set next Update.
func (p *Pattern) Arm(env *attack.Env) {
	if p == nil || env == nil {
		return
	}
	env.Spawn = p.stage
	env.Pool = p.live
}

// Cancel ends the pattern early, forcibly deactivating every remaining
// live object so nothing is orphaned.
func (p *Pattern) Cancel() {
	if p == nil {
		return
	}
	for _, o := range p.live {
		if o != nil {
			o.Deactivate()
		}
	}
	p.live = p.live[:0]
	p.staged = p.staged[:0]
	p.active = false
}

// Draw renders every live object.
func (p *Pattern) Draw(dst *ebiten.Image) {
	if p == nil {
		return
	}
	for _, o := range p.live {
		if o != nil && o.Active() {
			o.Draw(dst)
		}
	}
}

func (p *Pattern) stage(o attack.Object) {
	if p == nil || o == nil {
		return
	}
	p.staged = append(p.staged, o)
}

func (p *Pattern) allWavesFired() bool {
	for _, w := range p.waves {
		if !w.fired {
			return false
		}
	}
	return true
}

func (p *Pattern) String() string {
	return fmt.Sprintf("pattern %q (%d/%d frames, %d live)", p.Name, p.elapsed, p.DurationFrames, len(p.live))
}
