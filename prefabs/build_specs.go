package prefabs

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/attack"
	"github.com/milk9111/battlebox/battle"
	"github.com/milk9111/battlebox/common"
	"github.com/milk9111/battlebox/pattern"
	"github.com/milk9111/battlebox/soul"
)

// BuildEnemy turns a validated spec into the runtime combatant.
func BuildEnemy(spec *EncounterSpec) *battle.Enemy {
	e := &battle.Enemy{
		Name:     spec.Name,
		HP:       spec.HP,
		MaxHP:    spec.HP,
		Attack:   spec.Attack,
		Defense:  spec.Defense,
		Dialogue: append([]string(nil), spec.Dialogue...),
	}
	for _, a := range spec.Acts {
		e.Acts = append(e.Acts, battle.Act{Name: a.Name, Response: a.Response, MercyGain: a.MercyGain})
	}
	return e
}

// BuildItems turns the spec's item list into the player's consumables.
func BuildItems(spec *EncounterSpec) []battle.Item {
	items := make([]battle.Item, 0, len(spec.Items))
	for _, it := range spec.Items {
		items = append(items, battle.Item{Name: it.Name, Heal: it.Heal})
	}
	return items
}

// BuildSoulMode resolves the spec's soul field to a movement mode for
// the given arena.
func BuildSoulMode(spec *EncounterSpec, arena cp.BB) soul.Mode {
	switch spec.Soul {
	case "shield":
		return &soul.Shield{}
	case "gravity":
		return &soul.Gravity{}
	case "ranged":
		return &soul.Ranged{}
	case "rail":
		midY := (arena.B + arena.T) / 2
		return &soul.Rail{Lines: []soul.RailLine{
			{From: cp.Vector{X: arena.L + 16, Y: midY}, To: cp.Vector{X: arena.R - 16, Y: midY}},
			{From: cp.Vector{X: arena.L + 16, Y: arena.T - 24}, To: cp.Vector{X: arena.R - 16, Y: arena.T - 24}},
		}}
	default:
		return &soul.Normal{}
	}
}

// BuildPatterns turns pattern specs into builders the encounter replays
// one per enemy turn. Movement scripts are compiled once here; a wave
// naming a script that fails to load or compile falls back to plain
// motion with a warning.
func BuildPatterns(spec *EncounterSpec) []battle.PatternBuilder {
	scripts := map[string]*pattern.MoveScript{}
	for _, p := range spec.Patterns {
		for _, w := range p.Waves {
			if w.Script == "" {
				continue
			}
			if _, done := scripts[w.Script]; done {
				continue
			}
			scripts[w.Script] = compileScript(w.Script)
		}
	}

	byName := map[string]PatternSpec{}
	for _, p := range spec.Patterns {
		if len(p.Phases) == 0 {
			byName[p.Name] = p
		}
	}

	builders := make([]battle.PatternBuilder, 0, len(spec.Patterns))
	for _, p := range spec.Patterns {
		p := p
		if len(p.Phases) > 0 {
			builders = append(builders, func() pattern.Runner {
				return buildComposer(p, byName, scripts)
			})
			continue
		}
		builders = append(builders, func() pattern.Runner {
			return buildPattern(p, scripts)
		})
	}
	return builders
}

// buildComposer assembles a phased turn: each phase replays a named
// wave pattern for its duration, with rest gaps in between.
func buildComposer(spec PatternSpec, byName map[string]PatternSpec, scripts map[string]*pattern.MoveScript) *pattern.Composer {
	entries := make([]pattern.Entry, 0, len(spec.Phases))
	for _, ph := range spec.Phases {
		ref, ok := byName[ph.Pattern]
		if !ok {
			fmt.Printf("prefabs: pattern %s: unknown phase pattern %q, skipping\n", spec.Name, ph.Pattern)
			continue
		}
		entries = append(entries, pattern.Entry{
			Pattern:          buildPattern(ref, scripts),
			DurationFrames:   ph.Duration,
			TransitionFrames: ph.Gap,
		})
	}
	return pattern.NewComposer(spec.Name, entries...)
}

func compileScript(name string) *pattern.MoveScript {
	src, err := LoadScript(name)
	if err != nil {
		fmt.Printf("prefabs: script %s: %v\n", name, err)
		return nil
	}
	ms, err := pattern.CompileMoveScript(name, src)
	if err != nil {
		fmt.Printf("prefabs: %v\n", err)
		return nil
	}
	return ms
}

func buildPattern(spec PatternSpec, scripts map[string]*pattern.MoveScript) *pattern.Pattern {
	waves := make([]*pattern.Wave, 0, len(spec.Waves))
	for _, w := range spec.Waves {
		if !waveTypes[w.Type] {
			fmt.Printf("prefabs: pattern %s: unknown wave type %q, skipping\n", spec.Name, w.Type)
			continue
		}
		waves = append(waves, buildWave(w, scripts[w.Script]))
	}
	return pattern.New(spec.Name, spec.Duration, waves...)
}

func buildWave(w WaveSpec, script *pattern.MoveScript) *pattern.Wave {
	return &pattern.Wave{
		OffsetFrames: w.Time,
		Kind:         w.Type,
		Spawn: func(env *attack.Env) []attack.Object {
			return applyModifiers(spawnWave(w, script, env), w.Modifiers)
		},
	}
}

// applyModifiers attaches the wave's timed transforms to every spawned
// object that carries a modifier pipeline.
func applyModifiers(objs []attack.Object, specs []ModifierSpec) []attack.Object {
	if len(specs) == 0 {
		return objs
	}
	for _, o := range objs {
		mod, ok := o.(interface{ AddModifier(attack.Modifier) })
		if !ok {
			continue
		}
		for _, ms := range specs {
			if m := buildModifier(ms); m != nil {
				mod.AddModifier(m)
			}
		}
	}
	return objs
}

func buildModifier(ms ModifierSpec) attack.Modifier {
	if !modifierKinds[ms.Kind] {
		fmt.Printf("prefabs: unknown modifier kind %q, skipping\n", ms.Kind)
		return nil
	}
	ease := common.EaseByName(ms.Easing)
	dur := defaultFrames(ms.Duration, 60)
	switch ms.Kind {
	case "scale":
		return attack.NewScaleModifier(ms.From, ms.To, dur, ease)
	case "alpha":
		return attack.NewAlphaModifier(ms.From, ms.To, dur, ease)
	case "speed":
		return attack.NewSpeedModifier(ms.From, ms.To, dur, ease, ms.Permanent)
	case "damage":
		return attack.NewDamageModifier(ms.From, ms.To, dur, ease, ms.Restore)
	case "rotation":
		return attack.NewRotationModifier(ms.From, ms.Duration)
	case "mirror_x":
		return attack.NewMirrorModifier(true, false)
	case "mirror_y":
		return attack.NewMirrorModifier(false, true)
	}
	return nil
}

func spawnWave(w WaveSpec, script *pattern.MoveScript, env *attack.Env) []attack.Object {
	count := w.Count
	if count <= 0 {
		count = 1
	}
	speed := w.Speed
	if speed <= 0 {
		speed = 2
	}
	damage := w.Damage
	if damage <= 0 {
		damage = 2
	}
	side, _ := attack.SideByName(w.Side)

	switch w.Type {
	case "projectiles", "blue", "orange":
		return spawnSideRow(w.Type, side, count, speed, damage, script, env)

	case "ring":
		return pattern.Circular(env.Target, 140, count, func(x, y, angle float64) attack.Object {
			p := attack.NewProjectile(x, y, 0, 0, damage)
			p.Vel = cp.ForAngle(angle + math.Pi).Mult(speed)
			if script != nil {
				p.OnUpdate = script.Hook()
			}
			return p
		})

	case "homing":
		out := make([]attack.Object, 0, count)
		for _, slot := range sideSlots(side, count, env.Arena) {
			dir := inwardDir(side)
			turn := w.TurnRate
			if turn <= 0 {
				turn = 0.05
			}
			h := attack.NewHomingProjectile(slot.X, slot.Y, dir.X*speed, dir.Y*speed, damage, turn)
			h.DelayFrames = w.HomingDelay
			out = append(out, h)
		}
		return out

	case "bouncing":
		out := make([]attack.Object, 0, count)
		bounces := w.Bounces
		if bounces <= 0 {
			bounces = 3
		}
		for _, slot := range sideSlots(side, count, env.Arena) {
			vel := aimAt(slot, env.Target, speed)
			out = append(out, attack.NewBouncingProjectile(slot.X, slot.Y, vel.X, vel.Y, damage, bounces, w.EnergyLoss))
		}
		return out

	case "exploding":
		out := make([]attack.Object, 0, count)
		fuse := w.Fuse
		if fuse <= 0 {
			fuse = 60
		}
		frags := w.Fragments
		if frags <= 0 {
			frags = 6
		}
		for _, slot := range sideSlots(side, count, env.Arena) {
			vel := aimAt(slot, env.Target, speed)
			e := attack.NewExplodingProjectile(slot.X, slot.Y, vel.X, vel.Y, damage, fuse, frags, math.Max(1, speed*0.75))
			e.Pattern = scatterByName(w.Scatter)
			e.ChainRadius = w.Chain
			out = append(out, e)
		}
		return out

	case "arc":
		out := make([]attack.Object, 0, count)
		gravity := w.Gravity
		if gravity <= 0 {
			gravity = 0.15
		}
		for i := 0; i < count; i++ {
			from := cp.Vector{X: env.Arena.L, Y: env.Arena.B}
			if i%2 == 1 {
				from.X = env.Arena.R
			}
			flight := 50 + 10*i
			vel := attack.SolveArcVelocity(from, env.Target, flight, gravity)
			out = append(out, attack.NewArcProjectile(from.X, from.Y, vel.X, vel.Y, damage, gravity))
		}
		return out

	case "wave":
		amplitude := w.Amplitude
		if amplitude <= 0 {
			amplitude = 20
		}
		frequency := w.Frequency
		if frequency <= 0 {
			frequency = 0.1
		}
		out := make([]attack.Object, 0, count)
		for i, slot := range sideSlots(side, count, env.Arena) {
			dir := inwardDir(side)
			wp := attack.NewWaveProjectile(slot.X, slot.Y, dir.X*speed, dir.Y*speed, damage, amplitude, frequency)
			wp.Osc = attack.OscillationByName(w.Oscillation)
			// alternate phase so neighbors weave
			wp.PhaseOffset = math.Pi * float64(i%2)
			out = append(out, wp)
		}
		return out

	case "beam":
		length := w.Length
		if length <= 0 {
			length = env.Arena.R - env.Arena.L
		}
		angularVel := w.AngularVel
		if angularVel == 0 {
			angularVel = 0.02
		}
		center := cp.Vector{X: (env.Arena.L + env.Arena.R) / 2, Y: (env.Arena.B + env.Arena.T) / 2}
		out := make([]attack.Object, 0, count)
		for i := 0; i < count; i++ {
			start := 2 * math.Pi * float64(i) / float64(count)
			out = append(out, attack.NewRotatingBeam(center, length, start, angularVel, damage,
				defaultFrames(w.Telegraph, 40), defaultFrames(w.ActiveFor, 150), defaultFrames(w.Fade, 20)))
		}
		return out

	case "wall":
		thickness := w.Thickness
		if thickness <= 0 {
			thickness = 20
		}
		gaps := make([]attack.Gap, 0, len(w.Gaps))
		for _, g := range w.Gaps {
			gaps = append(gaps, attack.Gap{Pos: g.Pos, Size: g.Size})
		}
		if len(gaps) == 0 {
			gaps = append(gaps, attack.Gap{Pos: 0.5, Size: 60})
		}
		return []attack.Object{attack.NewWallAttack(side, speed, damage, thickness, gaps)}

	case "blaster":
		out := make([]attack.Object, 0, count)
		for _, slot := range sideSlots(side, count, env.Arena) {
			out = append(out, attack.NewGasterBlaster(slot, env.Target, damage,
				defaultFrames(w.Appear, 20), defaultFrames(w.Charge, 30), defaultFrames(w.Fire, 40), defaultFrames(w.Fade, 15)))
		}
		return out
	}
	return nil
}

func spawnSideRow(kind string, side attack.Side, count int, speed, damage float64, script *pattern.MoveScript, env *attack.Env) []attack.Object {
	out := make([]attack.Object, 0, count)
	for _, slot := range sideSlots(side, count, env.Arena) {
		dir := inwardDir(side)
		var p attack.Object
		switch kind {
		case "blue":
			p = attack.NewBlueProjectile(slot.X, slot.Y, dir.X*speed, dir.Y*speed, damage)
		case "orange":
			p = attack.NewOrangeProjectile(slot.X, slot.Y, dir.X*speed, dir.Y*speed, damage)
		default:
			pr := attack.NewProjectile(slot.X, slot.Y, dir.X*speed, dir.Y*speed, damage)
			if script != nil {
				pr.OnUpdate = script.Hook()
			}
			p = pr
		}
		out = append(out, p)
	}
	return out
}

// sideSlots places count spawn points evenly along an arena side, just
// outside the box so attacks enter rather than pop in.
func sideSlots(side attack.Side, count int, arena cp.BB) []cp.Vector {
	out := make([]cp.Vector, 0, count)
	for i := 0; i < count; i++ {
		t := float64(i+1) / float64(count+1)
		switch side {
		case attack.SideBottom:
			out = append(out, cp.Vector{X: arena.L + t*(arena.R-arena.L), Y: arena.T + 12})
		case attack.SideLeft:
			out = append(out, cp.Vector{X: arena.L - 12, Y: arena.B + t*(arena.T-arena.B)})
		case attack.SideRight:
			out = append(out, cp.Vector{X: arena.R + 12, Y: arena.B + t*(arena.T-arena.B)})
		default: // top
			out = append(out, cp.Vector{X: arena.L + t*(arena.R-arena.L), Y: arena.B - 12})
		}
	}
	return out
}

// inwardDir is the unit travel direction for attacks entering from a
// side. Screen coordinates, +Y down.
func inwardDir(side attack.Side) cp.Vector {
	switch side {
	case attack.SideBottom:
		return cp.Vector{X: 0, Y: -1}
	case attack.SideLeft:
		return cp.Vector{X: 1, Y: 0}
	case attack.SideRight:
		return cp.Vector{X: -1, Y: 0}
	default:
		return cp.Vector{X: 0, Y: 1}
	}
}

func aimAt(from, target cp.Vector, speed float64) cp.Vector {
	d := target.Sub(from)
	if d.LengthSq() == 0 {
		return cp.Vector{X: 0, Y: speed}
	}
	return d.Normalize().Mult(speed)
}

func scatterByName(name string) attack.FragmentPattern {
	switch name {
	case "random":
		return attack.FragmentsRandom
	case "directional":
		return attack.FragmentsDirectional
	case "cone":
		return attack.FragmentsCone
	default:
		return attack.FragmentsUniform
	}
}

func defaultFrames(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
