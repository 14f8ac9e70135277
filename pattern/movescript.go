package pattern

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/battlebox/attack"
)

// MoveScript is a tengo-compiled per-spawn movement override. The script
// runs once per tick with these globals set:
//
//	__x, __y   object position
//	__vx, __vy object velocity
//	__age      frames since the hook was attached
//	__tx, __ty player position
//
// and writes its result by assigning vx/vy (and optionally x/y) at the
// top level. Custom per-spawn behavior stays data in the wave spec
// instead of an ad hoc object mutation.
type MoveScript struct {
	name     string
	compiled *tengo.Compiled
}

// CompileMoveScript compiles a movement script once; each spawned object
// gets its own cloned runtime via Hook.
func CompileMoveScript(name string, src []byte) (*MoveScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("__x", 0.0)
	_ = script.Add("__y", 0.0)
	_ = script.Add("__vx", 0.0)
	_ = script.Add("__vy", 0.0)
	_ = script.Add("__age", 0)
	_ = script.Add("__tx", 0.0)
	_ = script.Add("__ty", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("pattern: compile move script %s: %w", name, err)
	}
	return &MoveScript{name: name, compiled: compiled}, nil
}

// Hook returns an OnUpdate closure bound to a fresh script runtime. A
// script runtime error logs once and the object falls back to linear
// motion for the rest of its life.
func (s *MoveScript) Hook() func(b *attack.Base, env *attack.Env) {
	if s == nil || s.compiled == nil {
		return nil
	}
	rt := s.compiled.Clone()
	age := 0
	broken := false
	return func(b *attack.Base, env *attack.Env) {
		if b == nil {
			return
		}
		if broken {
			b.Pos = b.Pos.Add(b.Vel)
			return
		}
		_ = rt.Set("__x", b.Pos.X)
		_ = rt.Set("__y", b.Pos.Y)
		_ = rt.Set("__vx", b.Vel.X)
		_ = rt.Set("__vy", b.Vel.Y)
		_ = rt.Set("__age", age)
		if env != nil {
			_ = rt.Set("__tx", env.Target.X)
			_ = rt.Set("__ty", env.Target.Y)
		}
		age++

		if err := rt.Run(); err != nil {
			fmt.Printf("pattern: move script %s error: %v\n", s.name, err)
			broken = true
			b.Pos = b.Pos.Add(b.Vel)
			return
		}

		if rt.IsDefined("vx") {
			b.Vel.X = rt.Get("vx").Float()
		}
		if rt.IsDefined("vy") {
			b.Vel.Y = rt.Get("vy").Float()
		}
		if rt.IsDefined("x") {
			b.Pos.X = rt.Get("x").Float()
			if rt.IsDefined("y") {
				b.Pos.Y = rt.Get("y").Float()
			}
			return
		}
		b.Pos = b.Pos.Add(b.Vel)
	}
}
